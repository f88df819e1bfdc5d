package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"menuchat-backend/internal/config"
	"menuchat-backend/internal/llm"
	"menuchat-backend/internal/menu"
	"menuchat-backend/internal/prompt"
	"menuchat-backend/internal/store"
	"menuchat-backend/internal/types"
)

type Server struct {
	router    *chi.Mux
	cfg       config.Config
	menus     *menu.Store
	history   *store.MemoryStore
	completer llm.Completer
	prompts   *prompt.Builder
	signer    *cookieSigner
}

func NewServer(cfg config.Config) (*Server, error) {
	completer := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature, cfg.TopP, cfg.MaxTokens)
	builder, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("prompt spec %s not found, using built-in default", cfg.PromptFile)
			builder = prompt.Default()
		} else {
			return nil, fmt.Errorf("failed to load prompt spec: %w", err)
		}
	}
	return newServer(cfg, menu.NewStore(cfg.MenuDir), store.NewMemoryStore(cfg.MaxHistoryMessages), completer, builder), nil
}

// newServer wires explicit dependencies; tests inject fakes here.
func newServer(cfg config.Config, menus *menu.Store, history *store.MemoryStore, completer llm.Completer, prompts *prompt.Builder) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true, // Enable credentials for cookies
		MaxAge:           300,
	}))

	s := &Server{
		router:    r,
		cfg:       cfg,
		menus:     menus,
		history:   history,
		completer: completer,
		prompts:   prompts,
		signer:    newCookieSigner(cfg.SessionSecret),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/chat", s.handleChat)
	s.router.Post("/clear", s.handleClear)
	s.router.Get("/healthz", s.handleHealth)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("restaurant")
	if slug == "" {
		http.Error(w, "Please specify a restaurant in the URL, e.g., ?restaurant=joes_grill", http.StatusBadRequest)
		return
	}
	doc, err := s.menus.Resolve(slug)
	if err != nil {
		var inv *menu.InvalidError
		switch {
		case errors.Is(err, menu.ErrNotFound):
			http.Error(w, fmt.Sprintf("Menu for restaurant '%s' not found.", slug), http.StatusNotFound)
		case errors.As(err, &inv):
			http.Error(w, inv.Error(), http.StatusInternalServerError)
		default:
			log.Printf("[menu] resolve %s: %v", slug, err)
			http.Error(w, "failed to load menu", http.StatusInternalServerError)
		}
		return
	}
	s.renderPage(w, slug, doc.RestaurantName)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	slug := req.Restaurant
	if slug == "" {
		slug = r.URL.Query().Get("restaurant")
	}
	if slug == "" {
		s.writeReply(w, http.StatusBadRequest, "Restaurant not specified in request.")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeReply(w, http.StatusBadRequest, "Message is required.")
		return
	}

	doc, err := s.menus.Resolve(slug)
	if err != nil {
		var inv *menu.InvalidError
		switch {
		case errors.Is(err, menu.ErrNotFound):
			s.writeReply(w, http.StatusNotFound, fmt.Sprintf("Menu for restaurant '%s' not found.", slug))
		case errors.As(err, &inv):
			s.writeReply(w, http.StatusInternalServerError, inv.Error())
		default:
			log.Printf("[menu] resolve %s: %v", slug, err)
			s.writeReply(w, http.StatusInternalServerError, "failed to load menu")
		}
		return
	}

	sid := s.getOrCreateSessionID(r, w)
	messages := s.prompts.Build(doc, s.history.Get(sid), message)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.ChatTimeoutSeconds)*time.Second)
	defer cancel()
	reply := s.completer.Complete(ctx, messages)

	s.history.Append(sid, store.Message{Role: "user", Content: message})
	s.history.Append(sid, store.Message{Role: "assistant", Content: reply})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.ChatResponse{Reply: reply})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sid := s.getOrCreateSessionID(r, w)
	s.history.Clear(sid)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.ClearResponse{Status: "cleared"})
}

func (s *Server) writeReply(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ChatResponse{Reply: text})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// getSessionID retrieves the signed session token from cookie, header, or
// query parameter and returns the verified session ID.
func (s *Server) getSessionID(r *http.Request) string {
	if token, err := GetSessionCookie(r); err == nil && token != "" {
		if sid, ok := s.signer.verify(token); ok {
			return sid
		}
	}
	if token := r.Header.Get("X-Session-Id"); token != "" {
		if sid, ok := s.signer.verify(token); ok {
			return sid
		}
	}
	if token := r.URL.Query().Get("sessionId"); token != "" {
		if sid, ok := s.signer.verify(token); ok {
			return sid
		}
	}
	return ""
}

// getOrCreateSessionID gets the existing session ID or creates a new one,
// setting the signed cookie and X-Session-Id header.
func (s *Server) getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := s.getSessionID(r)
	if sid == "" {
		sid = uuid.NewString()
		log.Printf("[session] creating new session: %s for endpoint: %s", sid, r.URL.Path)
	}
	token := s.signer.sign(sid)
	SetSessionCookie(w, token)
	w.Header().Set("X-Session-Id", token)
	return sid
}
