package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	OpenAIAPIKey  string
	Model         string
	Temperature   float32
	TopP          float32
	MaxTokens     int
	AllowedOrigin string
	// Directory holding one <slug>.json menu document per restaurant
	MenuDir string
	// YAML file with the grounding prompt persona and rules
	PromptFile string
	// Secret used to sign session cookies; generated at startup when empty
	SessionSecret string
	// 0 means unbounded history
	MaxHistoryMessages int
	// Upper bound on a single completion round-trip
	ChatTimeoutSeconds int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:               getEnvDefault("PORT", "8080"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		Model:              getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature:        getEnvFloatDefault("OPENAI_TEMPERATURE", 0.2),
		TopP:               getEnvFloatDefault("OPENAI_TOP_P", 1.0),
		MaxTokens:          getEnvIntDefault("OPENAI_MAX_TOKENS", 500),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		MenuDir:            getEnvDefault("MENU_DIR", "./menus"),
		PromptFile:         getEnvDefault("PROMPT_FILE", "./prompts/assistant.yaml"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		MaxHistoryMessages: getEnvIntDefault("MAX_HISTORY_MESSAGES", 0),
		ChatTimeoutSeconds: getEnvIntDefault("CHAT_TIMEOUT_SECONDS", 20),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; completion calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloatDefault(key string, def float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return def
}
