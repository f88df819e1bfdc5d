package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// CookieName is the name of the session cookie
	CookieName = "menuchat_session"
	// CookieMaxAge is the duration the cookie is valid
	CookieMaxAge = 24 * time.Hour
)

// SetSessionCookie sets an HTTP-only session cookie holding a signed token
func SetSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // Set to true in production with HTTPS
	}
	http.SetCookie(w, cookie)
}

// GetSessionCookie reads the signed session token from the cookie
func GetSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// cookieSigner produces and verifies "id.signature" session tokens so a
// client cannot mint or alter session IDs.
type cookieSigner struct {
	secret []byte
}

func newCookieSigner(secret string) *cookieSigner {
	if secret == "" {
		log.Println("warning: SESSION_SECRET is not set; using a random secret, sessions reset on restart")
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic("cannot read random bytes for session secret: " + err.Error())
		}
		return &cookieSigner{secret: buf}
	}
	return &cookieSigner{secret: []byte(secret)}
}

func (cs *cookieSigner) sign(sessionID string) string {
	mac := hmac.New(sha256.New, cs.secret)
	mac.Write([]byte(sessionID))
	return sessionID + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify returns the session ID when the token signature checks out.
func (cs *cookieSigner) verify(token string) (string, bool) {
	i := strings.LastIndex(token, ".")
	if i <= 0 {
		return "", false
	}
	sessionID, sig := token[:i], token[i+1:]
	mac := hmac.New(sha256.New, cs.secret)
	mac.Write([]byte(sessionID))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return sessionID, true
}
