// internal/app/system/flash/flash.go
package flash

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionName = "tantra-flash"

// Categories rendered by the layout.
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is one queued notice.
type Message struct {
	Category string
	Text     string
}

// Store queues one-shot messages in a signed cookie so they survive the
// redirect after a form post.
type Store struct {
	cookies *sessions.CookieStore
	log     *zap.Logger
}

// New builds a Store. secure marks cookies Secure (use false for plain-http dev).
func New(key string, secure bool, log *zap.Logger) (*Store, error) {
	if key == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(key) < 32 {
		log.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	cs := sessions.NewCookieStore([]byte(key))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs, log: log}, nil
}

// Add queues a message for the next page render. Must be called before the
// response header is written. A nil Store drops the message.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category, text string) {
	if s == nil {
		return
	}
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie yields a fresh session; keep going.
		s.log.Debug("flash session reset", zap.Error(err))
	}
	sess.AddFlash(category + "|" + text)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash save failed", zap.Error(err))
	}
}

// Pop returns and clears queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if s == nil {
		return nil
	}
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash clear failed", zap.Error(err))
	}
	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		cat, text, found := strings.Cut(str, "|")
		if !found {
			cat, text = Info, str
		}
		out = append(out, Message{Category: cat, Text: text})
	}
	return out
}
