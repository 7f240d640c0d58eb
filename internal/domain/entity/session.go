package entity

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

// sessionIDBytes is the entropy of a session identifier. 32 random bytes
// keep the identifier unguessable without any signing scheme.
const sessionIDBytes = 32

// Session ties a browser to a user across requests. The ID travels in a
// cookie; the UserID lives server-side, keyed by the ID. A zero UserID
// means the session is anonymous.
type Session struct {
	ID     string
	UserID int64
}

// Anonymous reports whether the session is not bound to any user.
func (s *Session) Anonymous() bool {
	return s.UserID == 0
}

// NewSession creates an unbound session with a fresh random identifier.
func NewSession() (*Session, error) {
	idBytes := make([]byte, sessionIDBytes)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, errors.Wrap(err, "failed to generate session id")
	}

	return &Session{ID: hex.EncodeToString(idBytes)}, nil
}
