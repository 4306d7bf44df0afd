package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession means the user has to log in again.
var ErrNoSession = errors.New("not logged in")

// SessionGuard decides locally whether the stored token is still usable.
// The signature is not checked here; the server does that on every request.
type SessionGuard struct {
	store TokenStore
	now   func() time.Time
}

func NewSessionGuard(store TokenStore, now func() time.Time) *SessionGuard {
	if now == nil {
		now = time.Now
	}
	return &SessionGuard{store: store, now: now}
}

// Check returns the stored token if its exp claim lies in the future.
// An expired or undecodable token is removed from the store.
func (g *SessionGuard) Check() (string, error) {
	token, err := g.store.Token()
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", g.discard()
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(g.now()) {
		return "", g.discard()
	}
	return token, nil
}

func (g *SessionGuard) discard() error {
	if err := g.store.Clear(); err != nil {
		return err
	}
	return ErrNoSession
}
