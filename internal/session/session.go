// Package session holds the bearer token and cached user identity of the
// logged-in client. It is the single authority the route guard and the HTTP
// access layer consult.
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user-console/internal/logger"
	"github.com/user-console/internal/model"
	"github.com/user-console/internal/storage"
)

type Session struct {
	mu    sync.RWMutex
	store *storage.Store
	token string
	user  *model.User
}

// New rehydrates the session from durable storage. A token whose exp claim
// has passed is discarded immediately; no server round trip is needed to
// detect local expiry.
func New(store *storage.Store) *Session {
	s := &Session{store: store}

	if token, ok := store.Get(storage.KeyToken); ok {
		if tokenExpired(token) {
			logger.Info("stored token expired, clearing session")
			_ = s.Clear()
			return s
		}
		s.token = token
	}

	if raw, ok := store.Get(storage.KeyUser); ok {
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			logger.Warn("stored user is unreadable, discarding", "error", err)
			_ = store.Delete(storage.KeyUser)
		} else {
			s.user = &user
		}
	}

	return s
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Establish stores a fresh token and identity, typically after login.
func (s *Session) Establish(token string, user *model.User) error {
	if token == "" {
		return fmt.Errorf("refusing to establish session with empty token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(storage.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.token = token

	return s.persistUser(user)
}

// SetUser updates only the cached identity. A nil user clears the durable
// user entry and leaves the token untouched.
func (s *Session) SetUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistUser(user)
}

// persistUser requires the write lock.
func (s *Session) persistUser(user *model.User) error {
	if user == nil {
		if err := s.store.Delete(storage.KeyUser); err != nil {
			return fmt.Errorf("failed to clear user: %w", err)
		}
		s.user = nil
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(storage.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	s.user = user
	return nil
}

// Clear destroys the session: token and identity, memory and storage.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	if err := s.store.Delete(storage.KeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.store.Delete(storage.KeyUser); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}

// Authenticated reports whether a live token is present. An expired token is
// cleared as a side effect, mirroring the original client behavior. Validity
// beyond expiry (revocation) is only detectable by the server.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}
	if tokenExpired(token) {
		logger.Info("token expired")
		_ = s.Clear()
		return false
	}
	return true
}

// tokenExpired decodes the exp claim without verifying the signature; the
// server is the sole authority on signature validity. An unreadable token
// counts as expired, a token with no exp claim as live.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
