package services

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/skulab/stockroom/internal/config"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles admin authentication and session tracking
type AuthService interface {
	Login(username, password string) (string, error)
	Verify(token string) error
	Logout(token string)
}

// AuthServiceImpl implements AuthService with in-memory sessions
type AuthServiceImpl struct {
	username string
	password string
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewAuthService creates a new auth service for the configured admin account
func NewAuthService(cfg *config.AdminConfig) AuthService {
	return &AuthServiceImpl{
		username: cfg.Username,
		password: cfg.Password,
		ttl:      cfg.SessionTTL,
		sessions: make(map[string]time.Time),
	}
}

// Login checks the supplied credentials and issues a session token
func (s *AuthServiceImpl) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		log.Warn().Str("username", username).Msg("login rejected")
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.sessions[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()

	log.Info().Str("username", username).Msg("admin logged in")
	return token, nil
}

// Verify reports whether the given token belongs to a live session
func (s *AuthServiceImpl) Verify(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	if time.Now().After(expiry) {
		delete(s.sessions, token)
		return ErrSessionExpired
	}
	return nil
}

// Logout discards the session for the given token. Unknown tokens are ignored.
func (s *AuthServiceImpl) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// purgeExpiredLocked drops expired sessions. Caller must hold mu.
func (s *AuthServiceImpl) purgeExpiredLocked() {
	now := time.Now()
	for token, expiry := range s.sessions {
		if now.After(expiry) {
			delete(s.sessions, token)
		}
	}
}
