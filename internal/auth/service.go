// Package auth issues and validates the opaque admin session credential.
// Sessions live in the storage backend; only the sha256 of the token is
// persisted, and validation slides the expiry forward so an active admin is
// not logged out mid-navigation.
package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// SessionNotifier receives session-change events (login, logout, expiry).
type SessionNotifier interface {
	SetSession(active bool)
}

type Service struct {
	Sessions entity.SessionRepository
	Users    entity.AdminUserRepository
	TTL      time.Duration
	Notifier SessionNotifier
}

// ValidateResult reports a successful validation. When Refreshed is true the
// caller must re-attach the cookie with the new expiry, otherwise the
// session silently dies mid-navigation.
type ValidateResult struct {
	Session   *entity.Session
	Refreshed bool
	ExpiresAt time.Time
}

func NewService(sessions entity.SessionRepository, users entity.AdminUserRepository, ttl time.Duration, notifier SessionNotifier) *Service {
	return &Service{Sessions: sessions, Users: users, TTL: ttl, Notifier: notifier}
}

// Login verifies the password and issues a fresh opaque token.
func (s *Service) Login(ctx context.Context, email, password string) (token string, expiresAt time.Time, err error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", time.Time{}, entity.ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("lookup admin user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, entity.ErrInvalidCredentials
	}

	token = uuid.New().String()
	expiresAt = time.Now().UTC().Add(s.TTL)
	session := &entity.Session{
		TokenHash: HashToken(token),
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.SetSession(true)
	}
	return token, expiresAt, nil
}

// Validate checks a presented token against the session store. Any storage
// failure surfaces as an error so the gate can fail closed. When less than
// half the TTL remains the expiry slides forward and Refreshed is set.
func (s *Service) Validate(ctx context.Context, token string) (*ValidateResult, error) {
	if token == "" {
		return nil, entity.ErrInvalidSession
	}

	hash := HashToken(token)
	session, err := s.Sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			s.notifyLost()
			return nil, entity.ErrInvalidSession
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	now := time.Now().UTC()
	if !session.ExpiresAt.After(now) {
		if err := s.Sessions.Revoke(ctx, hash); err != nil {
			log.Printf("revoke expired session: %v", err)
		}
		s.notifyLost()
		return nil, entity.ErrInvalidSession
	}

	result := &ValidateResult{Session: session, ExpiresAt: session.ExpiresAt}
	if session.ExpiresAt.Sub(now) < s.TTL/2 {
		newExpiry := now.Add(s.TTL)
		if err := s.Sessions.Extend(ctx, hash, newExpiry); err == nil {
			result.Refreshed = true
			result.ExpiresAt = newExpiry
		} else {
			log.Printf("extend session: %v", err)
		}
	}

	if s.Notifier != nil {
		s.Notifier.SetSession(true)
	}
	return result, nil
}

// Logout revokes the session. Revoking an already-dead token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token != "" {
		if err := s.Sessions.Revoke(ctx, HashToken(token)); err != nil && !errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("revoke session: %w", err)
		}
	}
	s.notifyLost()
	return nil
}

func (s *Service) notifyLost() {
	if s.Notifier != nil {
		s.Notifier.SetSession(false)
	}
}

// HashToken is the stored form of a session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", sum)
}
