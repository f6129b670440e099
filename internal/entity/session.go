package entity

import (
	"context"
	"time"
)

// Session is the server side of the admin session cookie. Only the sha256 of
// the opaque token is stored; possession of the raw token is the credential.
type Session struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is an administrative account. There is a single actor class:
// every admin can do everything behind the session gate.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByTokenHash(ctx context.Context, hash string) (*Session, error)
	Extend(ctx context.Context, hash string, expiresAt time.Time) error
	Revoke(ctx context.Context, hash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Insert(ctx context.Context, u *AdminUser) error
	Count(ctx context.Context) (int, error)
}
