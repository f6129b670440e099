package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// SessionRepository backs the session gate. It implements both the session
// and admin-user stores; they live in the same schema and always travel
// together.
type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO admin_sessions (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, s.TokenHash, s.UserID, s.ExpiresAt, s.CreatedAt)
	return mapError("create session", err)
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, hash string) (*entity.Session, error) {
	query := `
		SELECT token_hash, user_id, expires_at, created_at
		FROM admin_sessions
		WHERE token_hash = $1
	`
	var s entity.Session
	err := r.DB.QueryRowContext(ctx, query, hash).Scan(&s.TokenHash, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, mapError("find session", err)
	}
	return &s, nil
}

func (r *SessionRepository) Extend(ctx context.Context, hash string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE admin_sessions SET expires_at = $1 WHERE token_hash = $2`, expiresAt, hash)
	if err != nil {
		return mapError("extend session", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) Revoke(ctx context.Context, hash string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token_hash = $1`, hash)
	if err != nil {
		return mapError("revoke session", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, mapError("delete expired sessions", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// AdminUserRepository methods.

func (r *SessionRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	query := `SELECT id, email, password_hash, created_at FROM admin_users WHERE lower(email) = lower($1)`

	var u entity.AdminUser
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError("find admin user", err)
	}
	return &u, nil
}

func (r *SessionRepository) Insert(ctx context.Context, u *entity.AdminUser) error {
	query := `INSERT INTO admin_users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	return mapError("insert admin user", err)
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, mapError("count admin users", err)
	}
	return n, nil
}
