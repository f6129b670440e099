package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// EnsureAdminUser bootstraps the first admin account from the environment.
// A no-op when credentials are unset or any account already exists.
func EnsureAdminUser(ctx context.Context, users entity.AdminUserRepository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &entity.AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Insert(ctx, user); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Printf("👤 Seeded admin account %s", email)
	return nil
}
