package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	LegalPrivacy = "privacy"
	LegalTerms   = "terms"
	LegalCookies = "cookies"
)

// LegalPage is a long-form HTML page (privacy policy, terms of service).
// Same single-active-per-type rule as ContentSection.
type LegalPage struct {
	ID        string    `json:"id"`
	PageType  string    `json:"page_type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LegalPageRepository interface {
	List(ctx context.Context) ([]*LegalPage, error)
	FindActiveByType(ctx context.Context, pageType string) (*LegalPage, error)
	Insert(ctx context.Context, p *LegalPage) error
	Patch(ctx context.Context, id string, fields map[string]any) (*LegalPage, error)
	Delete(ctx context.Context, id string) error
}

func NewLegalPage(pageType, title, content string) *LegalPage {
	now := time.Now().UTC()
	return &LegalPage{
		ID:        uuid.New().String(),
		PageType:  pageType,
		Title:     title,
		Content:   content,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
