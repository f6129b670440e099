package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section types known to the marketing site. New types can appear without a
// code change; these constants only cover the blocks the frontend renders today.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionContact  = "contact"
	SectionFooter   = "footer"
)

// ContentSection is one editable block of marketing copy. At most one active
// section per section_type is authoritative for rendering; inactive rows are
// drafts or history. Sections are deactivated, not deleted.
type ContentSection struct {
	ID           string          `json:"id"`
	SectionType  string          `json:"section_type"`
	Title        string          `json:"title"`
	Subtitle     *string         `json:"subtitle,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CTAText      *string         `json:"cta_text,omitempty"`
	CTALink      *string         `json:"cta_link,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	IsActive     bool            `json:"is_active"`
	DisplayOrder int             `json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type SectionRepository interface {
	List(ctx context.Context) ([]*ContentSection, error)
	FindActiveByType(ctx context.Context, sectionType string) (*ContentSection, error)
	Insert(ctx context.Context, s *ContentSection) error
	Patch(ctx context.Context, id string, fields map[string]any) (*ContentSection, error)
	Delete(ctx context.Context, id string) error
}

// NewContentSection creates a section with ID and timestamps filled in.
func NewContentSection(sectionType, title string) *ContentSection {
	now := time.Now().UTC()
	return &ContentSection{
		ID:          uuid.New().String(),
		SectionType: sectionType,
		Title:       title,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
