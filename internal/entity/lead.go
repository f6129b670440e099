package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const LeadStatusNew = "new"

// Lead is a visitor inquiry from the public site. Name and phone are the only
// required fields; everything else is optional follow-up material added by
// staff. Creation is open to unauthenticated visitors; reads and mutations
// are staff-only.
type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email"`
	Interest     *string   `json:"interest"`
	Notes        *string   `json:"notes"`
	Message      *string   `json:"message"`
	Status       string    `json:"status"`
	TeamMemberID *string   `json:"team_member_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LeadRepository interface {
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Insert(ctx context.Context, lead *Lead) error
	Patch(ctx context.Context, id string, fields map[string]any) (*Lead, error)
	Delete(ctx context.Context, id string) error
}

// LeadCreator is the narrow write surface handed to unauthenticated routes.
// Public callers can insert a lead and nothing else.
type LeadCreator interface {
	Insert(ctx context.Context, lead *Lead) error
}

func NewLead(name, phone string) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
