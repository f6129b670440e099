package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/queue"
)

type CaptureLeadInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Interest string `json:"interest,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Message  string `json:"message,omitempty"`
}

// CaptureLeadUseCase records a visitor inquiry and queues the staff
// follow-up notification. The queue is best effort: a broken broker must
// never lose the lead itself.
type CaptureLeadUseCase struct {
	Leads entity.LeadCreator
	Queue QueueProducerInterface
}

func NewCaptureLeadUseCase(leads entity.LeadCreator, producer QueueProducerInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Leads: leads, Queue: producer}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead := entity.NewLead(strings.TrimSpace(input.Name), strings.TrimSpace(input.Phone))
	lead.Email = optional(input.Email)
	lead.Interest = optional(input.Interest)
	lead.Notes = optional(input.Notes)
	lead.Message = optional(input.Message)

	if err := uc.Leads.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	if uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Phone:     lead.Phone,
			Email:     input.Email,
			Interest:  input.Interest,
			Notes:     input.Notes,
			Message:   input.Message,
			CreatedAt: lead.CreatedAt,
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("⚠️ lead %s saved but follow-up publish failed: %v", lead.ID, err)
		}
	}

	return lead, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
