package usecase

import (
	"context"

	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/queue"
)

// QueueProducerInterface publishes follow-up work for newly captured leads.
type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}

// CacheInvalidator marks a cached content-section key stale after a commit.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, sectionType string)
}
