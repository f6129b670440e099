package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// UpdateLegalPageUseCase upserts the active legal page of a given type.
type UpdateLegalPageUseCase struct {
	Pages entity.LegalPageRepository
}

func NewUpdateLegalPageUseCase(pages entity.LegalPageRepository) *UpdateLegalPageUseCase {
	return &UpdateLegalPageUseCase{Pages: pages}
}

func (uc *UpdateLegalPageUseCase) Execute(ctx context.Context, payload Payload) (*entity.LegalPage, error) {
	pageType, err := payload.requiredString("page_type")
	if err != nil {
		return nil, err
	}

	existing, err := uc.Pages.FindActiveByType(ctx, pageType)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, fmt.Errorf("load legal page %q: %w", pageType, err)
	}

	if existing == nil {
		title, err := payload.requiredString("title")
		if err != nil {
			return nil, err
		}
		content, err := payload.requiredString("content")
		if err != nil {
			return nil, err
		}
		p := entity.NewLegalPage(pageType, title, content)
		if err := uc.Pages.Insert(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	fields := map[string]any{}
	if _, ok := payload["title"]; ok {
		title, err := payload.requiredString("title")
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if _, ok := payload["content"]; ok {
		content, err := payload.requiredString("content")
		if err != nil {
			return nil, err
		}
		fields["content"] = content
	}
	if active, err := payload.boolField("is_active"); err != nil {
		return nil, err
	} else if active != nil {
		fields["is_active"] = *active
	}

	if len(fields) == 0 {
		return nil, ValidationError{"payload", "no updatable fields supplied"}
	}

	fields["updated_at"] = time.Now().UTC()
	return uc.Pages.Patch(ctx, existing.ID, fields)
}
