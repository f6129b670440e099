package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// UpdateSectionUseCase commits an admin edit to a content section and marks
// the cached entry for its section type stale, so the next public read
// refetches. If no active section of the type exists yet, the edit creates
// one; otherwise it patches the active row in place.
type UpdateSectionUseCase struct {
	Sections entity.SectionRepository
	Cache    CacheInvalidator
}

func NewUpdateSectionUseCase(sections entity.SectionRepository, cache CacheInvalidator) *UpdateSectionUseCase {
	return &UpdateSectionUseCase{Sections: sections, Cache: cache}
}

func (uc *UpdateSectionUseCase) Execute(ctx context.Context, payload Payload) (*entity.ContentSection, error) {
	sectionType, err := payload.requiredString("section_type")
	if err != nil {
		return nil, err
	}

	existing, err := uc.Sections.FindActiveByType(ctx, sectionType)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, fmt.Errorf("load section %q: %w", sectionType, err)
	}

	var result *entity.ContentSection
	if existing == nil {
		result, err = uc.insert(ctx, sectionType, payload)
	} else {
		result, err = uc.update(ctx, existing, payload)
	}
	if err != nil {
		return nil, err
	}

	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, sectionType)
	}
	return result, nil
}

func (uc *UpdateSectionUseCase) insert(ctx context.Context, sectionType string, payload Payload) (*entity.ContentSection, error) {
	title, err := payload.requiredString("title")
	if err != nil {
		return nil, err
	}

	s := entity.NewContentSection(sectionType, title)
	if s.Subtitle, err = payload.stringField("subtitle"); err != nil {
		return nil, err
	}
	if s.Description, err = payload.stringField("description"); err != nil {
		return nil, err
	}
	if s.CTAText, err = payload.stringField("cta_text"); err != nil {
		return nil, err
	}
	if s.CTALink, err = payload.stringField("cta_link"); err != nil {
		return nil, err
	}
	if order, err := payload.intField("display_order"); err != nil {
		return nil, err
	} else if order != nil {
		s.DisplayOrder = *order
	}
	if raw, ok := payload["data"]; ok && !isNull(raw) {
		s.Data = json.RawMessage(raw)
	}

	if err := uc.Sections.Insert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *UpdateSectionUseCase) update(ctx context.Context, existing *entity.ContentSection, payload Payload) (*entity.ContentSection, error) {
	fields := map[string]any{}

	if _, ok := payload["title"]; ok {
		title, err := payload.requiredString("title")
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	for _, key := range []string{"subtitle", "description", "cta_text", "cta_link"} {
		if _, ok := payload[key]; !ok {
			continue
		}
		v, err := payload.stringField(key)
		if err != nil {
			return nil, err
		}
		if v == nil {
			fields[key] = nil
		} else {
			fields[key] = *v
		}
	}
	if order, err := payload.intField("display_order"); err != nil {
		return nil, err
	} else if order != nil {
		fields["display_order"] = *order
	}
	if active, err := payload.boolField("is_active"); err != nil {
		return nil, err
	} else if active != nil {
		fields["is_active"] = *active
	}
	if raw, ok := payload["data"]; ok {
		if isNull(raw) {
			fields["data"] = nil
		} else {
			fields["data"] = json.RawMessage(raw)
		}
	}

	if len(fields) == 0 {
		return nil, ValidationError{"payload", "no updatable fields supplied"}
	}

	fields["updated_at"] = time.Now().UTC()
	return uc.Sections.Patch(ctx, existing.ID, fields)
}
