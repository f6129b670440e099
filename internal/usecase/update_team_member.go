package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// UpdateTeamMemberUseCase reconciles an admin team-roster submission into a
// single insert or patch. Supplied fields win, absent fields are preserved,
// and the jsonb payloads (contact, bio) are normalized to their canonical
// shape before anything is persisted.
type UpdateTeamMemberUseCase struct {
	Members entity.TeamMemberRepository
}

func NewUpdateTeamMemberUseCase(members entity.TeamMemberRepository) *UpdateTeamMemberUseCase {
	return &UpdateTeamMemberUseCase{Members: members}
}

func (uc *UpdateTeamMemberUseCase) Execute(ctx context.Context, payload Payload) (*entity.TeamMember, error) {
	id, err := payload.stringField("id")
	if err != nil {
		return nil, err
	}

	if id == nil {
		return uc.insert(ctx, payload)
	}

	existing, err := uc.Members.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load team member %s: %w", *id, err)
	}
	return uc.update(ctx, existing, payload)
}

func (uc *UpdateTeamMemberUseCase) insert(ctx context.Context, payload Payload) (*entity.TeamMember, error) {
	name, err := payload.requiredString("name")
	if err != nil {
		return nil, err
	}

	m := entity.NewTeamMember(name)

	// An explicit member_id always wins over the derived slug.
	if memberID, err := payload.stringField("member_id"); err != nil {
		return nil, err
	} else if memberID != nil && *memberID != "" {
		m.MemberID = *memberID
	}
	if m.MemberID == "" {
		return nil, ValidationError{"member_id", "could not be derived from name"}
	}

	if m.Role, err = payload.stringField("role"); err != nil {
		return nil, err
	}
	if m.PhotoURL, err = payload.stringField("photo_url"); err != nil {
		return nil, err
	}
	if order, err := payload.intField("display_order"); err != nil {
		return nil, err
	} else if order != nil {
		m.DisplayOrder = *order
	}
	if active, err := payload.boolField("is_active"); err != nil {
		return nil, err
	} else if active != nil {
		m.IsActive = *active
	}
	if raw, ok := payload["contact"]; ok {
		m.Contact = entity.DecodeContact(raw)
	}
	if raw, ok := payload["bio"]; ok {
		m.Bio = entity.DecodeBio(raw)
	}

	if err := uc.Members.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *UpdateTeamMemberUseCase) update(ctx context.Context, existing *entity.TeamMember, payload Payload) (*entity.TeamMember, error) {
	fields := map[string]any{}

	if _, ok := payload["name"]; ok {
		name, err := payload.requiredString("name")
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}

	// member_id is recomputed only when missing from both the stored record
	// and the payload; once set it is never silently rederived.
	if memberID, err := payload.stringField("member_id"); err != nil {
		return nil, err
	} else if memberID != nil && *memberID != "" {
		fields["member_id"] = *memberID
	} else if existing.MemberID == "" {
		name := existing.Name
		if v, ok := fields["name"].(string); ok {
			name = v
		}
		fields["member_id"] = entity.MemberSlug(name)
	}

	for _, key := range []string{"role", "photo_url"} {
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
	if raw, ok := payload["contact"]; ok {
		fields["contact"] = entity.DecodeContact(raw)
	}
	if raw, ok := payload["bio"]; ok {
		fields["bio"] = entity.DecodeBio(raw)
	}

	if len(fields) == 0 {
		return nil, ValidationError{"payload", "no updatable fields supplied"}
	}

	fields["updated_at"] = time.Now().UTC()
	return uc.Members.Patch(ctx, existing.ID, fields)
}
