package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

// Update modes for lead mutations. Callers should send update_mode
// explicitly; the field-shape heuristic only exists for older clients that
// predate the flag.
const (
	UpdateModePatch   = "patch"
	UpdateModeReplace = "replace"
)

// annotationFields are the staff bookkeeping fields a bare payload may touch
// and still be classified as a partial update by the legacy heuristic.
var annotationFields = map[string]bool{
	"status":         true,
	"notes":          true,
	"team_member_id": true,
}

// mutableLeadFields is every column an explicit patch may touch.
var mutableLeadFields = []string{
	"name", "phone", "email", "interest", "notes", "message", "status", "team_member_id",
}

// UpdateLeadUseCase reconciles an incoming update payload against the stored
// lead and dispatches exactly one command to the repository. A partial update
// touches only the fields present in the payload; a replace rewrites the
// visitor-supplied fields and requires name and phone. Either the full
// resolved field set is sent, or nothing is.
type UpdateLeadUseCase struct {
	Leads entity.LeadRepository
}

func NewUpdateLeadUseCase(leads entity.LeadRepository) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, payload Payload) (*entity.Lead, error) {
	if _, err := uc.Leads.FindByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load lead %s: %w", id, err)
	}

	mode, err := resolveUpdateMode(payload)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if mode == UpdateModePatch {
		fields, err = uc.patchFields(payload)
	} else {
		fields, err = uc.replaceFields(payload)
	}
	if err != nil {
		return nil, err
	}

	fields["updated_at"] = time.Now().UTC()
	return uc.Leads.Patch(ctx, id, fields)
}

// resolveUpdateMode honors an explicit update_mode and only falls back to
// inferring intent from payload shape when the flag is missing: a small
// payload made up entirely of annotation fields is treated as a patch.
func resolveUpdateMode(payload Payload) (string, error) {
	if raw, ok := payload["update_mode"]; ok && !isNull(raw) {
		mode, err := payload.stringField("update_mode")
		if err != nil {
			return "", err
		}
		switch *mode {
		case UpdateModePatch, UpdateModeReplace:
			return *mode, nil
		default:
			return "", ValidationError{"update_mode", "must be \"patch\" or \"replace\""}
		}
	}

	keys := 0
	onlyAnnotations := true
	for k := range payload {
		if k == "update_mode" {
			continue
		}
		keys++
		if !annotationFields[k] {
			onlyAnnotations = false
		}
	}
	if keys > 0 && keys <= 3 && onlyAnnotations {
		return UpdateModePatch, nil
	}
	return UpdateModeReplace, nil
}

func (uc *UpdateLeadUseCase) patchFields(payload Payload) (map[string]any, error) {
	fields := map[string]any{}
	for _, key := range mutableLeadFields {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		switch key {
		case "name", "phone", "status":
			// Required columns cannot be cleared, even by an explicit null.
			if isNull(raw) {
				return nil, ValidationError{key, "cannot be null"}
			}
			v, err := payload.requiredString(key)
			if err != nil {
				return nil, err
			}
			fields[key] = v
		default:
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
	}
	if len(fields) == 0 {
		return nil, ValidationError{"payload", "no updatable fields supplied"}
	}
	return fields, nil
}

// replaceFields rewrites the visitor-supplied contact fields wholesale.
// Status and assignment are staff annotations: they survive a replace unless
// the payload names them.
func (uc *UpdateLeadUseCase) replaceFields(payload Payload) (map[string]any, error) {
	name, err := payload.requiredString("name")
	if err != nil {
		return nil, err
	}
	phone, err := payload.requiredString("phone")
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":  name,
		"phone": phone,
	}
	for _, key := range []string{"email", "interest", "notes", "message"} {
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
	for _, key := range []string{"status", "team_member_id"} {
		if _, ok := payload[key]; !ok {
			continue
		}
		v, err := payload.stringField(key)
		if err != nil {
			return nil, err
		}
		if v == nil {
			if key == "status" {
				return nil, ValidationError{"status", "cannot be null"}
			}
			fields[key] = nil
		} else {
			fields[key] = *v
		}
	}
	return fields, nil
}
