package entity

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TeamMember is a person on the team roster. MemberID is the URL-safe slug
// used in public links; once set it is never recomputed from the name.
// Contact and Bio are stored as jsonb and may arrive double-encoded from
// older writers, so reads go through DecodeContact/DecodeBio.
type TeamMember struct {
	ID           string         `json:"id"`
	MemberID     string         `json:"member_id"`
	Name         string         `json:"name"`
	Role         *string        `json:"role,omitempty"`
	PhotoURL     *string        `json:"photo_url,omitempty"`
	Contact      map[string]any `json:"contact"`
	Bio          []string       `json:"bio"`
	DisplayOrder int            `json:"display_order"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type TeamMemberRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*TeamMember, error)
	FindByMemberID(ctx context.Context, memberID string) (*TeamMember, error)
	FindByID(ctx context.Context, id string) (*TeamMember, error)
	Insert(ctx context.Context, m *TeamMember) error
	Patch(ctx context.Context, id string, fields map[string]any) (*TeamMember, error)
	Delete(ctx context.Context, id string) error
}

func NewTeamMember(name string) *TeamMember {
	now := time.Now().UTC()
	return &TeamMember{
		ID:        uuid.New().String(),
		MemberID:  MemberSlug(name),
		Name:      name,
		Contact:   map[string]any{},
		Bio:       []string{""},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// MemberSlug derives a URL-safe identifier from a display name.
func MemberSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// DecodeContact parses a stored contact payload into its canonical object
// shape. Accepts a plain JSON object or a JSON string wrapping one (legacy
// double-encoded rows). Anything malformed decodes to an empty object, never
// an error: a broken contact blob must not break the whole record.
func DecodeContact(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &obj); err == nil && obj != nil {
			return obj
		}
	}
	return map[string]any{}
}

// DecodeBio parses a stored bio payload into an ordered paragraph list.
// Accepts a JSON array of strings, a JSON string wrapping one, or a bare
// string (kept untouched as a single paragraph). The result is always
// normalized, so it is never empty.
func DecodeBio(raw []byte) []string {
	if len(raw) == 0 {
		return []string{""}
	}
	var paras []string
	if err := json.Unmarshal(raw, &paras); err == nil {
		return NormalizeBio(paras)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &paras); err == nil {
			return NormalizeBio(paras)
		}
		// Malformed embedded JSON: keep the original string as one paragraph.
		return NormalizeBio([]string{s})
	}
	return []string{""}
}

// NormalizeBio drops empty paragraphs. An all-empty input collapses to a
// single empty paragraph so the field is always a non-empty sequence.
func NormalizeBio(paras []string) []string {
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
