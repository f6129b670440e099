package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBio(t *testing.T) {
	assert.Equal(t, []string{"Hello"}, NormalizeBio([]string{"", "Hello", ""}))
	assert.Equal(t, []string{""}, NormalizeBio([]string{"", ""}))
	assert.Equal(t, []string{""}, NormalizeBio(nil))
	assert.Equal(t, []string{"a", "b"}, NormalizeBio([]string{"a", "  ", "b"}))
}

func TestDecodeBio(t *testing.T) {
	assert.Equal(t, []string{"Hello"}, DecodeBio([]byte(`["", "Hello", ""]`)))

	// Double-encoded array from a legacy writer.
	assert.Equal(t, []string{"One", "Two"}, DecodeBio([]byte(`"[\"One\",\"Two\"]"`)))

	// Malformed embedded JSON keeps the original string as one paragraph.
	assert.Equal(t, []string{"not json at all"}, DecodeBio([]byte(`"not json at all"`)))

	assert.Equal(t, []string{""}, DecodeBio(nil))
	assert.Equal(t, []string{""}, DecodeBio([]byte(`12345`)))
}

func TestDecodeContact(t *testing.T) {
	contact := DecodeContact([]byte(`{"phone":"+370600","email":"a@b.lt"}`))
	assert.Equal(t, "+370600", contact["phone"])
	assert.Equal(t, "a@b.lt", contact["email"])

	// Double-encoded object.
	contact = DecodeContact([]byte(`"{\"phone\":\"123\"}"`))
	assert.Equal(t, "123", contact["phone"])

	// Malformed payloads decode to an empty object, never an error.
	assert.Equal(t, map[string]any{}, DecodeContact([]byte(`"broken{"`)))
	assert.Equal(t, map[string]any{}, DecodeContact([]byte(`[1,2]`)))
	assert.Equal(t, map[string]any{}, DecodeContact(nil))
}

func TestMemberSlug(t *testing.T) {
	assert.Equal(t, "jonas-petraitis", MemberSlug("Jonas Petraitis"))
	assert.Equal(t, "a-b-c", MemberSlug("  A.B. C!  "))
	assert.Equal(t, "", MemberSlug("!!!"))
}

func TestNewTeamMemberDerivesSlug(t *testing.T) {
	m := NewTeamMember("Jonas Petraitis")
	assert.Equal(t, "jonas-petraitis", m.MemberID)
	assert.Equal(t, []string{""}, m.Bio)
	assert.NotNil(t, m.Contact)
	assert.True(t, m.IsActive)
}
