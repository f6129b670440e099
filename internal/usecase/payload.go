package usecase

import (
	"bytes"
	"encoding/json"
)

// Payload is a decoded update body. Keeping the raw JSON per key lets the
// reconciler tell "field absent" apart from "field explicitly null", which is
// the whole point of partial updates.
type Payload map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stringField decodes an optional string value. Explicit null returns
// (nil, nil) so the caller can clear the column.
func (p Payload) stringField(key string) (*string, error) {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ValidationError{key, "must be a string"}
	}
	return &s, nil
}

func (p Payload) requiredString(key string) (string, error) {
	s, err := p.stringField(key)
	if err != nil {
		return "", err
	}
	if s == nil || *s == "" {
		return "", ValidationError{key, "is required"}
	}
	return *s, nil
}

func (p Payload) boolField(key string) (*bool, error) {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, ValidationError{key, "must be a boolean"}
	}
	return &b, nil
}

func (p Payload) intField(key string) (*int, error) {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, ValidationError{key, "must be an integer"}
	}
	return &n, nil
}
