package database

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// withUpdatedAt guarantees every patch stamps updated_at.
func withUpdatedAt(fields map[string]any) map[string]any {
	if _, ok := fields["updated_at"]; ok {
		return fields
	}
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["updated_at"] = time.Now().UTC()
	return out
}

// buildSet renders a SET clause from a partial-update field map. Keys are
// sorted so the generated SQL is stable. jsonb-shaped values are marshaled
// here, at the single storage boundary.
func buildSet(fields map[string]any) (string, []any, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		parts = append(parts, fmt.Sprintf("%s = $%d", k, i+1))
		v, err := sqlValue(fields[k])
		if err != nil {
			return "", nil, fmt.Errorf("field %s: %w", k, err)
		}
		args = append(args, v)
	}
	return strings.Join(parts, ", "), args, nil
}

func sqlValue(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any, []string, []any:
		return json.Marshal(val)
	case json.RawMessage:
		return []byte(val), nil
	default:
		return v, nil
	}
}
