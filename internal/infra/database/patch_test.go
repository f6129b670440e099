package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

func TestBuildSetStableOrder(t *testing.T) {
	clause, args, err := buildSet(map[string]any{
		"status": "contacted",
		"name":   "Jonas",
		"notes":  nil,
	})

	require.NoError(t, err)
	assert.Equal(t, "name = $1, notes = $2, status = $3", clause)
	assert.Equal(t, []any{"Jonas", nil, "contacted"}, args)
}

func TestBuildSetMarshalsJSONBShapes(t *testing.T) {
	clause, args, err := buildSet(map[string]any{
		"bio":     []string{"Hello"},
		"contact": map[string]any{"phone": "+37060000000"},
	})

	require.NoError(t, err)
	assert.Equal(t, "bio = $1, contact = $2", clause)
	assert.JSONEq(t, `["Hello"]`, string(args[0].([]byte)))
	assert.JSONEq(t, `{"phone":"+37060000000"}`, string(args[1].([]byte)))
}

func TestWithUpdatedAtStampsWhenMissing(t *testing.T) {
	out := withUpdatedAt(map[string]any{"status": "closed"})

	stamp, ok := out["updated_at"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), stamp, time.Second)
	assert.Equal(t, "closed", out["status"])
}

func TestWithUpdatedAtKeepsCallerStamp(t *testing.T) {
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := withUpdatedAt(map[string]any{"updated_at": stamp})

	assert.Equal(t, stamp, out["updated_at"])
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("find lead", nil))
	assert.ErrorIs(t, mapError("find lead", sql.ErrNoRows), entity.ErrNotFound)

	err := mapError("find lead", errors.New("connection refused"))
	assert.ErrorIs(t, err, entity.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "find lead")
}
