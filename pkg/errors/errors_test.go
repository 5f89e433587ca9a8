package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := NewNotFound("doctor", nil)
	wrapped := fmt.Errorf("loading schedule: %w", inner)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrNotFound, appErr.Code)

	_, ok = As(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestIsCode(t *testing.T) {
	err := NewInvalidRange("start must be before end")
	assert.True(t, IsCode(err, ErrInvalidRange))
	assert.False(t, IsCode(err, ErrBadRequest))
	assert.False(t, IsCode(nil, ErrInvalidRange))
}

func TestSlotConflictCarriesInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	err := NewSlotConflict(start, end)
	require.NotNil(t, err.Conflict)
	assert.Equal(t, start, err.Conflict.Start)
	assert.Equal(t, end, err.Conflict.End)
	assert.Contains(t, err.Message, "overlaps an existing booking")
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewTransaction("availability save", cause)

	assert.Contains(t, err.Error(), "availability save failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}
