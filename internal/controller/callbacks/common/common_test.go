package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUIDFromCallback(t *testing.T) {
	id := uuid.New()

	got, err := ParseUUIDFromCallback(CallbackData("slot_view:", id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"slot_view", "slot_view:", "slot_view:123", "slot_view:" + id.String() + ":x"} {
		_, err := ParseUUIDFromCallback(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestErrorMessage(t *testing.T) {
	wrapped := fmt.Errorf("propose swap: %w", apperr.Conflict("slot locked"))

	assert.Contains(t, ErrorMessage(ErrUserNotFound), "/start")
	assert.Contains(t, ErrorMessage(apperr.Validation("bad")), "Некорректные")
	assert.Contains(t, ErrorMessage(wrapped), "состояние уже изменилось")
	assert.Equal(t, "❌ Произошла ошибка", ErrorMessage(errors.New("db down")))

	assert.Contains(t, SlotErrorMessage(wrapped), "🔒")
	assert.Contains(t, SwapErrorMessage(apperr.Forbidden("no")), "не вам")
	assert.Contains(t, SwapErrorMessage(errors.New("db down")), "Произошла ошибка")
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(fmt.Errorf("wrap: %w", apperr.NotFound("x"))))
	assert.False(t, IsDomainError(errors.New("timeout")))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.False(t, IsMessageNotModifiedError(errors.New("chat not found")))
}

func TestParseWeekOffset(t *testing.T) {
	offset, err := ParseWeekOffset("week:-3")
	require.NoError(t, err)
	assert.Equal(t, -3, offset)

	offset, err = ParseWeekOffset("week:0")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	_, err = ParseWeekOffset("week:abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseWeekOffset("week")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
