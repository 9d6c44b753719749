package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad %s", "title"), KindValidation},
		{"not found", NotFound("slot not found"), KindNotFound},
		{"forbidden", Forbidden("not yours"), KindForbidden},
		{"conflict", Conflict("locked"), KindConflict},
		{"wrapped", fmt.Errorf("propose swap: %w", Conflict("locked")), KindConflict},
		{"plain", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("respond: %w", Conflict("swap request has already been %s", "accepted"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "respond: swap request has already been accepted", err.Error())
}

func TestWrapConflictKeepsCause(t *testing.T) {
	cause := errors.New("serialization failure")
	err := WrapConflict(cause, "concurrent update")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "concurrent update: serialization failure", err.Error())
	assert.Equal(t, "conflict", KindConflict.String())
}
