package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		conflict bool
	}{
		{"nil", nil, false},
		{"plain", plain, false},
		{"serialization", &pgconn.PgError{Code: CodeSerializationFailure}, true},
		{"deadlock", &pgconn.PgError{Code: CodeDeadlockDetected}, true},
		{"unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation}), true},
		{"other pg error", &pgconn.PgError{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.conflict, errors.Is(got, apperr.ErrConflict))
			assert.True(t, errors.Is(got, tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("get slot: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("other")))
}
