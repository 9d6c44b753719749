package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser_Upserts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	again, err := env.users.RegisterUser(ctx, 1001, "alice_new", "Алиса", "", "en")
	require.NoError(t, err)
	assert.Equal(t, env.alice.ID, again.ID)

	stored, err := env.users.GetByTelegramID(ctx, 1001)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice_new", stored.Username)
	assert.Equal(t, "Алиса", stored.DisplayName())
	assert.Equal(t, "en", stored.LanguageCode)
}

func TestUserService_DistinctIDs(t *testing.T) {
	env := newTestEnv(t)

	assert.NotEqual(t, env.alice.ID, env.bob.ID)
	assert.NotEqual(t, env.bob.ID, env.carol.ID)
}

func TestUserService_Lookups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	missing, err := env.users.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	got, err := env.users.GetByID(ctx, env.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), got.TelegramID)

	_, err = env.users.GetByID(ctx, 9999)
	requireKind(t, err, apperr.KindNotFound)
}
