package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestStore_AllowPerUser(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(1, 2, withClock(clock.now))

	assert.True(t, s.Allow(1))
	assert.True(t, s.Allow(1))
	assert.False(t, s.Allow(1), "burst exhausted")

	assert.True(t, s.Allow(2), "other users have their own bucket")

	clock.t = clock.t.Add(time.Second)
	assert.True(t, s.Allow(1), "token refilled after a second")
}

func TestStore_CleanupForgetsIdleUsers(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(1, 1, withClock(clock.now), WithIdleTTL(time.Minute))

	s.Allow(1)
	clock.t = clock.t.Add(30 * time.Second)
	s.Allow(2)
	require.Equal(t, 2, s.Len())

	clock.t = clock.t.Add(45 * time.Second)
	s.Cleanup()
	assert.Equal(t, 1, s.Len())

	clock.t = clock.t.Add(time.Hour)
	s.Cleanup()
	assert.Equal(t, 0, s.Len())
}

func TestStore_JanitorStopsWithContext(t *testing.T) {
	s := NewStore(1, 1, WithCleanupEvery(0))
	s.StartJanitor(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	s = NewStore(1, 1, WithCleanupEvery(10*time.Millisecond), WithIdleTTL(time.Nanosecond))
	s.Allow(1)
	s.StartJanitor(ctx)
	defer cancel()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSenderID(t *testing.T) {
	id, ok := senderID(&models.Update{Message: &models.Message{From: &models.User{ID: 7}}})
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	id, ok = senderID(&models.Update{CallbackQuery: &models.CallbackQuery{From: models.User{ID: 9}}})
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)

	_, ok = senderID(&models.Update{Message: &models.Message{}})
	assert.False(t, ok)
	_, ok = senderID(&models.Update{})
	assert.False(t, ok)
}

func TestMiddleware_DropsLimitedMessages(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(1, 1, withClock(clock.now))

	calls := 0
	h := Middleware(s, zap.NewNop())(func(context.Context, *bot.Bot, *models.Update) { calls++ })

	msg := &models.Update{Message: &models.Message{From: &models.User{ID: 5}}}
	h(context.Background(), nil, msg)
	h(context.Background(), nil, msg)
	assert.Equal(t, 1, calls)

	h(context.Background(), nil, &models.Update{})
	assert.Equal(t, 2, calls, "updates without sender pass through")
}
