package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testDay = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

// testEnv собирает сервисы поверх хранилища в памяти
type testEnv struct {
	store    *memory.Store
	users    *UserService
	slots    *SlotService
	swaps    *SwapService
	calendar *CalendarService

	// now общие часы хранилища и сервисов
	now time.Time

	alice, bob, carol *model.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{now: testDay.Add(-24 * time.Hour)}
	clock := func() time.Time { return env.now }

	store := memory.NewStore(memory.WithClock(clock))
	repos := store.Repositories()

	env.store = store
	env.users = NewUserService(repos.Users, zap.NewNop())
	env.slots = NewSlotService(repos, store)
	env.swaps = NewSwapService(repos, store)
	env.swaps.now = clock
	env.calendar = NewCalendarService(repos.Slots)
	env.calendar.now = clock

	ctx := context.Background()
	var err error
	env.alice, err = env.users.RegisterUser(ctx, 1001, "alice", "Alice", "A", "ru")
	require.NoError(t, err)
	env.bob, err = env.users.RegisterUser(ctx, 1002, "bob", "Bob", "B", "ru")
	require.NoError(t, err)
	env.carol, err = env.users.RegisterUser(ctx, 1003, "carol", "Carol", "C", "en")
	require.NoError(t, err)

	return env
}

// mustSlot создаёт слот длиной час, начиная через offset от testDay
func (e *testEnv) mustSlot(t *testing.T, owner *model.User, title string, offset time.Duration, status model.SlotStatus) *model.Slot {
	t.Helper()

	slot, err := e.slots.CreateSlot(context.Background(), owner.ID, CreateSlotInput{
		Title:     title,
		StartTime: testDay.Add(offset),
		EndTime:   testDay.Add(offset + time.Hour),
		Status:    status,
	})
	require.NoError(t, err)
	return slot
}

// advance сдвигает часы, вызывать только без параллельных горутин
func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) reload(t *testing.T, slot *model.Slot) *model.Slot {
	t.Helper()

	got, err := e.slots.GetSlot(context.Background(), slot.ID)
	require.NoError(t, err)
	return got
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()

	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "unexpected error: %v", err)
}
