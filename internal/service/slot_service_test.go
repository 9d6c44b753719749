package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotService_CreateSlot_Defaults(t *testing.T) {
	env := newTestEnv(t)

	slot, err := env.slots.CreateSlot(context.Background(), env.alice.ID, CreateSlotInput{
		Title:     "  Дежурство  ",
		StartTime: testDay,
		EndTime:   testDay.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, slot.ID)
	assert.Equal(t, "Дежурство", slot.Title)
	assert.Equal(t, model.SlotStatusBusy, slot.Status)
	assert.Equal(t, env.alice.ID, slot.OwnerID)
	assert.True(t, slot.EndTime.After(slot.StartTime))
}

func TestSlotService_CreateSlot_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateSlotInput
	}{
		{
			name: "empty title",
			in:   CreateSlotInput{Title: "   ", StartTime: testDay, EndTime: testDay.Add(time.Hour)},
		},
		{
			name: "end equals start",
			in:   CreateSlotInput{Title: "Смена", StartTime: testDay, EndTime: testDay},
		},
		{
			name: "end before start",
			in:   CreateSlotInput{Title: "Смена", StartTime: testDay, EndTime: testDay.Add(-time.Minute)},
		},
		{
			name: "missing start",
			in:   CreateSlotInput{Title: "Смена", EndTime: testDay},
		},
		{
			name: "initial status swap pending",
			in:   CreateSlotInput{Title: "Смена", StartTime: testDay, EndTime: testDay.Add(time.Hour), Status: model.SlotStatusSwapPending},
		},
		{
			name: "unknown status",
			in:   CreateSlotInput{Title: "Смена", StartTime: testDay, EndTime: testDay.Add(time.Hour), Status: "FREE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			slot, err := env.slots.CreateSlot(ctx, env.alice.ID, tt.in)
			requireKind(t, err, apperr.KindValidation)
			assert.Nil(t, slot)

			slots, err := env.slots.ListSlots(ctx, env.alice.ID)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestSlotService_ListSlots_OrderedByStart(t *testing.T) {
	env := newTestEnv(t)

	third := env.mustSlot(t, env.alice, "третий", 5*time.Hour, model.SlotStatusBusy)
	first := env.mustSlot(t, env.alice, "первый", time.Hour, model.SlotStatusSwappable)
	second := env.mustSlot(t, env.alice, "второй", 3*time.Hour, model.SlotStatusBusy)
	env.mustSlot(t, env.bob, "чужой", 0, model.SlotStatusBusy)

	slots, err := env.slots.ListSlots(context.Background(), env.alice.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, []uuid.UUID{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestSlotService_GetSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.mustSlot(t, env.alice, "Смена", 0, model.SlotStatusBusy)

	_, err := env.slots.GetSlot(ctx, uuid.New())
	requireKind(t, err, apperr.KindNotFound)

	_, err = env.slots.GetOwnedSlot(ctx, slot.ID, env.bob.ID)
	requireKind(t, err, apperr.KindForbidden)

	got, err := env.slots.GetOwnedSlot(ctx, slot.ID, env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, slot.ID, got.ID)
}

func TestSlotService_UpdateSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.mustSlot(t, env.alice, "Смена", 0, model.SlotStatusBusy)

	title := "Ночная смена"
	end := testDay.Add(3 * time.Hour)
	swappable := model.SlotStatusSwappable

	updated, err := env.slots.UpdateSlot(ctx, slot.ID, env.alice.ID, SlotPatch{
		Title:   &title,
		EndTime: &end,
		Status:  &swappable,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, end, updated.EndTime)
	assert.Equal(t, model.SlotStatusSwappable, updated.Status)

	stored := env.reload(t, slot)
	assert.Equal(t, title, stored.Title)
}

func TestSlotService_UpdateSlot_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mine := env.mustSlot(t, env.alice, "Моя", 0, model.SlotStatusSwappable)
	theirs := env.mustSlot(t, env.bob, "Чужая", 2*time.Hour, model.SlotStatusSwappable)
	_, err := env.swaps.ProposeSwap(ctx, env.bob.ID, theirs.ID, mine.ID)
	require.NoError(t, err)

	free := env.mustSlot(t, env.alice, "Свободная", 4*time.Hour, model.SlotStatusBusy)

	title := "новое"
	before := testDay.Add(3 * time.Hour)
	empty := ""
	pending := model.SlotStatusSwapPending

	tests := []struct {
		name   string
		slotID uuid.UUID
		caller int64
		patch  SlotPatch
		kind   apperr.Kind
	}{
		{"missing slot", uuid.New(), env.alice.ID, SlotPatch{Title: &title}, apperr.KindNotFound},
		{"not owner", free.ID, env.bob.ID, SlotPatch{Title: &title}, apperr.KindForbidden},
		{"locked by swap", mine.ID, env.alice.ID, SlotPatch{Title: &title}, apperr.KindConflict},
		{"end moves before start", free.ID, env.alice.ID, SlotPatch{EndTime: &before}, apperr.KindValidation},
		{"empty title", free.ID, env.alice.ID, SlotPatch{Title: &empty}, apperr.KindValidation},
		{"status swap pending", free.ID, env.alice.ID, SlotPatch{Status: &pending}, apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.slots.UpdateSlot(ctx, tt.slotID, tt.caller, tt.patch)
			requireKind(t, err, tt.kind)
		})
	}

	stored := env.reload(t, free)
	assert.Equal(t, "Свободная", stored.Title)
	assert.Equal(t, model.SlotStatusBusy, stored.Status)
}

func TestSlotService_SetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	slot := env.mustSlot(t, env.alice, "Смена", 0, model.SlotStatusBusy)

	got, err := env.slots.SetStatus(ctx, slot.ID, env.alice.ID, model.SlotStatusSwappable)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusSwappable, got.Status)

	got, err = env.slots.SetStatus(ctx, slot.ID, env.alice.ID, model.SlotStatusSwappable)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusSwappable, got.Status)

	got, err = env.slots.SetStatus(ctx, slot.ID, env.alice.ID, model.SlotStatusBusy)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBusy, got.Status)

	_, err = env.slots.SetStatus(ctx, slot.ID, env.alice.ID, model.SlotStatusSwapPending)
	requireKind(t, err, apperr.KindValidation)

	_, err = env.slots.SetStatus(ctx, slot.ID, env.bob.ID, model.SlotStatusSwappable)
	requireKind(t, err, apperr.KindForbidden)

	assert.Equal(t, model.SlotStatusBusy, env.reload(t, slot).Status)
}

func TestSlotService_SetStatus_LockedSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mine := env.mustSlot(t, env.alice, "Моя", 0, model.SlotStatusSwappable)
	theirs := env.mustSlot(t, env.bob, "Чужая", time.Hour, model.SlotStatusSwappable)

	_, err := env.swaps.ProposeSwap(ctx, env.alice.ID, mine.ID, theirs.ID)
	require.NoError(t, err)

	_, err = env.slots.SetStatus(ctx, mine.ID, env.alice.ID, model.SlotStatusBusy)
	requireKind(t, err, apperr.KindConflict)
	assert.Equal(t, model.SlotStatusSwapPending, env.reload(t, mine).Status)
}

func TestSlotService_DeleteSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mine := env.mustSlot(t, env.alice, "Моя", 0, model.SlotStatusSwappable)
	theirs := env.mustSlot(t, env.bob, "Чужая", time.Hour, model.SlotStatusSwappable)
	plain := env.mustSlot(t, env.alice, "Обычная", 2*time.Hour, model.SlotStatusBusy)

	_, err := env.swaps.ProposeSwap(ctx, env.bob.ID, theirs.ID, mine.ID)
	require.NoError(t, err)

	requireKind(t, env.slots.DeleteSlot(ctx, mine.ID, env.alice.ID), apperr.KindConflict)
	requireKind(t, env.slots.DeleteSlot(ctx, plain.ID, env.bob.ID), apperr.KindForbidden)
	requireKind(t, env.slots.DeleteSlot(ctx, uuid.New(), env.alice.ID), apperr.KindNotFound)

	require.NoError(t, env.slots.DeleteSlot(ctx, plain.ID, env.alice.ID))
	_, err = env.slots.GetSlot(ctx, plain.ID)
	requireKind(t, err, apperr.KindNotFound)

	assert.Equal(t, model.SlotStatusSwapPending, env.reload(t, mine).Status)
}

func TestSlotService_ListSwappable(t *testing.T) {
	env := newTestEnv(t)

	env.mustSlot(t, env.alice, "Моя", 0, model.SlotStatusSwappable)
	late := env.mustSlot(t, env.bob, "Поздняя", 5*time.Hour, model.SlotStatusSwappable)
	early := env.mustSlot(t, env.carol, "Ранняя", time.Hour, model.SlotStatusSwappable)
	env.mustSlot(t, env.bob, "Занятая", 2*time.Hour, model.SlotStatusBusy)

	slots, err := env.slots.ListSwappable(context.Background(), env.alice.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, early.ID, slots[0].ID)
	assert.Equal(t, late.ID, slots[1].ID)
	require.NotNil(t, slots[0].Owner)
	assert.Equal(t, "Carol", slots[0].Owner.FirstName)
	require.NotNil(t, slots[1].Owner)
	assert.Equal(t, env.bob.ID, slots[1].Owner.ID)
}
