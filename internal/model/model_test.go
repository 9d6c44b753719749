package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlotStatus(t *testing.T) {
	tests := []struct {
		status   SlotStatus
		valid    bool
		settable bool
	}{
		{SlotStatusBusy, true, true},
		{SlotStatusSwappable, true, true},
		{SlotStatusSwapPending, true, false},
		{SlotStatus("FREE"), false, false},
		{SlotStatus(""), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.settable, tt.status.IsOwnerSettable())
		})
	}
}

func TestSlot_CloneDropsOwner(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	slot := &Slot{
		ID:        uuid.New(),
		OwnerID:   1,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    SlotStatusSwapPending,
		Owner:     &User{ID: 1},
	}

	c := slot.Clone()
	c.Title = "changed"

	assert.Nil(t, c.Owner)
	assert.Empty(t, slot.Title)
	assert.True(t, c.IsLocked())
	assert.False(t, c.IsSwappable())
	assert.Equal(t, 90*time.Minute, c.Duration())
}

func TestSwapRequest(t *testing.T) {
	responded := time.Now()
	req := &SwapRequest{
		ID:          uuid.New(),
		RequesterID: 1,
		OwnerID:     2,
		Status:      SwapRequestStatusPending,
		RespondedAt: &responded,
		OfferedSlot: &Slot{},
	}

	assert.True(t, req.IsPending())
	assert.True(t, req.IsParty(1))
	assert.True(t, req.IsParty(2))
	assert.False(t, req.IsParty(3))
	assert.False(t, req.Status.IsTerminal())
	assert.True(t, SwapRequestStatusAccepted.IsTerminal())
	assert.True(t, SwapRequestStatusRejected.IsTerminal())

	c := req.Clone()
	assert.Nil(t, c.OfferedSlot)
	assert.NotSame(t, req.RespondedAt, c.RespondedAt)
	assert.Equal(t, *req.RespondedAt, *c.RespondedAt)
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ann Lee", (&User{FirstName: "Ann", LastName: "Lee"}).DisplayName())
	assert.Equal(t, "Ann", (&User{FirstName: "Ann"}).DisplayName())
	assert.Equal(t, "@ann", (&User{Username: "ann"}).DisplayName())
	assert.Equal(t, "Пользователь", (&User{}).DisplayName())
}
