package callbacks

import (
	"reflect"
	"testing"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/slots"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/swaps"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funcName(f HandlerFunc) uintptr {
	return reflect.ValueOf(f).Pointer()
}

func TestResolve(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		data string
		want HandlerFunc
	}{
		{keyboard.MySlots, slots.HandleMySlots},
		{keyboard.NewSlotBusy, slots.HandleNewSlotStatus},
		{keyboard.Market, swaps.HandleMarket},
		{keyboard.ConfirmDeleteSlot + id, slots.HandleConfirmDeleteSlot},
		{keyboard.DeleteSlot + id, slots.HandleDeleteSlot},
		{keyboard.ToggleSlot + id, slots.HandleToggleSlot},
		{keyboard.ProposeOffer + id, swaps.HandleProposeOffer},
		{keyboard.ProposeFor + id, swaps.HandleProposeFor},
		{keyboard.AcceptRequest + id, swaps.HandleAccept},
		{keyboard.RejectRequest + id, swaps.HandleReject},
		{keyboard.WeekData(-1), slots.HandleWeek},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := Resolve(tt.data)
			require.True(t, ok)
			assert.Equal(t, funcName(tt.want), funcName(got))
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, ok := Resolve("become_admin")
	assert.False(t, ok)
}
