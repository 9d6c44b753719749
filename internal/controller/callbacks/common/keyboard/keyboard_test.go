package keyboard

import (
	"strings"
	"testing"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Telegram ограничивает callback data 64 байтами
const maxCallbackData = 64

func allCallbackData(t *testing.T, rows [][]string) {
	t.Helper()
	for _, row := range rows {
		for _, data := range row {
			assert.LessOrEqual(t, len(data), maxCallbackData, data)
		}
	}
}

func TestSlotActions(t *testing.T) {
	slot := &model.Slot{ID: uuid.New(), Status: model.SlotStatusBusy}

	kb := SlotActions(slot)
	require.NotNil(t, kb)
	assert.Equal(t, "🔁 Выставить на обмен", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, ToggleSlot+slot.ID.String(), kb.InlineKeyboard[0][0].CallbackData)

	slot.Status = model.SlotStatusSwappable
	kb = SlotActions(slot)
	assert.Equal(t, "⛔️ Снять с обмена", kb.InlineKeyboard[0][0].Text)

	// Заблокированный слот нельзя менять, кнопок действий нет
	slot.Status = model.SlotStatusSwapPending
	kb = SlotActions(slot)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, Noop, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, MySlots, kb.InlineKeyboard[1][0].CallbackData)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	id := uuid.New()
	var rows [][]string

	for _, kb := range [][][]string{
		collect(SlotActions(&model.Slot{ID: id, Status: model.SlotStatusSwappable}).InlineKeyboard),
		collect(ConfirmDelete(id).InlineKeyboard),
		collect(RespondButtons(id).InlineKeyboard),
		collect(NewSlotStatusButtons().InlineKeyboard),
	} {
		rows = append(rows, kb...)
	}
	rows = append(rows, []string{ProposeButton(id).CallbackData, ProposeOffer + id.String()})

	allCallbackData(t, rows)
}

func TestBuilder(t *testing.T) {
	assert.Nil(t, NewBuilder().Build())

	slots := []*model.Slot{{ID: uuid.New(), Title: "a"}, {ID: uuid.New(), Title: "b"}}
	b := SlotList(slots, ViewSlot, func(s *model.Slot) string { return strings.ToUpper(s.Title) })
	b.Row()

	assert.Equal(t, 2, b.Len())
	kb := b.Build()
	assert.Equal(t, "B", kb.InlineKeyboard[1][0].Text)
	assert.Equal(t, ViewSlot+slots[1].ID.String(), kb.InlineKeyboard[1][0].CallbackData)
}

func collect(rows [][]models.InlineKeyboardButton) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		data := make([]string, 0, len(row))
		for _, button := range row {
			data = append(data, button.CallbackData)
		}
		out = append(out, data)
	}
	return out
}
