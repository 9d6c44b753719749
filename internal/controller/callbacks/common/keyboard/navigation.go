package keyboard

import (
	"strconv"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Префиксы и значения callback data
const (
	Noop = "noop"

	MySlots   = "my_slots"
	Market    = "market"
	Incoming  = "incoming"
	Outgoing  = "outgoing"
	NewSlot   = "new_slot"
	ExportICS = "export_ics"

	Week = "week:" // week:<смещение в неделях от текущей>

	ViewSlot          = "slot_view:"           // slot_view:<uuid>
	ToggleSlot        = "slot_toggle:"         // slot_toggle:<uuid>
	RenameSlot        = "slot_rename:"         // slot_rename:<uuid>
	DeleteSlot        = "slot_delete:"         // slot_delete:<uuid>
	ConfirmDeleteSlot = "slot_delete_confirm:" // slot_delete_confirm:<uuid>

	NewSlotSwappable = "new_slot_status:SWAPPABLE"
	NewSlotBusy      = "new_slot_status:BUSY"
	NewSlotCancel    = "new_slot_cancel"

	ProposeFor    = "propose:"       // propose:<requested uuid>
	ProposeOffer  = "propose_offer:" // propose_offer:<offered uuid>
	ProposeCancel = "propose_cancel"

	ViewRequest   = "swap_view:"   // swap_view:<uuid>
	AcceptRequest = "swap_accept:" // swap_accept:<uuid>
	RejectRequest = "swap_reject:" // swap_reject:<uuid>
)

func withID(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// MySlotsButton возвращает к списку своих слотов
func MySlotsButton() models.InlineKeyboardButton {
	return Button("📋 Мои слоты", MySlots)
}

// MarketButton открывает биржу слотов
func MarketButton() models.InlineKeyboardButton {
	return Button("🔁 Биржа", Market)
}

// WeekNavigation листание недель на картинке слотов
func WeekNavigation(offset int) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("◀️", WeekData(offset-1)),
			Button("Эта неделя", WeekData(0)),
			Button("▶️", WeekData(offset+1)),
		).
		Row(MySlotsButton()).
		Build()
}

// WeekData callback data для недели со смещением offset
func WeekData(offset int) string {
	return Week + strconv.Itoa(offset)
}

// SlotActions кнопки управления своим слотом
func SlotActions(slot *model.Slot) *models.InlineKeyboardMarkup {
	b := NewBuilder()

	if slot.IsLocked() {
		b.Row(Button("🔒 Ждёт ответа на обмен", Noop))
	} else {
		toggle := "🔁 Выставить на обмен"
		if slot.IsSwappable() {
			toggle = "⛔️ Снять с обмена"
		}
		b.Row(Button(toggle, withID(ToggleSlot, slot.ID)))
		b.Row(
			Button("✏️ Переименовать", withID(RenameSlot, slot.ID)),
			Button("🗑 Удалить", withID(DeleteSlot, slot.ID)),
		)
	}

	b.Row(MySlotsButton())
	return b.Build()
}

// ConfirmDelete кнопки подтверждения удаления слота
func ConfirmDelete(slotID uuid.UUID) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("✅ Да, удалить", withID(ConfirmDeleteSlot, slotID)),
			Button("❌ Отмена", withID(ViewSlot, slotID)),
		).
		Build()
}

// SlotList кнопки со слотами, по одной в ряд
func SlotList(slots []*model.Slot, prefix string, label func(*model.Slot) string) *Builder {
	b := NewBuilder()
	for _, slot := range slots {
		b.Row(Button(label(slot), withID(prefix, slot.ID)))
	}
	return b
}

// ProposeButton кнопка предложения обмена на чужой слот
func ProposeButton(slotID uuid.UUID) models.InlineKeyboardButton {
	return Button("🤝 Предложить обмен", withID(ProposeFor, slotID))
}

// RespondButtons кнопки ответа на входящую заявку
func RespondButtons(requestID uuid.UUID) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("✅ Принять", withID(AcceptRequest, requestID)),
			Button("❌ Отклонить", withID(RejectRequest, requestID)),
		).
		Build()
}

// NewSlotStatusButtons выбор статуса на последнем шаге /newslot
func NewSlotStatusButtons() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🔁 Да, выставить на обмен", NewSlotSwappable)).
		Row(Button("🔴 Нет, просто занят", NewSlotBusy)).
		Row(Button("❌ Отмена", NewSlotCancel)).
		Build()
}
