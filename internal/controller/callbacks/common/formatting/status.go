package formatting

import "github.com/Freeeeeet/slotswap_bot/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

var slotStatusDisplays = map[model.SlotStatus]StatusDisplay{
	model.SlotStatusBusy:        {"🔴", "Занят"},
	model.SlotStatusSwappable:   {"🔁", "На обмен"},
	model.SlotStatusSwapPending: {"🔒", "Ожидает обмена"},
}

var swapStatusDisplays = map[model.SwapRequestStatus]StatusDisplay{
	model.SwapRequestStatusPending:  {"⏳", "Ожидает ответа"},
	model.SwapRequestStatusAccepted: {"✅", "Принята"},
	model.SwapRequestStatusRejected: {"🚫", "Отклонена"},
}

// GetSlotStatusDisplay возвращает emoji и текст для статуса слота
func GetSlotStatusDisplay(status model.SlotStatus) StatusDisplay {
	if display, ok := slotStatusDisplays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSwapStatusDisplay возвращает emoji и текст для статуса заявки
func GetSwapStatusDisplay(status model.SwapRequestStatus) StatusDisplay {
	if display, ok := swapStatusDisplays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "Неизвестно"}
}
