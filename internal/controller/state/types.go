package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для создания слота (/newslot)
	StateNewSlotTitle  UserState = "new_slot_title"
	StateNewSlotStart  UserState = "new_slot_start"
	StateNewSlotEnd    UserState = "new_slot_end"
	StateNewSlotStatus UserState = "new_slot_status"

	// Состояния для переименования слота
	StateRenameSlot UserState = "rename_slot"

	// Выбор своего слота для предложения обмена
	StateProposePick UserState = "propose_pick"
)

// Ключи временных данных диалогов
const (
	DataTitle           = "title"
	DataStartTime       = "start_time"
	DataEndTime         = "end_time"
	DataSlotID          = "slot_id"
	DataRequestedSlotID = "requested_slot_id"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]any // Временные данные для текущего диалога
}
