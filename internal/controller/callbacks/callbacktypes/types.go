package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value any)
	GetData(telegramID int64, key string) (any, bool)
	GetAllData(telegramID int64) map[string]any
	Finish(telegramID int64, expected UserState) map[string]any
}

// SwapNotifier уведомляет вторую сторону заявки
type SwapNotifier interface {
	NotifySwapProposed(ctx context.Context, req *model.SwapRequest)
	NotifySwapResolved(ctx context.Context, req *model.SwapRequest)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	SlotService     *service.SlotService
	SwapService     *service.SwapService
	CalendarService *service.CalendarService
	StateManager    StateManager
	Notifier        SwapNotifier
	Logger          *zap.Logger

	// Location часовой пояс для отображения и ввода времени
	Location *time.Location
}
