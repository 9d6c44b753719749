package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	slotService *service.SlotService,
	swapService *service.SwapService,
	calendarService *service.CalendarService,
	stateManager callbacktypes.StateManager,
	notifier callbacktypes.SwapNotifier,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:     userService,
		SlotService:     slotService,
		SwapService:     swapService,
		CalendarService: calendarService,
		StateManager:    stateManager,
		Notifier:        notifier,
		Location:        location,
		Logger:          logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
