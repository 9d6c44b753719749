package handlers

import (
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	slotService     *service.SlotService
	swapService     *service.SwapService
	calendarService *service.CalendarService
	stateManager    *state.Manager
	location        *time.Location
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	slotService *service.SlotService,
	swapService *service.SwapService,
	calendarService *service.CalendarService,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		slotService:     slotService,
		swapService:     swapService,
		calendarService: calendarService,
		stateManager:    stateManager,
		location:        location,
		logger:          logger,
	}
}
