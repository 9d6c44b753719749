package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/slots"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/swaps"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerFunc обработчик одного вида callback
type HandlerFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

// exactRoutes callbacks без параметров
var exactRoutes = map[string]HandlerFunc{
	keyboard.MySlots:          slots.HandleMySlots,
	keyboard.NewSlot:          slots.HandleNewSlot,
	keyboard.ExportICS:        slots.HandleExportICS,
	keyboard.NewSlotSwappable: slots.HandleNewSlotStatus,
	keyboard.NewSlotBusy:      slots.HandleNewSlotStatus,
	keyboard.NewSlotCancel:    slots.HandleNewSlotCancel,
	keyboard.Market:           swaps.HandleMarket,
	keyboard.ProposeCancel:    swaps.HandleProposeCancel,
	keyboard.Incoming:         swaps.HandleIncoming,
	keyboard.Outgoing:         swaps.HandleOutgoing,
}

// prefixRoutes callbacks вида prefix:<параметр>
var prefixRoutes = []struct {
	prefix  string
	handler HandlerFunc
}{
	// Длинные префиксы раньше коротких: slot_delete_confirm: до slot_delete:
	{keyboard.ConfirmDeleteSlot, slots.HandleConfirmDeleteSlot},
	{keyboard.DeleteSlot, slots.HandleDeleteSlot},
	{keyboard.ViewSlot, slots.HandleViewSlot},
	{keyboard.Week, slots.HandleWeek},
	{keyboard.ToggleSlot, slots.HandleToggleSlot},
	{keyboard.RenameSlot, slots.HandleRenameSlot},
	{keyboard.ProposeOffer, swaps.HandleProposeOffer},
	{keyboard.ProposeFor, swaps.HandleProposeFor},
	{keyboard.ViewRequest, swaps.HandleViewRequest},
	{keyboard.AcceptRequest, swaps.HandleAccept},
	{keyboard.RejectRequest, swaps.HandleReject},
}

// Resolve находит обработчик для callback data
func Resolve(data string) (HandlerFunc, bool) {
	if handler, ok := exactRoutes[data]; ok {
		return handler, true
	}

	for _, route := range prefixRoutes {
		if strings.HasPrefix(data, route.prefix) {
			return route.handler, true
		}
	}

	return nil, false
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	if data == keyboard.Noop {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	handler, ok := Resolve(data)
	if !ok {
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
		return
	}

	handler(ctx, b, callback, h)
}
