package swaps

import (
	"context"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ========================
// Swap Request Handlers
// ========================

// HandleIncoming показывает заявки на слоты пользователя
func HandleIncoming(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		reqs, err := h.SwapService.ListIncoming(hc.Ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "list_incoming", common.ErrorMessage(err))
			return
		}

		text, kb := common.RequestsScreen("📥 Входящие заявки", reqs, hc.User.ID, h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show incoming requests", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleOutgoing показывает заявки, отправленные пользователем
func HandleOutgoing(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		reqs, err := h.SwapService.ListOutgoing(hc.Ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "list_outgoing", common.ErrorMessage(err))
			return
		}

		text, kb := common.RequestsScreen("📤 Исходящие заявки", reqs, hc.User.ID, h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show outgoing requests", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleViewRequest показывает карточку заявки
func HandleViewRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, requestID uuid.UUID) {
		req, err := h.SwapService.GetRequest(hc.Ctx, requestID, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "view_request", common.SwapErrorMessage(err))
			return
		}

		text, kb := common.RequestScreen(req, hc.User.ID, h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show swap request", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleAccept принимает входящую заявку
func HandleAccept(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	respond(ctx, b, callback, h, true)
}

// HandleReject отклоняет входящую заявку
func HandleReject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	respond(ctx, b, callback, h, false)
}

func respond(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, accept bool) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, requestID uuid.UUID) {
		req, err := h.SwapService.RespondToSwap(hc.Ctx, requestID, hc.User.ID, accept)
		if err != nil {
			common.HandleError(hc, err, "respond_swap", common.SwapErrorMessage(err))
			return
		}

		h.Logger.Info("Swap request resolved",
			zap.String("request_id", req.ID.String()),
			zap.String("status", string(req.Status)),
			zap.Int64("owner_id", req.OwnerID))

		header, answer := "🚫 <b>Заявка отклонена.</b> Ваш слот снова на обмене.", "🚫 Отклонено"
		if accept {
			header, answer = "✅ <b>Обмен состоялся!</b>", "✅ Обмен принят"
		}

		text, kb := common.RequestScreen(req, hc.User.ID, h.Location)
		if err := hc.EditMessage(header+"\n\n"+text, kb); err != nil {
			h.Logger.Error("Failed to show resolved swap", zap.Error(err))
		}
		hc.Answer(answer)

		h.Notifier.NotifySwapResolved(hc.Ctx, req)
	})
}
