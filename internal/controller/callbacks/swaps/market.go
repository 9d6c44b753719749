package swaps

import (
	"context"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ========================
// Market & Proposal Handlers
// ========================

// HandleMarket показывает чужие слоты, выставленные на обмен
func HandleMarket(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showMarket(hc)
		hc.Answer("")
	})
}

// HandleProposeFor начинает предложение обмена на выбранный слот биржи
func HandleProposeFor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, requestedID uuid.UUID) {
		requested, err := h.SlotService.GetSlot(hc.Ctx, requestedID)
		if err != nil {
			common.HandleError(hc, err, "propose_for", common.SwapErrorMessage(err))
			return
		}
		if requested.OwnerID == hc.User.ID {
			hc.AnswerAlert("❌ Это ваш собственный слот")
			return
		}
		if !requested.IsSwappable() {
			hc.AnswerAlert("⚠️ Этот слот уже недоступен для обмена")
			showMarket(hc)
			return
		}

		mine, err := swappableSlots(hc)
		if err != nil {
			common.HandleError(hc, err, "propose_for", common.ErrorMessage(err))
			return
		}
		if len(mine) == 0 {
			hc.AnswerAlert("У вас нет слотов, выставленных на обмен.\n\nОткройте /myslots и нажмите «Выставить на обмен».")
			return
		}

		owner, err := h.UserService.GetByID(hc.Ctx, requested.OwnerID)
		if err == nil {
			requested.Owner = owner
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateProposePick))
		hc.SetData(state.DataRequestedSlotID, requestedID)

		text, kb := common.ProposePickScreen(requested, mine, h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show propose picker", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleProposeOffer создаёт заявку: выбранный свой слот в обмен на запомненный чужой
func HandleProposeOffer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, offeredID uuid.UUID) {
		data := h.StateManager.Finish(hc.TelegramID, callbacktypes.UserState(state.StateProposePick))
		requestedID, ok := data[state.DataRequestedSlotID].(uuid.UUID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}

		req, err := h.SwapService.ProposeSwap(hc.Ctx, hc.User.ID, offeredID, requestedID)
		if err != nil {
			common.HandleError(hc, err, "propose_swap", common.SwapErrorMessage(err))
			showMarket(hc)
			return
		}

		h.Logger.Info("Swap proposed",
			zap.String("request_id", req.ID.String()),
			zap.Int64("requester_id", req.RequesterID),
			zap.Int64("owner_id", req.OwnerID))

		text, kb := common.RequestScreen(req, hc.User.ID, h.Location)
		text = "📨 <b>Заявка отправлена!</b>\n\n" + text + "\n\nОба слота заблокированы до ответа владельца."
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show proposed swap", zap.Error(err))
		}
		hc.Answer("📨 Заявка отправлена")

		h.Notifier.NotifySwapProposed(hc.Ctx, req)
	})
}

// HandleProposeCancel отменяет выбор слота и возвращает на биржу
func HandleProposeCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		showMarket(hc)
		hc.Answer("Отменено")
	})
}

func showMarket(hc *common.HandlerContext) {
	h := hc.Handler

	slots, err := h.SlotService.ListSwappable(hc.Ctx, hc.User.ID)
	if err != nil {
		h.Logger.Error("Failed to list swappable slots", zap.Error(err))
		return
	}

	text, kb := common.MarketScreen(slots, h.Location)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show market", zap.Error(err))
	}
}

func swappableSlots(hc *common.HandlerContext) ([]*model.Slot, error) {
	slots, err := hc.Handler.SlotService.ListSlots(hc.Ctx, hc.User.ID)
	if err != nil {
		return nil, err
	}

	mine := make([]*model.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsSwappable() {
			mine = append(mine, slot)
		}
	}
	return mine, nil
}
