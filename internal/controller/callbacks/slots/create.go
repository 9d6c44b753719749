package slots

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNewSlot начинает диалог создания слота из меню
func HandleNewSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateNewSlotTitle))

		if err := hc.SendMessage(common.NewSlotTitlePrompt, nil); err != nil {
			h.Logger.Error("Failed to send new slot prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleNewSlotStatus завершает диалог /newslot выбором статуса
func HandleNewSlotStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		_, raw, _ := strings.Cut(callback.Data, ":")
		status := model.SlotStatus(raw)
		if !status.IsOwnerSettable() {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		data := h.StateManager.Finish(hc.TelegramID, callbacktypes.UserState(state.StateNewSlotStatus))
		title, okTitle := data[state.DataTitle].(string)
		start, okStart := data[state.DataStartTime].(time.Time)
		end, okEnd := data[state.DataEndTime].(time.Time)
		if !okTitle || !okStart || !okEnd {
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}

		slot, err := h.SlotService.CreateSlot(hc.Ctx, hc.User.ID, service.CreateSlotInput{
			Title:     title,
			StartTime: start,
			EndTime:   end,
			Status:    status,
		})
		if err != nil {
			common.HandleError(hc, err, "create_slot", common.ErrorMessage(err))
			return
		}

		h.Logger.Info("Slot created",
			zap.Int64("user_id", hc.User.ID),
			zap.String("slot_id", slot.ID.String()),
			zap.String("status", string(slot.Status)))

		text, kb := common.SlotScreen(slot, h.Location)
		if err := hc.EditMessage("✅ <b>Слот создан!</b>\n\n"+text, kb); err != nil {
			h.Logger.Error("Failed to show created slot", zap.Error(err))
		}
		hc.Answer("✅ Слот создан")
	})
}

// HandleNewSlotCancel отменяет создание слота на последнем шаге
func HandleNewSlotCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	h.StateManager.ClearState(callback.From.ID)

	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.EditMessage("❌ Создание слота отменено.", nil)
	hc.Answer("")
}
