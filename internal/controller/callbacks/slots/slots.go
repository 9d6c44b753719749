package slots

import (
	"context"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ========================
// Slot Management Handlers
// ========================

// HandleMySlots показывает список своих слотов в текущем сообщении
func HandleMySlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slots, err := h.SlotService.ListSlots(hc.Ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "list_slots", common.ErrorMessage(err))
			return
		}

		text, kb := common.MySlotsScreen(slots, h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show slots", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleViewSlot показывает карточку своего слота
func HandleViewSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, slotID uuid.UUID) {
		slot, err := h.SlotService.GetOwnedSlot(hc.Ctx, slotID, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "view_slot", common.SlotErrorMessage(err))
			return
		}

		showSlot(hc, slot)
		hc.Answer("")
	})
}

// HandleToggleSlot переключает слот между BUSY и SWAPPABLE
func HandleToggleSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, slotID uuid.UUID) {
		slot, err := h.SlotService.GetOwnedSlot(hc.Ctx, slotID, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "toggle_slot", common.SlotErrorMessage(err))
			return
		}

		next := model.SlotStatusSwappable
		if slot.IsSwappable() {
			next = model.SlotStatusBusy
		}

		slot, err = h.SlotService.SetStatus(hc.Ctx, slotID, hc.User.ID, next)
		if err != nil {
			common.HandleError(hc, err, "toggle_slot", common.SlotErrorMessage(err))
			return
		}

		h.Logger.Info("Slot status changed",
			zap.Int64("user_id", hc.User.ID),
			zap.String("slot_id", slot.ID.String()),
			zap.String("status", string(slot.Status)))

		showSlot(hc, slot)
		if slot.IsSwappable() {
			hc.Answer("🔁 Слот выставлен на обмен")
		} else {
			hc.Answer("🔴 Слот снят с обмена")
		}
	})
}

// HandleRenameSlot запрашивает новое название слота
func HandleRenameSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, slotID uuid.UUID) {
		slot, err := h.SlotService.GetOwnedSlot(hc.Ctx, slotID, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "rename_slot", common.SlotErrorMessage(err))
			return
		}
		if slot.IsLocked() {
			hc.AnswerAlert("🔒 Слот участвует в заявке на обмен. Дождитесь ответа")
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateRenameSlot))
		hc.SetData(state.DataSlotID, slotID)

		if err := hc.SendMessage(common.RenameSlotPrompt, nil); err != nil {
			h.Logger.Error("Failed to send rename prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDeleteSlot просит подтвердить удаление
func HandleDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, slotID uuid.UUID) {
		slot, err := h.SlotService.GetOwnedSlot(hc.Ctx, slotID, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "delete_slot", common.SlotErrorMessage(err))
			return
		}
		if slot.IsLocked() {
			hc.AnswerAlert("🔒 Слот участвует в заявке на обмен. Дождитесь ответа")
			return
		}

		text, _ := common.SlotScreen(slot, h.Location)
		text = "🗑 <b>Удалить слот?</b>\n\n" + text + "\n\nИстория заявок по слоту тоже будет удалена."

		if err := hc.EditMessage(text, keyboard.ConfirmDelete(slotID)); err != nil {
			h.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDeleteSlot удаляет слот
func HandleConfirmDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUUID(ctx, b, callback, h, func(hc *common.HandlerContext, slotID uuid.UUID) {
		if err := h.SlotService.DeleteSlot(hc.Ctx, slotID, hc.User.ID); err != nil {
			common.HandleError(hc, err, "confirm_delete_slot", common.SlotErrorMessage(err))
			return
		}

		h.Logger.Info("Slot deleted",
			zap.Int64("user_id", hc.User.ID),
			zap.String("slot_id", slotID.String()))

		slots, err := h.SlotService.ListSlots(hc.Ctx, hc.User.ID)
		if err != nil {
			hc.EditMessage("✅ Слот удалён.", nil)
			hc.Answer("✅ Слот удалён")
			return
		}

		text, kb := common.MySlotsScreen(slots, h.Location)
		if err := hc.EditMessage("✅ Слот удалён.\n\n"+text, kb); err != nil {
			h.Logger.Error("Failed to show slots after delete", zap.Error(err))
		}
		hc.Answer("✅ Слот удалён")
	})
}

// HandleExportICS отправляет файл .ics со слотами пользователя
func HandleExportICS(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		data, err := h.CalendarService.ExportICS(hc.Ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "export_ics", common.ErrorMessage(err))
			return
		}

		if err := common.SendCalendar(hc.Ctx, hc.Bot, hc.ChatID, data); err != nil {
			common.HandleError(hc, err, "export_ics", "❌ Не удалось отправить файл")
			return
		}
		hc.Answer("")
	})
}

func showSlot(hc *common.HandlerContext, slot *model.Slot) {
	text, kb := common.SlotScreen(slot, hc.Handler.Location)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show slot",
			zap.String("slot_id", slot.ID.String()),
			zap.Error(err))
	}
}

// HandleWeek показывает картинку недели со слотами пользователя
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		offset, err := common.ParseWeekOffset(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		slots, err := h.SlotService.ListSlots(hc.Ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "week_view", common.ErrorMessage(err))
			return
		}

		png, caption, kb, err := common.WeekScreen(slots, offset, time.Now(), h.Location)
		if err != nil {
			common.HandleError(hc, err, "week_view", "❌ Не удалось построить картинку")
			return
		}

		if err := hc.SendPhoto(png, caption, kb); err != nil {
			common.HandleError(hc, err, "week_view", "❌ Не удалось отправить картинку")
			return
		}
		hc.DeleteMessage()
		hc.Answer("")
	})
}
