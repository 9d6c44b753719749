package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleNewSlotStart начинает диалог создания слота
func (h *Handlers) HandleNewSlotStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID

	h.logger.Info("Starting slot creation",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", user.ID))

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateNewSlotTitle)

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.NewSlotTitlePrompt, nil)
}

// handleNewSlotTitleStep обрабатывает ввод названия слота
func (h *Handlers) handleNewSlotTitleStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	title, ok := h.readTitle(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.SetData(telegramID, state.DataTitle, title)
	h.stateManager.SetState(telegramID, state.StateNewSlotStart)

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"✅ Название: %s\n\n"+
			"Шаг 2 из 4: Когда начало?\n\n"+
			"Формат: ДД.ММ.ГГГГ ЧЧ:ММ, например %s\n\n"+
			"Для отмены используйте /cancel",
		html.EscapeString(title),
		time.Now().In(h.location).AddDate(0, 0, 1).Format("02.01.2006")+" 10:00",
	), nil)
}

// handleNewSlotStartStep обрабатывает ввод начала слота
func (h *Handlers) handleNewSlotStartStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	start, err := formatting.ParseDateTime(update.Message.Text, h.location)
	if err != nil {
		h.logger.Debug("Invalid start time", zap.String("input", update.Message.Text), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Не удалось разобрать дату. Формат: ДД.ММ.ГГГГ ЧЧ:ММ\n\nПопробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, state.DataStartTime, start)
	h.stateManager.SetState(telegramID, state.StateNewSlotEnd)

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"✅ Начало: %s\n\n"+
			"Шаг 3 из 4: Когда конец?\n\n"+
			"Введите время ЧЧ:ММ или полную дату ДД.ММ.ГГГГ ЧЧ:ММ\n\n"+
			"Для отмены используйте /cancel",
		formatting.FormatDateTime(start),
	), nil)
}

// handleNewSlotEndStep обрабатывает ввод конца слота и предлагает выбрать статус
func (h *Handlers) handleNewSlotEndStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	title, okTitle := h.stateManager.GetData(telegramID, state.DataTitle)
	startData, okStart := h.stateManager.GetData(telegramID, state.DataStartTime)
	start, okType := startData.(time.Time)
	if !okTitle || !okStart || !okType {
		h.logger.Error("Missing data for new slot end step", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Ошибка: данные не найдены. Начните заново через /newslot")
		return
	}

	end, err := formatting.ParseEndTime(update.Message.Text, start)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Не удалось разобрать время. Введите ЧЧ:ММ или ДД.ММ.ГГГГ ЧЧ:ММ\n\nПопробуйте ещё раз:")
		return
	}
	if !end.After(start) {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Конец должен быть позже начала.\n\nПопробуйте ещё раз:")
		return
	}

	h.stateManager.SetData(telegramID, state.DataEndTime, end)
	h.stateManager.SetState(telegramID, state.StateNewSlotStatus)

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"✅ Название: %s\n"+
			"✅ Время: %s\n\n"+
			"Шаг 4 из 4: Выставить слот на обмен?",
		html.EscapeString(title.(string)),
		formatting.FormatTimeRange(start, end),
	), keyboard.NewSlotStatusButtons())
}

// handleRenameSlotStep обрабатывает ввод нового названия слота
func (h *Handlers) handleRenameSlotStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	data, _ := h.stateManager.GetData(telegramID, state.DataSlotID)
	slotID, ok := data.(uuid.UUID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	title, ok := h.readTitle(ctx, b, update)
	if !ok {
		return
	}

	slot, err := h.slotService.UpdateSlot(ctx, slotID, user.ID, service.SlotPatch{Title: &title})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			h.sendError(ctx, b, chatID, common.SlotErrorMessage(err)+"\n\nПопробуйте ещё раз:")
			return
		}

		h.stateManager.ClearState(telegramID)
		if !common.IsDomainError(err) {
			h.logger.Error("Failed to rename slot",
				zap.String("slot_id", slotID.String()),
				zap.Int64("user_id", user.ID),
				zap.Error(err))
		}
		h.sendError(ctx, b, chatID, common.SlotErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Slot renamed",
		zap.String("slot_id", slot.ID.String()),
		zap.Int64("user_id", user.ID))

	text, kb := common.SlotScreen(slot, h.location)
	h.sendMessage(ctx, b, chatID, "✅ <b>Название обновлено</b>\n\n"+text, kb)
}

// readTitle проверяет название слота и просит повторить ввод при ошибке
func (h *Handlers) readTitle(ctx context.Context, b *bot.Bot, update *models.Update) (string, bool) {
	title := strings.TrimSpace(update.Message.Text)

	if title == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Название не может быть пустым.\n\nПопробуйте ещё раз:")
		return "", false
	}

	if n := utf8.RuneCountInString(title); n > service.SlotTitleMaxLength {
		h.logger.Debug("Title too long",
			zap.Int("length", n),
			zap.Int("max", service.SlotTitleMaxLength))
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", service.SlotTitleMaxLength))
		return "", false
	}

	return title, true
}
