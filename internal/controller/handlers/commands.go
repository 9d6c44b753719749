package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 <b>Справка по командам</b>\n\n" +
	"/myslots - Мои слоты\n" +
	"/week - Картинка недели со слотами\n" +
	"/newslot - Создать слот\n" +
	"/market - Слоты, выставленные на обмен\n" +
	"/incoming - Входящие заявки на обмен\n" +
	"/outgoing - Мои заявки на обмен\n" +
	"/export - Выгрузить слоты в календарь (.ics)\n" +
	"/cancel - Отменить текущий диалог\n\n" +
	"Чтобы обменяться, выставите свой слот на обмен, найдите подходящий в /market " +
	"и предложите свой взамен. Пока владелец не ответит, оба слота заблокированы."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это SlotSwap Bot: ведите свои слоты времени и меняйтесь ими с другими.\n\n%s",
		html.EscapeString(registeredUser.DisplayName()),
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		return
	case state.StateNewSlotTitle:
		h.handleNewSlotTitleStep(ctx, b, update)
	case state.StateNewSlotStart:
		h.handleNewSlotStartStep(ctx, b, update)
	case state.StateNewSlotEnd:
		h.handleNewSlotEndStep(ctx, b, update)
	case state.StateRenameSlot:
		h.handleRenameSlotStep(ctx, b, update)
	case state.StateNewSlotStatus, state.StateProposePick:
		h.sendError(ctx, b, update.Message.Chat.ID, "👆 Выберите вариант кнопкой выше или отмените через /cancel")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// HandleMySlots обрабатывает команду /myslots
func (h *Handlers) HandleMySlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	slots, err := h.slotService.ListSlots(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list slots", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.MySlotsScreen(slots, h.location)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMarket обрабатывает команду /market
func (h *Handlers) HandleMarket(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	slots, err := h.slotService.ListSwappable(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list market", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.MarketScreen(slots, h.location)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleIncoming обрабатывает команду /incoming
func (h *Handlers) HandleIncoming(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	reqs, err := h.swapService.ListIncoming(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list incoming requests", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.RequestsScreen("📥 Входящие заявки", reqs, user.ID, h.location)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleOutgoing обрабатывает команду /outgoing
func (h *Handlers) HandleOutgoing(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	reqs, err := h.swapService.ListOutgoing(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list outgoing requests", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.RequestsScreen("📤 Исходящие заявки", reqs, user.ID, h.location)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleExport обрабатывает команду /export и отправляет .ics файл
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	data, err := h.calendarService.ExportICS(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to export calendar", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	if err := common.SendCalendar(ctx, b, update.Message.Chat.ID, data); err != nil {
		h.logger.Error("Failed to send calendar", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось отправить файл. Попробуйте позже.")
	}
}

// HandleWeek обрабатывает команду /week и присылает картинку текущей недели
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	slots, err := h.slotService.ListSlots(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list slots", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	png, caption, kb, err := common.WeekScreen(slots, 0, time.Now(), h.location)
	if err != nil {
		h.logger.Error("Failed to render week", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось построить картинку. Попробуйте позже.")
		return
	}

	if err := common.SendPhoto(ctx, b, update.Message.Chat.ID, png, caption, kb); err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
