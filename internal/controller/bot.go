package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/handlers"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/notify"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/state"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	notifier        *notify.Notifier
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	slotService *service.SlotService,
	swapService *service.SwapService,
	calendarService *service.CalendarService,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		slotService,
		swapService,
		calendarService,
		stateManager,
		location,
		logger,
	)

	notifier := notify.NewNotifier(botInstance, location, logger.Named("notify"))

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		slotService,
		swapService,
		calendarService,
		state.NewAdapter(stateManager),
		notifier,
		location,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		notifier:        notifier,
		logger:          logger,
	}
}

// Notifier отдаёт уведомитель для фоновых напоминаний
func (c *BotController) Notifier() *notify.Notifier {
	return c.notifier
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Слоты
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myslots", bot.MatchTypeExact, c.handlers.HandleMySlots)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newslot", bot.MatchTypeExact, c.handlers.HandleNewSlotStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, c.handlers.HandleExport)

	// Обмены
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/market", bot.MatchTypeExact, c.handlers.HandleMarket)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/incoming", bot.MatchTypeExact, c.handlers.HandleIncoming)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/outgoing", bot.MatchTypeExact, c.handlers.HandleOutgoing)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "myslots", Description: "🗓 Мои слоты"},
		{Command: "newslot", Description: "➕ Создать слот"},
		{Command: "week", Description: "🖼 Неделя картинкой"},
		{Command: "market", Description: "🔁 Слоты на обмен"},
		{Command: "incoming", Description: "📥 Входящие заявки"},
		{Command: "outgoing", Description: "📤 Мои заявки"},
		{Command: "export", Description: "📆 Выгрузить в календарь"},
		{Command: "cancel", Description: "✖️ Отменить диалог"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
