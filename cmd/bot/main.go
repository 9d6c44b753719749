package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/Freeeeeet/slotswap_bot/internal/app"
	"github.com/Freeeeeet/slotswap_bot/internal/config"
	"github.com/Freeeeeet/slotswap_bot/internal/controller"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/ratelimit"
	"github.com/Freeeeeet/slotswap_bot/internal/repository"
	"github.com/Freeeeeet/slotswap_bot/internal/repository/memory"
	"github.com/Freeeeeet/slotswap_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting slotswap bot",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.String("timezone", cfg.Location.String()))

	repos, tx, cleanup, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	userService := service.NewUserService(repos.Users, logger.Named("users"))
	slotService := service.NewSlotService(repos, tx)
	swapService := service.NewSwapService(repos, tx)
	calendarService := service.NewCalendarService(repos.Slots)

	limiter := ratelimit.NewStore(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartJanitor(ctx)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(ratelimit.Middleware(limiter, logger.Named("ratelimit"))),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(
		b,
		userService,
		slotService,
		swapService,
		calendarService,
		cfg.Location,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	scheduler := app.NewScheduler(
		swapService,
		botController.Notifier(),
		cfg.ReminderSchedule,
		cfg.StaleRequestAfter,
		logger.Named("scheduler"),
	)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	// Блокируется до SIGINT/SIGTERM
	if err := botController.Start(ctx); err != nil {
		return fmt.Errorf("start bot: %w", err)
	}

	logger.Info("Shutting down")
	return nil
}

// openStorage подключает PostgreSQL с миграциями или хранилище в памяти
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, repository.TxManager, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.NewStore()
		return store.Repositories(), store, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger.Named("migrator"))
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return repository.NewRepositories(pool), repository.NewPgTxManager(pool), pool.Close, nil
}
