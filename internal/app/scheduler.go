package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleRequestLister источник заявок, которые слишком долго ждут ответа
type StaleRequestLister interface {
	ListStalePending(ctx context.Context, olderThan time.Duration) ([]*model.SwapRequest, error)
}

// Notifier доставляет напоминания владельцам запрошенных слотов
type Notifier interface {
	RemindPendingSwap(ctx context.Context, req *model.SwapRequest) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	swaps    StaleRequestLister
	notifier Notifier
	staleAge time.Duration
	spec     string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewScheduler создаёт новый планировщик
func NewScheduler(swaps StaleRequestLister, notifier Notifier, spec string, staleAge time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		swaps:    swaps,
		notifier: notifier,
		staleAge: staleAge,
		spec:     spec,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting background scheduler", zap.String("schedule", s.spec))

	_, err := s.cron.AddFunc(s.spec, func() {
		s.RemindStaleRequests(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop останавливает фоновые задачи и ждёт завершения текущего запуска
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

// RemindStaleRequests напоминает владельцам о заявках без ответа.
// Состояние заявок не меняется, возвращает число отправленных напоминаний.
func (s *Scheduler) RemindStaleRequests(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}

	reqs, err := s.swaps.ListStalePending(ctx, s.staleAge)
	if err != nil {
		s.logger.Error("Failed to list stale swap requests", zap.Error(err))
		return 0
	}

	sent := 0
	for _, req := range reqs {
		if err := s.notifier.RemindPendingSwap(ctx, req); err != nil {
			s.logger.Warn("Failed to send swap reminder",
				zap.String("request_id", req.ID.String()),
				zap.Int64("owner_id", req.OwnerID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Swap reminders sent",
		zap.Int("pending", len(reqs)),
		zap.Int("sent", sent),
	)

	return sent
}
