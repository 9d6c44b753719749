package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLister struct {
	reqs      []*model.SwapRequest
	err       error
	olderThan time.Duration
}

func (l *stubLister) ListStalePending(_ context.Context, olderThan time.Duration) ([]*model.SwapRequest, error) {
	l.olderThan = olderThan
	return l.reqs, l.err
}

type stubNotifier struct {
	reminded []uuid.UUID
	failFor  uuid.UUID
}

func (n *stubNotifier) RemindPendingSwap(_ context.Context, req *model.SwapRequest) error {
	if req.ID == n.failFor {
		return errors.New("chat not found")
	}
	n.reminded = append(n.reminded, req.ID)
	return nil
}

func TestScheduler_RemindStaleRequests(t *testing.T) {
	first := &model.SwapRequest{ID: uuid.New(), OwnerID: 1, Status: model.SwapRequestStatusPending}
	broken := &model.SwapRequest{ID: uuid.New(), OwnerID: 2, Status: model.SwapRequestStatusPending}
	last := &model.SwapRequest{ID: uuid.New(), OwnerID: 3, Status: model.SwapRequestStatusPending}

	lister := &stubLister{reqs: []*model.SwapRequest{first, broken, last}}
	notifier := &stubNotifier{failFor: broken.ID}
	s := NewScheduler(lister, notifier, "@every 1h", 24*time.Hour, zap.NewNop())

	sent := s.RemindStaleRequests(context.Background())

	assert.Equal(t, 2, sent)
	assert.Equal(t, 24*time.Hour, lister.olderThan)
	assert.Equal(t, []uuid.UUID{first.ID, last.ID}, notifier.reminded)
}

func TestScheduler_RemindStaleRequests_ListError(t *testing.T) {
	lister := &stubLister{err: errors.New("db down")}
	notifier := &stubNotifier{}
	s := NewScheduler(lister, notifier, "@every 1h", time.Hour, zap.NewNop())

	assert.Zero(t, s.RemindStaleRequests(context.Background()))
	assert.Empty(t, notifier.reminded)
}

func TestScheduler_RemindStaleRequests_Cancelled(t *testing.T) {
	lister := &stubLister{reqs: []*model.SwapRequest{{ID: uuid.New()}}}
	notifier := &stubNotifier{}
	s := NewScheduler(lister, notifier, "@every 1h", time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, s.RemindStaleRequests(ctx))
	assert.Empty(t, notifier.reminded)
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&stubLister{}, &stubNotifier{}, "whenever", time.Hour, zap.NewNop())

	require.Error(t, s.Start(context.Background()))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(&stubLister{}, &stubNotifier{}, "@every 1h", time.Hour, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
