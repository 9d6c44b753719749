package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (s *recordingSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, params)
	return &models.Message{}, nil
}

func pendingRequest() *model.SwapRequest {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	return &model.SwapRequest{
		ID:            uuid.New(),
		RequesterID:   2,
		OwnerID:       1,
		Status:        model.SwapRequestStatusPending,
		CreatedAt:     time.Now().Add(-25 * time.Hour),
		Requester:     &model.User{ID: 2, TelegramID: 2002, FirstName: "Bob"},
		Owner:         &model.User{ID: 1, TelegramID: 1001, FirstName: "Alice"},
		OfferedSlot:   &model.Slot{Title: "B", StartTime: start, EndTime: start.Add(time.Hour)},
		RequestedSlot: &model.Slot{Title: "A", StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour)},
	}
}

func TestNotifier_SwapProposedGoesToOwnerWithButtons(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, time.UTC, zap.NewNop())
	req := pendingRequest()

	n.NotifySwapProposed(context.Background(), req)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, int64(1001), msg.ChatID)
	assert.Contains(t, msg.Text, "Новое предложение обмена")

	kb, ok := msg.ReplyMarkup.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "swap_accept:"+req.ID.String(), kb.InlineKeyboard[0][0].CallbackData)
}

func TestNotifier_SwapResolvedGoesToRequester(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, time.UTC, zap.NewNop())
	req := pendingRequest()
	req.Status = model.SwapRequestStatusRejected

	n.NotifySwapResolved(context.Background(), req)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(2002), sender.sent[0].ChatID)
	assert.Contains(t, sender.sent[0].Text, "отклонена")
	assert.Nil(t, sender.sent[0].ReplyMarkup)
}

func TestNotifier_RemindPendingSwap(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, time.UTC, zap.NewNop())

	require.NoError(t, n.RemindPendingSwap(context.Background(), pendingRequest()))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Text, "ждёт вашего ответа")
	assert.Contains(t, sender.sent[0].Text, "25 ч")

	req := pendingRequest()
	req.Owner = nil
	assert.Error(t, n.RemindPendingSwap(context.Background(), req))

	failing := NewNotifier(&recordingSender{err: errors.New("blocked")}, time.UTC, zap.NewNop())
	assert.Error(t, failing.RemindPendingSwap(context.Background(), pendingRequest()))
}
