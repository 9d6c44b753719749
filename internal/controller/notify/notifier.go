package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Sender отправляет сообщения в Telegram, *bot.Bot удовлетворяет интерфейсу
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Notifier сообщает второй стороне заявки о событиях обмена
type Notifier struct {
	sender   Sender
	location *time.Location
	logger   *zap.Logger
}

func NewNotifier(sender Sender, location *time.Location, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:   sender,
		location: location,
		logger:   logger,
	}
}

// NotifySwapProposed уведомляет владельца запрошенного слота о новой заявке
func (n *Notifier) NotifySwapProposed(ctx context.Context, req *model.SwapRequest) {
	if req.Owner == nil {
		n.logger.Warn("Swap owner not loaded, skipping notification", zap.String("request_id", req.ID.String()))
		return
	}

	text := "🔔 <b>Новое предложение обмена</b>\n\n" + formatting.SwapRequestCard(req, req.OwnerID, n.location)
	if err := n.send(ctx, req.Owner.TelegramID, text, keyboard.RespondButtons(req.ID)); err != nil {
		n.logger.Warn("Failed to notify swap owner",
			zap.String("request_id", req.ID.String()),
			zap.Int64("owner_id", req.OwnerID),
			zap.Error(err))
	}
}

// NotifySwapResolved уведомляет инициатора о принятии или отклонении заявки
func (n *Notifier) NotifySwapResolved(ctx context.Context, req *model.SwapRequest) {
	if req.Requester == nil {
		n.logger.Warn("Swap requester not loaded, skipping notification", zap.String("request_id", req.ID.String()))
		return
	}

	text := formatting.SwapResolvedText(req, n.location)
	if err := n.send(ctx, req.Requester.TelegramID, text, nil); err != nil {
		n.logger.Warn("Failed to notify swap requester",
			zap.String("request_id", req.ID.String()),
			zap.Int64("requester_id", req.RequesterID),
			zap.Error(err))
	}
}

// RemindPendingSwap напоминает владельцу о заявке без ответа
func (n *Notifier) RemindPendingSwap(ctx context.Context, req *model.SwapRequest) error {
	if req.Owner == nil {
		return fmt.Errorf("remind swap %s: owner not loaded", req.ID)
	}

	waiting := time.Since(req.CreatedAt).Round(time.Minute)
	text := fmt.Sprintf("⏰ <b>Заявка ждёт вашего ответа</b> уже %s\n\n%s\n\nПока вы не ответите, оба слота заблокированы.",
		formatting.FormatDuration(waiting),
		formatting.SwapRequestCard(req, req.OwnerID, n.location))

	return n.send(ctx, req.Owner.TelegramID, text, keyboard.RespondButtons(req.ID))
}

func (n *Notifier) send(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := n.sender.SendMessage(ctx, params)
	return err
}
