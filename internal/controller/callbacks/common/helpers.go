package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseUUIDFromCallback извлекает UUID из callback data
// Например: "slot_toggle:1b4e28ba-2fa1-11d2-883f-0016d3cca427" -> UUID
func ParseUUIDFromCallback(data string) (uuid.UUID, error) {
	_, raw, found := strings.Cut(data, ":")
	if !found {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, nil
}

// CallbackData собирает callback data из префикса и UUID
func CallbackData(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// IsMessageNotModifiedError проверяет ошибку Telegram "message is not modified"
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// ParseWeekOffset извлекает смещение недели из callback data "week:<n>"
func ParseWeekOffset(data string) (int, error) {
	_, raw, found := strings.Cut(data, ":")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	offset, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return offset, nil
}
