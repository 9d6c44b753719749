package ratelimit

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const limitedText = "⏳ Слишком много запросов, подождите немного"

// Middleware отбрасывает апдейты пользователя, превысившего лимит.
// На нажатие кнопки отвечаем подсказкой, чтобы не висели "часики".
func Middleware(store *Store, logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			userID, ok := senderID(update)
			if !ok || store.Allow(userID) {
				next(ctx, b, update)
				return
			}

			logger.Debug("Update rate limited", zap.Int64("telegram_id", userID))

			if update.CallbackQuery != nil {
				if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
					CallbackQueryID: update.CallbackQuery.ID,
					Text:            limitedText,
				}); err != nil {
					logger.Warn("Failed to answer limited callback", zap.Error(err))
				}
			}
		}
	}
}

func senderID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	}
	return 0, false
}
