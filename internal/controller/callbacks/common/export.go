package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// CalendarFileName имя файла выгрузки слотов
const CalendarFileName = "slots.ics"

// SendCalendar отправляет .ics файл в чат
func SendCalendar(ctx context.Context, b *bot.Bot, chatID int64, data []byte) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: CalendarFileName,
			Data:     bytes.NewReader(data),
		},
		Caption: "📤 Ваши слоты в формате iCalendar. Импортируйте файл в Google Calendar, Outlook или Apple Calendar.",
	})
	if err != nil {
		return fmt.Errorf("send calendar: %w", err)
	}
	return nil
}

// WeekImageFileName имя картинки с неделей слотов
const WeekImageFileName = "week.png"

// SendPhoto отправляет PNG с подписью и необязательной клавиатурой
func SendPhoto(ctx context.Context, b *bot.Bot, chatID int64, data []byte, caption string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: WeekImageFileName, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendPhoto(ctx, params); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}
