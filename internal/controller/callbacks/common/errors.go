package common

import (
	"errors"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog state expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "❌ Действие устарело. Начните заново"
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return "❌ Некорректные данные"
	case apperr.KindNotFound:
		return "❌ Не найдено. Возможно, запись уже удалена"
	case apperr.KindForbidden:
		return "❌ У вас нет доступа к этому действию"
	case apperr.KindConflict:
		return "⚠️ Действие недоступно: состояние уже изменилось. Обновите список"
	default:
		return "❌ Произошла ошибка"
	}
}

// SlotErrorMessage уточняет сообщение для операций со слотом
func SlotErrorMessage(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return "❌ Слот не найден"
	case apperr.KindForbidden:
		return "❌ Это не ваш слот"
	case apperr.KindConflict:
		return "🔒 Слот участвует в заявке на обмен. Дождитесь ответа"
	default:
		return ErrorMessage(err)
	}
}

// SwapErrorMessage уточняет сообщение для операций с заявками
func SwapErrorMessage(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return "❌ Слот или заявка не найдены"
	case apperr.KindForbidden:
		return "❌ Эта заявка адресована не вам"
	case apperr.KindValidation:
		return "❌ Нельзя обменять слот сам на себя"
	case apperr.KindConflict:
		return "⚠️ Обмен недоступен: слот уже занят другой заявкой или заявка уже обработана"
	default:
		return ErrorMessage(err)
	}
}
