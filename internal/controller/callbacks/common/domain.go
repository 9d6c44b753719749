package common

import "github.com/Freeeeeet/slotswap_bot/internal/apperr"

// IsDomainError проверяет что ошибка ожидаемая и вызвана действиями пользователя
func IsDomainError(err error) bool {
	return apperr.KindOf(err) != apperr.KindUnknown
}
