// Package apperr описывает типизированные ошибки ядра: граница (бот)
// переводит их в сообщения для пользователя по Kind.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // Некорректный ввод
	KindNotFound        // Запись не найдена
	KindForbidden       // Нет прав на запись
	KindConflict        // Нарушение машины состояний или конкурентная запись
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error ошибка ядра с категорией
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по Kind, чтобы errors.Is(err, ErrConflict) срабатывал
// для любой конфликтной ошибки
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Сентинелы для errors.Is
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden  = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrConflict   = &Error{Kind: KindConflict, Message: "conflict"}
)

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation создаёт ошибку валидации
func Validation(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

// NotFound создаёт ошибку "не найдено"
func NotFound(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

// Forbidden создаёт ошибку доступа
func Forbidden(format string, args ...any) error {
	return newError(KindForbidden, format, args...)
}

// Conflict создаёт ошибку конфликта состояний
func Conflict(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

// WrapConflict оборачивает ошибку хранилища как конфликт
func WrapConflict(err error, format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf возвращает категорию ошибки или KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
