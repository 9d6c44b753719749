package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-playground/validator/v10"
)

// SlotTitleMaxLength ограничение длины названия слота
const SlotTitleMaxLength = 200

var validate = validator.New(validator.WithRequiredStructEnabled())

// slotFields поля слота, которые задаёт владелец
type slotFields struct {
	Title     string           `validate:"required,max=200"`
	StartTime time.Time        `validate:"required"`
	EndTime   time.Time        `validate:"required,gtfield=StartTime"`
	Status    model.SlotStatus `validate:"required,oneof=BUSY SWAPPABLE"`
}

var fieldMessages = map[string]string{
	"Title.required":     "title is required",
	"Title.max":          fmt.Sprintf("title must be at most %d characters", SlotTitleMaxLength),
	"StartTime.required": "start time is required",
	"EndTime.required":   "end time is required",
	"EndTime.gtfield":    "end time must be after start time",
	"Status.required":    "status is required",
	"Status.oneof":       "status must be BUSY or SWAPPABLE",
}

// validateSlotFields проверяет поля слота и возвращает apperr.Validation
func validateSlotFields(f slotFields) error {
	f.Title = strings.TrimSpace(f.Title)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate slot: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
	}

	return apperr.Validation("%s", strings.Join(msgs, "; "))
}
