package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository"
	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//slotswap_bot//Slots//RU"

// CalendarService выгружает слоты пользователя в iCalendar
type CalendarService struct {
	slotRepo repository.SlotRepository
	now      func() time.Time
}

func NewCalendarService(slotRepo repository.SlotRepository) *CalendarService {
	return &CalendarService{
		slotRepo: slotRepo,
		now:      time.Now,
	}
}

// ExportICS формирует .ics со всеми слотами владельца
func (s *CalendarService) ExportICS(ctx context.Context, ownerID int64) ([]byte, error) {
	slots, err := s.slotRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName("Мои слоты")

	stamp := s.now().UTC()
	for _, slot := range slots {
		event := cal.AddEvent(slot.ID.String() + "@slotswap")
		event.SetDtStampTime(stamp)
		event.SetStartAt(slot.StartTime.UTC())
		event.SetEndAt(slot.EndTime.UTC())
		event.SetSummary(slot.Title)
		event.SetProperty(ics.ComponentPropertyCategories, string(slot.Status))
		event.SetStatus(eventStatus(slot.Status))
		event.SetModifiedAt(slot.UpdatedAt.UTC())
	}

	return []byte(cal.Serialize()), nil
}

// eventStatus отображает статус слота на STATUS события:
// слот под заявкой на обмен помечается как предварительный
func eventStatus(status model.SlotStatus) ics.ObjectStatus {
	if status == model.SlotStatusSwapPending {
		return ics.ObjectStatusTentative
	}
	return ics.ObjectStatusConfirmed
}
