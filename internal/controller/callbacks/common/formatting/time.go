package formatting

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Форматы ввода времени в диалогах
const (
	InputDateTimeLayout = "02.01.2006 15:04"
	InputTimeLayout     = "15:04"
)

var ErrInvalidDateTime = errors.New("invalid date/time format")

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует дату с коротким днём недели
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %s", GetWeekdayShortName(int(t.Weekday())), t.Format("02.01.2006"))
}

// FormatTimeRange форматирует интервал слота. Если слот переходит
// через полночь, у конца выводится дата.
func FormatTimeRange(start, end time.Time) string {
	if sameDay(start, end) {
		return fmt.Sprintf("%s %s–%s", FormatDate(start), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s %s – %s", FormatDate(start), start.Format("15:04"), FormatDateTime(end))
}

// FormatDuration форматирует длительность
func FormatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// ParseDateTime разбирает "ДД.ММ.ГГГГ ЧЧ:ММ" в часовом поясе loc
func ParseDateTime(text string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(InputDateTimeLayout, normalizeInput(text), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, text)
	}
	return t, nil
}

// ParseEndTime разбирает конец слота: либо полную дату, либо только "ЧЧ:ММ"
// в день начала. Время раньше начала без даты считается следующим днём.
func ParseEndTime(text string, start time.Time) (time.Time, error) {
	text = normalizeInput(text)
	loc := start.Location()

	if len(text) > len(InputTimeLayout) {
		return ParseDateTime(text, loc)
	}

	clock, err := time.ParseInLocation(InputTimeLayout, text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, text)
	}

	end := time.Date(start.Year(), start.Month(), start.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return end, nil
}

func normalizeInput(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
