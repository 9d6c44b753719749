package common

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 150
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 20
	slotTitleMaxRune = 18
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 15.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotBusyColor        = color.RGBA{176, 190, 210, 230}
	slotSwappableColor   = color.RGBA{133, 193, 85, 220}
	slotSwapPendingColor = color.RGBA{255, 196, 87, 235}
	slotDefaultColor     = color.RGBA{220, 220, 220, 200}
	slotTextColor        = color.RGBA{20, 24, 28, 230}
	slotShadowColor      = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// weekBounds содержит границы недели, end не включается
type weekBounds struct {
	start time.Time
	end   time.Time
}

// hourRange диапазон часов [start, end)
type hourRange struct {
	start int
	end   int
	total int
}

// daySegment часть слота внутри одного дня недели, часы от начала дня
type daySegment struct {
	slot *model.Slot
	day  int
	from float64
	to   float64
}

var fontData = map[FontStyle][]byte{
	FontStyleDefault: goregular.TTF,
	FontStyleMedium:  gomedium.TTF,
	FontStyleBold:    gobold.TTF,
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	parsed, err := parsedFont(style)
	if err == nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

func parsedFont(style FontStyle) (*opentype.Font, error) {
	fontsMu.Lock()
	defer fontsMu.Unlock()

	if f, ok := cachedFonts[style]; ok {
		return f, nil
	}

	data, ok := fontData[style]
	if !ok {
		data = goregular.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	cachedFonts[style] = f
	return f, nil
}

// WeekStart возвращает полночь понедельника недели, в которую попадает t
func WeekStart(t time.Time) time.Time {
	day := normalizeToDay(t)
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -daysSinceMonday)
}

// GenerateWeekImage рисует PNG с неделей слотов, начиная с понедельника weekStart.
// Время слотов переводится в часовой пояс weekStart.
func GenerateWeekImage(weekStart time.Time, slots []*model.Slot, now time.Time) ([]byte, error) {
	week := weekBounds{start: WeekStart(weekStart)}
	week.end = week.start.AddDate(0, 0, totalDaysInWeek)

	now = now.In(week.start.Location())
	highlightToday := !now.Before(week.start) && now.Before(week.end)

	segments := splitByDays(slots, week)
	hours := calculateHourRange(segments)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	drawDays(dc, week, now, highlightToday, dayWidth, dayHeight, hours, cellHeight)
	for _, seg := range segments {
		drawSlot(dc, seg, dayWidth, hours, cellHeight)
	}
	if highlightToday {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// SlotsInWeek отбирает слоты, пересекающиеся с неделей от weekStart
func SlotsInWeek(slots []*model.Slot, weekStart time.Time) []*model.Slot {
	start := WeekStart(weekStart)
	end := start.AddDate(0, 0, totalDaysInWeek)

	var res []*model.Slot
	for _, slot := range slots {
		if slot.StartTime.Before(end) && slot.EndTime.After(start) {
			res = append(res, slot)
		}
	}
	return res
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// splitByDays режет слоты по границам дней, слот через полночь даёт два сегмента
func splitByDays(slots []*model.Slot, week weekBounds) []daySegment {
	loc := week.start.Location()
	var segments []daySegment

	for _, slot := range slots {
		start := slot.StartTime.In(loc)
		end := slot.EndTime.In(loc)

		for day := 0; day < totalDaysInWeek; day++ {
			dayStart := week.start.AddDate(0, 0, day)
			dayEnd := dayStart.AddDate(0, 0, 1)
			if !start.Before(dayEnd) || !end.After(dayStart) {
				continue
			}

			from, to := start, end
			if from.Before(dayStart) {
				from = dayStart
			}
			if to.After(dayEnd) {
				to = dayEnd
			}

			segments = append(segments, daySegment{
				slot: slot,
				day:  day,
				from: from.Sub(dayStart).Hours(),
				to:   to.Sub(dayStart).Hours(),
			})
		}
	}
	return segments
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(segments []daySegment) hourRange {
	if len(segments) == 0 {
		return hourRange{start: defaultMinHour, end: defaultMaxHour, total: defaultMaxHour - defaultMinHour}
	}

	minHour, maxHour := 24, 0
	for _, seg := range segments {
		minHour = min(minHour, int(math.Floor(seg.from)))
		maxHour = max(maxHour, int(math.Ceil(seg.to)))
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 24)

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с датами недели
func drawHeader(dc *gg.Context, week weekBounds) {
	last := week.end.AddDate(0, 0, -1)
	title := fmt.Sprintf("%s, %s - %s",
		monthTitle(week.start, last),
		week.start.Format("02.01"),
		last.Format("02.01.2006"),
	)

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

func monthTitle(first, last time.Time) string {
	if first.Month() == last.Month() {
		return monthNames[first.Month()]
	}
	return monthNames[first.Month()] + " - " + monthNames[last.Month()]
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for h := hours.start; h < hours.end; h++ {
		y := float64(headerHeight) + float64(h-hours.start)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDays рисует фон, заголовки и сетку часов для всех дней недели
func drawDays(dc *gg.Context, week weekBounds, now time.Time, highlightToday bool,
	dayWidth, dayHeight int, hours hourRange, cellHeight float64) {

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		date := week.start.AddDate(0, 0, dayIndex)
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		switch {
		case highlightToday && normalizeToDay(now).Equal(date):
			dc.SetColor(todayBgColor)
		case dayIndex%2 == 0:
			dc.SetColor(evenDayColor)
		default:
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		loadFont(dc, dayFontSize, FontStyleBold)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
		dc.DrawStringAnchored(formatting.GetWeekdayShortName(int(date.Weekday())), x+float64(dayWidth)/2, y, 0.5, -0.2)

		dc.SetLineWidth(0.3)
		dc.SetColor(hourLineColor)
		for h := 0; h <= hours.total; h++ {
			hy := y + float64(h)*cellHeight
			dc.DrawLine(x, hy, x+float64(dayWidth), hy)
			dc.Stroke()
		}
	}
}

// drawSlot рисует часть слота внутри одного дня
func drawSlot(dc *gg.Context, seg daySegment, dayWidth int, hours hourRange, cellHeight float64) {
	x := float64(leftLabelsWidth + seg.day*dayWidth)
	slotY := float64(headerHeight) + (seg.from-float64(hours.start))*cellHeight
	slotHeight := max((seg.to-seg.from)*cellHeight, minSlotHeight)

	fillColor := getSlotColor(seg.slot.Status)
	slotX := x + dayPaddingX
	slotWidth := float64(dayWidth) - dayPaddingX*2

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(slotX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(slotX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(slotX, slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	if slotHeight < 20 {
		return
	}

	loadFont(dc, slotTimeFontSize, FontStyleMedium)
	dc.SetColor(slotTextColor)
	txtX := slotX + 8
	txtY := slotY + 18
	dc.DrawStringAnchored(formatHour(seg.from)+"-"+formatHour(seg.to), txtX, txtY, 0, 0)

	if slotHeight > 40 {
		loadFont(dc, slotTimeFontSize-2, FontStyleDefault)
		dc.DrawStringAnchored(truncateRunes(seg.slot.Title, slotTitleMaxRune), txtX, txtY+18, 0, 0)
	}
}

// getSlotColor возвращает цвет слота по его статусу
func getSlotColor(status model.SlotStatus) color.RGBA {
	switch status {
	case model.SlotStatusBusy:
		return slotBusyColor
	case model.SlotStatusSwappable:
		return slotSwappableColor
	case model.SlotStatusSwapPending:
		return slotSwapPendingColor
	default:
		return slotDefaultColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := now.Sub(normalizeToDay(now)).Hours()
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду статусов справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{formatting.GetSlotStatusDisplay(model.SlotStatusBusy).Text, slotBusyColor},
		{formatting.GetSlotStatusDisplay(model.SlotStatusSwappable).Text, slotSwappableColor},
		{formatting.GetSlotStatusDisplay(model.SlotStatusSwapPending).Text, slotSwapPendingColor},
	}

	const boxW, boxH = 20.0, 14.0
	liX := float64(leftLabelsWidth+totalDaysInWeek*dayWidth) + 10
	liY := float64(imageHeight) - 100.0

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// formatHour переводит часы от начала дня в "ЧЧ:ММ"
func formatHour(h float64) string {
	minutes := int(math.Round(h * 60))
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

var monthNames = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}
