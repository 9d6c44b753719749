package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/slotswap_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Тексты шагов диалога создания слота
const (
	NewSlotTitlePrompt = "➕ <b>Новый слот</b>\n\n" +
		"Шаг 1 из 4: Как назвать слот?\n\n" +
		"Например: Дежурство, Созвон с командой, Смена\n\n" +
		"Для отмены используйте /cancel"

	RenameSlotPrompt = "✏️ Введите новое название слота\n\nДля отмены используйте /cancel"
)

// MySlotsScreen экран со списком своих слотов
func MySlotsScreen(slots []*model.Slot, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.SlotList(slots, keyboard.ViewSlot, func(slot *model.Slot) string {
		return formatting.SlotButtonLabel(slot, loc)
	})
	b.Row(
		keyboard.Button("➕ Новый слот", keyboard.NewSlot),
		keyboard.Button("📤 Экспорт .ics", keyboard.ExportICS),
	)
	b.Row(
		keyboard.Button("🗓 Неделя", keyboard.WeekData(0)),
		keyboard.MarketButton(),
	)

	if len(slots) == 0 {
		return "📋 <b>Мои слоты</b>\n\nУ вас пока нет слотов. Создайте первый: /newslot", b.Build()
	}

	return formatting.SlotListText("📋 Мои слоты", slots, loc) +
		"\n\nНажмите на слот, чтобы изменить его.", b.Build()
}

// SlotScreen карточка своего слота с кнопками управления
func SlotScreen(slot *model.Slot, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	return formatting.SlotCard(slot, loc), keyboard.SlotActions(slot)
}

// MarketScreen экран биржи: чужие слоты, доступные для обмена
func MarketScreen(slots []*model.Slot, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.SlotList(slots, keyboard.ProposeFor, func(slot *model.Slot) string {
		return "🤝 " + formatting.SlotButtonLabel(slot, loc)
	})
	b.Row(keyboard.Button("🔄 Обновить", keyboard.Market), keyboard.MySlotsButton())

	if len(slots) == 0 {
		return "🔁 <b>Биржа слотов</b>\n\nСейчас никто не выставил слоты на обмен.", b.Build()
	}

	return formatting.SlotListText("🔁 Биржа слотов", slots, loc) +
		"\n\nВыберите слот, который хотите получить.", b.Build()
}

// ProposePickScreen выбор своего слота для предложения
func ProposePickScreen(requested *model.Slot, mine []*model.Slot, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.SlotList(mine, keyboard.ProposeOffer, func(slot *model.Slot) string {
		return formatting.SlotButtonLabel(slot, loc)
	})
	b.Row(keyboard.Button("❌ Отмена", keyboard.ProposeCancel))

	text := fmt.Sprintf("🤝 <b>Предложение обмена</b>\n\nВы хотите получить:\n%s\n\nВыберите свой слот, который отдадите взамен:",
		formatting.SlotCard(requested, loc))

	return text, b.Build()
}

// RequestsScreen список заявок, входящих или исходящих
func RequestsScreen(title string, reqs []*model.SwapRequest, viewerID int64, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	for _, req := range reqs {
		b.Row(keyboard.Button(requestButtonLabel(req, viewerID, loc), keyboard.ViewRequest+req.ID.String()))
	}
	b.Row(
		keyboard.Button("📥 Входящие", keyboard.Incoming),
		keyboard.Button("📤 Исходящие", keyboard.Outgoing),
	)

	if len(reqs) == 0 {
		return fmt.Sprintf("<b>%s</b>\n\nЗаявок пока нет.", title), b.Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b> (%d %s)\n", title, len(reqs), formatting.PluralizeRequests(len(reqs)))
	for i, req := range reqs {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, html.EscapeString(requestButtonLabel(req, viewerID, loc)))
	}
	sb.WriteString("\n\nНажмите на заявку, чтобы посмотреть подробности.")

	return sb.String(), b.Build()
}

// RequestScreen карточка заявки; владельцу заявки PENDING показываются кнопки ответа
func RequestScreen(req *model.SwapRequest, viewerID int64, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := formatting.SwapRequestCard(req, viewerID, loc)
	if req.IsPending() && req.OwnerID == viewerID {
		return text, keyboard.RespondButtons(req.ID)
	}
	return text, nil
}

func requestButtonLabel(req *model.SwapRequest, viewerID int64, loc *time.Location) string {
	counterpart := req.Owner
	if req.OwnerID == viewerID {
		counterpart = req.Requester
	}

	name := "?"
	if counterpart != nil {
		name = counterpart.DisplayName()
	}

	when := ""
	if req.RequestedSlot != nil {
		when = req.RequestedSlot.StartTime.In(loc).Format("02.01 15:04")
	}

	return fmt.Sprintf("%s %s · %s", formatting.GetSwapStatusDisplay(req.Status).Emoji, when, name)
}

// maxWeekOffset насколько недель можно листать от текущей
const maxWeekOffset = 52

// WeekScreen картинка недели со смещением offset от недели now и подпись к ней
func WeekScreen(slots []*model.Slot, offset int, now time.Time, loc *time.Location) ([]byte, string, *models.InlineKeyboardMarkup, error) {
	offset = max(-maxWeekOffset, min(offset, maxWeekOffset))
	weekStart := WeekStart(now.In(loc)).AddDate(0, 0, 7*offset)
	inWeek := SlotsInWeek(slots, weekStart)

	png, err := GenerateWeekImage(weekStart, inWeek, now)
	if err != nil {
		return nil, "", nil, err
	}

	caption := fmt.Sprintf("🗓 <b>Неделя %s - %s</b>\n",
		weekStart.Format("02.01"),
		weekStart.AddDate(0, 0, 6).Format("02.01.2006"))
	if len(inWeek) == 0 {
		caption += "Слотов нет."
	} else {
		caption += fmt.Sprintf("%d %s", len(inWeek), formatting.PluralizeSlots(len(inWeek)))
	}

	return png, caption, keyboard.WeekNavigation(offset), nil
}
