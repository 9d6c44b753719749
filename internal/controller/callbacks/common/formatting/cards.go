package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
)

// SlotButtonLabel короткая подпись слота для inline кнопки
func SlotButtonLabel(slot *model.Slot, loc *time.Location) string {
	start := slot.StartTime.In(loc)
	return fmt.Sprintf("%s %s %s · %s",
		GetSlotStatusDisplay(slot.Status).Emoji,
		start.Format("02.01"),
		start.Format("15:04"),
		truncate(slot.Title, 32),
	)
}

// SlotCard карточка слота в HTML разметке
func SlotCard(slot *model.Slot, loc *time.Location) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(slot.Title))
	fmt.Fprintf(&sb, "📅 %s\n", FormatTimeRange(slot.StartTime.In(loc), slot.EndTime.In(loc)))
	fmt.Fprintf(&sb, "⏱ %s\n", FormatDuration(slot.Duration()))
	fmt.Fprintf(&sb, "📊 %s", GetSlotStatusDisplay(slot.Status))

	if slot.Owner != nil {
		fmt.Fprintf(&sb, "\n👤 %s", html.EscapeString(slot.Owner.DisplayName()))
	}

	return sb.String()
}

// SlotListText список слотов с заголовком
func SlotListText(title string, slots []*model.Slot, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b> (%d %s)\n", title, len(slots), PluralizeSlots(len(slots)))

	for i, slot := range slots {
		fmt.Fprintf(&sb, "\n%d. %s %s\n   %s",
			i+1,
			GetSlotStatusDisplay(slot.Status).Emoji,
			html.EscapeString(slot.Title),
			FormatTimeRange(slot.StartTime.In(loc), slot.EndTime.In(loc)),
		)
		if slot.Owner != nil {
			fmt.Fprintf(&sb, "\n   👤 %s", html.EscapeString(slot.Owner.DisplayName()))
		}
	}

	return sb.String()
}

// SwapRequestCard карточка заявки с точки зрения viewerID
func SwapRequestCard(req *model.SwapRequest, viewerID int64, loc *time.Location) string {
	var sb strings.Builder

	status := GetSwapStatusDisplay(req.Status)
	if req.OwnerID == viewerID {
		fmt.Fprintf(&sb, "📥 <b>Входящая заявка</b> от %s\n", partyName(req.Requester))
	} else {
		fmt.Fprintf(&sb, "📤 <b>Исходящая заявка</b> для %s\n", partyName(req.Owner))
	}
	fmt.Fprintf(&sb, "📊 %s\n\n", status)

	// Для каждой стороны показываем, что она отдаёт и что получает
	give, get := req.OfferedSlot, req.RequestedSlot
	if req.OwnerID == viewerID {
		give, get = get, give
	}

	fmt.Fprintf(&sb, "➡️ Вы отдаёте: %s\n", slotSummary(give, loc))
	fmt.Fprintf(&sb, "⬅️ Вы получаете: %s\n", slotSummary(get, loc))

	fmt.Fprintf(&sb, "\n🕐 Создана: %s", FormatDateTime(req.CreatedAt.In(loc)))
	if req.RespondedAt != nil {
		fmt.Fprintf(&sb, "\n🕑 Ответ: %s", FormatDateTime(req.RespondedAt.In(loc)))
	}

	return sb.String()
}

// SwapResolvedText текст уведомления инициатору о решении по заявке
func SwapResolvedText(req *model.SwapRequest, loc *time.Location) string {
	header := "🚫 <b>Заявка на обмен отклонена</b>"
	footer := "Ваш слот снова выставлен на обмен."
	if req.Status == model.SwapRequestStatusAccepted {
		header = "✅ <b>Заявка на обмен принята!</b>"
		footer = "Слоты обменялись владельцами."
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s",
		header,
		SwapRequestCard(req, req.RequesterID, loc),
		footer,
	)
}

func slotSummary(slot *model.Slot, loc *time.Location) string {
	if slot == nil {
		return "<i>слот удалён</i>"
	}
	return fmt.Sprintf("<b>%s</b>, %s",
		html.EscapeString(slot.Title),
		FormatTimeRange(slot.StartTime.In(loc), slot.EndTime.In(loc)),
	)
}

func partyName(user *model.User) string {
	if user == nil {
		return "пользователя"
	}
	return html.EscapeString(user.DisplayName())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
