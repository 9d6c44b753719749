package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moscow = time.FixedZone("MSK", 3*60*60)

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("  20.10.2026   09:30 ", moscow)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 6, 30, 0, 0, time.UTC)))

	for _, bad := range []string{"", "2026-10-20 09:30", "20.10.2026", "32.10.2026 09:30", "20.10.2026 25:00"} {
		_, err := ParseDateTime(bad, moscow)
		assert.ErrorIs(t, err, ErrInvalidDateTime, bad)
	}
}

func TestParseEndTime(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, moscow)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"same day clock", "10:30", time.Date(2026, 10, 20, 10, 30, 0, 0, moscow)},
		{"single digit hour", "9:45", time.Date(2026, 10, 20, 9, 45, 0, 0, moscow)},
		{"clock before start rolls over", "01:00", time.Date(2026, 10, 21, 1, 0, 0, 0, moscow)},
		{"full date", "22.10.2026 12:00", time.Date(2026, 10, 22, 12, 0, 0, 0, moscow)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndTime(tt.input, start)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}

	_, err := ParseEndTime("later", start)
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, moscow)

	assert.Equal(t, "Вт, 20.10.2026 09:00–10:30", FormatTimeRange(start, start.Add(90*time.Minute)))
	assert.Equal(t, "Вт, 20.10.2026 23:00 – 21.10.2026 01:00",
		FormatTimeRange(start.Add(14*time.Hour), start.Add(16*time.Hour)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45*time.Minute))
	assert.Equal(t, "2 ч", FormatDuration(2*time.Hour))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90*time.Minute))
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{1: "слот", 2: "слота", 5: "слотов", 11: "слотов", 21: "слот", 24: "слота"}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeSlots(n), n)
	}
	assert.Equal(t, "заявки", PluralizeRequests(3))
}

func TestSwapRequestCard_Perspective(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, moscow)
	req := &model.SwapRequest{
		ID:            uuid.New(),
		RequesterID:   2,
		OwnerID:       1,
		Status:        model.SwapRequestStatusPending,
		CreatedAt:     start,
		Requester:     &model.User{ID: 2, FirstName: "Bob"},
		Owner:         &model.User{ID: 1, FirstName: "Alice"},
		OfferedSlot:   &model.Slot{Title: "Bob <slot>", StartTime: start, EndTime: start.Add(time.Hour)},
		RequestedSlot: &model.Slot{Title: "Alice slot", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
	}

	owner := SwapRequestCard(req, 1, moscow)
	assert.Contains(t, owner, "Входящая заявка</b> от Bob")
	assert.Contains(t, owner, "Вы отдаёте: <b>Alice slot</b>")
	assert.Contains(t, owner, "Вы получаете: <b>Bob &lt;slot&gt;</b>")

	requester := SwapRequestCard(req, 2, moscow)
	assert.Contains(t, requester, "Исходящая заявка</b> для Alice")
	assert.Contains(t, requester, "Вы отдаёте: <b>Bob &lt;slot&gt;</b>")

	req.Status = model.SwapRequestStatusAccepted
	assert.Contains(t, SwapResolvedText(req, moscow), "принята")
}

func TestSlotButtonLabel(t *testing.T) {
	start := time.Date(2026, 10, 20, 6, 0, 0, 0, time.UTC)
	slot := &model.Slot{
		Title:     "Очень длинное название слота, которое не влезет в кнопку",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    model.SlotStatusSwappable,
	}

	label := SlotButtonLabel(slot, moscow)
	assert.Contains(t, label, "20.10 09:00")
	assert.Contains(t, label, "…")
}
