package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusBusy      SlotStatus = "BUSY"      // Занят, не участвует в обменах
	SlotStatusSwappable SlotStatus = "SWAPPABLE" // Выставлен на обмен
	// SlotStatusSwapPending служит блокировкой: слот участвует ровно в одной
	// заявке PENDING и недоступен для правок, удаления и новых предложений,
	// пока владелец запрошенного слота не ответит на заявку.
	SlotStatusSwapPending SlotStatus = "SWAP_PENDING"
)

// Valid проверяет что статус известен
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusBusy, SlotStatusSwappable, SlotStatusSwapPending:
		return true
	}
	return false
}

// IsOwnerSettable возвращает true для статусов, которые владелец может выставить сам
func (s SlotStatus) IsOwnerSettable() bool {
	return s == SlotStatusBusy || s == SlotStatusSwappable
}

type Slot struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Title     string     `json:"title"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Owner *User `json:"owner,omitempty"`
}

// IsLocked проверяет что слот заблокирован активной заявкой на обмен
func (s *Slot) IsLocked() bool {
	return s.Status == SlotStatusSwapPending
}

// IsSwappable проверяет что слот можно предложить или запросить в обмен
func (s *Slot) IsSwappable() bool {
	return s.Status == SlotStatusSwappable
}

// Duration возвращает длительность слота
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Clone возвращает копию слота без связанных объектов
func (s *Slot) Clone() *Slot {
	c := *s
	c.Owner = nil
	return &c
}
