package model

import (
	"time"

	"github.com/google/uuid"
)

type SwapRequestStatus string

const (
	SwapRequestStatusPending  SwapRequestStatus = "PENDING"  // Ожидает ответа владельца
	SwapRequestStatusAccepted SwapRequestStatus = "ACCEPTED" // Обмен состоялся
	SwapRequestStatusRejected SwapRequestStatus = "REJECTED" // Отклонена владельцем
)

// IsTerminal проверяет что статус финальный
func (s SwapRequestStatus) IsTerminal() bool {
	return s == SwapRequestStatusAccepted || s == SwapRequestStatusRejected
}

// SwapRequest заявка на обмен двух слотов между двумя пользователями.
// RequesterID владеет OfferedSlotID, OwnerID владеет RequestedSlotID
// на момент создания заявки.
type SwapRequest struct {
	ID              uuid.UUID         `json:"id"`
	RequesterID     int64             `json:"requester_id"`
	OwnerID         int64             `json:"owner_id"`
	OfferedSlotID   uuid.UUID         `json:"offered_slot_id"`
	RequestedSlotID uuid.UUID         `json:"requested_slot_id"`
	Status          SwapRequestStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	RespondedAt     *time.Time        `json:"responded_at"`

	// Дополнительные поля для удобства (не из БД)
	Requester     *User `json:"requester,omitempty"`
	Owner         *User `json:"owner,omitempty"`
	OfferedSlot   *Slot `json:"offered_slot,omitempty"`
	RequestedSlot *Slot `json:"requested_slot,omitempty"`
}

// IsPending checks if request is pending
func (r *SwapRequest) IsPending() bool {
	return r.Status == SwapRequestStatusPending
}

// IsParty проверяет что пользователь является одной из сторон заявки
func (r *SwapRequest) IsParty(userID int64) bool {
	return r.RequesterID == userID || r.OwnerID == userID
}

// SlotIDs возвращает идентификаторы обоих слотов заявки
func (r *SwapRequest) SlotIDs() []uuid.UUID {
	return []uuid.UUID{r.OfferedSlotID, r.RequestedSlotID}
}

// Clone возвращает копию заявки без связанных объектов
func (r *SwapRequest) Clone() *SwapRequest {
	c := *r
	if r.RespondedAt != nil {
		t := *r.RespondedAt
		c.RespondedAt = &t
	}
	c.Requester, c.Owner, c.OfferedSlot, c.RequestedSlot = nil, nil, nil, nil
	return &c
}
