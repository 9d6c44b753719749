package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/google/uuid"
)

type slotRepo struct {
	c *conn
}

func (r *slotRepo) Create(_ context.Context, slot *model.Slot) error {
	var err error
	r.c.write(func(st *state) {
		if _, exists := st.slots[slot.ID]; exists {
			err = fmt.Errorf("create slot: duplicate id %s", slot.ID)
			return
		}
		now := r.c.now()
		slot.CreatedAt = now
		slot.UpdatedAt = now
		st.slots[slot.ID] = slot.Clone()
	})
	return err
}

func (r *slotRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	var slot *model.Slot
	r.c.read(func(st *state) {
		if s, ok := st.slots[id]; ok {
			slot = s.Clone()
		}
	})
	return slot, nil
}

// GetByIDForUpdate внутри транзакции блокировка уже эксклюзивная
func (r *slotRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	return r.GetByID(ctx, id)
}

func (r *slotRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Slot, error) {
	result := make(map[uuid.UUID]*model.Slot, len(ids))
	r.c.read(func(st *state) {
		for _, id := range ids {
			if s, ok := st.slots[id]; ok {
				result[id] = s.Clone()
			}
		}
	})
	return result, nil
}

func (r *slotRepo) ListByOwner(_ context.Context, ownerID int64) ([]*model.Slot, error) {
	return r.filter(func(s *model.Slot) bool {
		return s.OwnerID == ownerID
	}), nil
}

func (r *slotRepo) ListSwappable(_ context.Context, excludeOwnerID int64) ([]*model.Slot, error) {
	return r.filter(func(s *model.Slot) bool {
		return s.Status == model.SlotStatusSwappable && s.OwnerID != excludeOwnerID
	}), nil
}

func (r *slotRepo) filter(match func(s *model.Slot) bool) []*model.Slot {
	var slots []*model.Slot
	r.c.read(func(st *state) {
		for _, s := range st.slots {
			if match(s) {
				slots = append(slots, s.Clone())
			}
		}
	})

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].StartTime.Before(slots[j].StartTime)
		}
		return slots[i].ID.String() < slots[j].ID.String()
	})
	return slots
}

func (r *slotRepo) Update(_ context.Context, slot *model.Slot) error {
	var err error
	r.c.write(func(st *state) {
		current, ok := st.slots[slot.ID]
		if !ok {
			err = fmt.Errorf("slot not found")
			return
		}
		slot.CreatedAt = current.CreatedAt
		slot.UpdatedAt = r.c.now()
		st.slots[slot.ID] = slot.Clone()
	})
	return err
}

// Delete удаляет слот вместе с историей заявок, как ON DELETE CASCADE
func (r *slotRepo) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	r.c.write(func(st *state) {
		if _, ok := st.slots[id]; !ok {
			err = fmt.Errorf("slot not found")
			return
		}
		delete(st.slots, id)
		for reqID, req := range st.requests {
			if req.OfferedSlotID == id || req.RequestedSlotID == id {
				delete(st.requests, reqID)
			}
		}
	})
	return err
}
