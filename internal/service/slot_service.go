package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository"
	"github.com/google/uuid"
)

// CreateSlotInput данные для создания слота. Пустой Status означает BUSY.
type CreateSlotInput struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    model.SlotStatus
}

// SlotPatch частичное обновление слота, nil-поля не меняются
type SlotPatch struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *model.SlotStatus
}

// SlotService владеет слотами и переходами их статусов.
// Статус SWAP_PENDING и смену владельца выставляет только SwapService.
type SlotService struct {
	repos *repository.Repositories
	tx    repository.TxManager
}

func NewSlotService(repos *repository.Repositories, tx repository.TxManager) *SlotService {
	return &SlotService{
		repos: repos,
		tx:    tx,
	}
}

// CreateSlot создаёт слот владельца
func (s *SlotService) CreateSlot(ctx context.Context, ownerID int64, in CreateSlotInput) (*model.Slot, error) {
	if in.Status == "" {
		in.Status = model.SlotStatusBusy
	}

	slot := &model.Slot{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(in.Title),
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    in.Status,
	}

	if err := validateSlotFields(fieldsOf(slot)); err != nil {
		return nil, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		return repos.Slots.Create(ctx, slot)
	})
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	return slot, nil
}

// ListSlots получает слоты владельца по возрастанию времени начала
func (s *SlotService) ListSlots(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	return s.repos.Slots.ListByOwner(ctx, ownerID)
}

// GetSlot получает слот по ID
func (s *SlotService) GetSlot(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	slot, err := s.repos.Slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	if slot == nil {
		return nil, apperr.NotFound("slot not found")
	}

	return slot, nil
}

// GetOwnedSlot получает слот, только если он принадлежит вызывающему
func (s *SlotService) GetOwnedSlot(ctx context.Context, id uuid.UUID, callerID int64) (*model.Slot, error) {
	slot, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	if slot.OwnerID != callerID {
		return nil, apperr.Forbidden("slot belongs to another user")
	}

	return slot, nil
}

// UpdateSlot применяет patch к слоту владельца
func (s *SlotService) UpdateSlot(ctx context.Context, id uuid.UUID, callerID int64, patch SlotPatch) (*model.Slot, error) {
	return s.mutate(ctx, id, callerID, func(slot *model.Slot) (bool, error) {
		if patch.Title != nil {
			slot.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.StartTime != nil {
			slot.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			slot.EndTime = *patch.EndTime
		}
		if patch.Status != nil {
			slot.Status = *patch.Status
		}

		if err := validateSlotFields(fieldsOf(slot)); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SetStatus переключает слот между BUSY и SWAPPABLE
func (s *SlotService) SetStatus(ctx context.Context, id uuid.UUID, callerID int64, status model.SlotStatus) (*model.Slot, error) {
	if !status.IsOwnerSettable() {
		return nil, apperr.Validation("status must be BUSY or SWAPPABLE, got %q", status)
	}

	return s.mutate(ctx, id, callerID, func(slot *model.Slot) (bool, error) {
		if slot.Status == status {
			return false, nil
		}
		slot.Status = status
		return true, nil
	})
}

// DeleteSlot удаляет слот владельца
func (s *SlotService) DeleteSlot(ctx context.Context, id uuid.UUID, callerID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		if _, err := loadOwnedUnlocked(ctx, repos, id, callerID); err != nil {
			return err
		}
		return repos.Slots.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	return nil
}

// ListSwappable получает слоты других пользователей, выставленные на обмен,
// вместе с данными владельцев
func (s *SlotService) ListSwappable(ctx context.Context, excludingOwnerID int64) ([]*model.Slot, error) {
	slots, err := s.repos.Slots.ListSwappable(ctx, excludingOwnerID)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		ownerIDs = append(ownerIDs, slot.OwnerID)
	}

	owners, err := s.repos.Users.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("get slot owners: %w", err)
	}

	for _, slot := range slots {
		slot.Owner = owners[slot.OwnerID]
	}

	return slots, nil
}

// mutate загружает слот с блокировкой, проверяет права и блокировку обменом,
// применяет apply и сохраняет результат в одной транзакции
func (s *SlotService) mutate(ctx context.Context, id uuid.UUID, callerID int64, apply func(slot *model.Slot) (bool, error)) (*model.Slot, error) {
	var result *model.Slot

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		slot, err := loadOwnedUnlocked(ctx, repos, id, callerID)
		if err != nil {
			return err
		}

		changed, err := apply(slot)
		if err != nil {
			return err
		}

		if changed {
			if err := repos.Slots.Update(ctx, slot); err != nil {
				return err
			}
		}

		result = slot
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	return result, nil
}

// loadOwnedUnlocked загружает слот для изменения владельцем:
// не найден -> NotFound, чужой -> Forbidden, SWAP_PENDING -> Conflict
func loadOwnedUnlocked(ctx context.Context, repos *repository.Repositories, id uuid.UUID, callerID int64) (*model.Slot, error) {
	slot, err := repos.Slots.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if slot == nil {
		return nil, apperr.NotFound("slot not found")
	}

	if slot.OwnerID != callerID {
		return nil, apperr.Forbidden("slot belongs to another user")
	}

	if slot.IsLocked() {
		return nil, apperr.Conflict("slot is locked by a pending swap request")
	}

	return slot, nil
}

func fieldsOf(slot *model.Slot) slotFields {
	return slotFields{
		Title:     slot.Title,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    slot.Status,
	}
}
