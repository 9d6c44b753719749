package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository/base"
	"github.com/google/uuid"
)

const slotColumns = `id, owner_id, title, start_time, end_time, status, created_at, updated_at`

type PgSlotRepository struct {
	*base.Repository
}

func NewSlotRepository(q base.Querier) *PgSlotRepository {
	return &PgSlotRepository{Repository: base.NewRepository(q)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.Title,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create создаёт новый слот
func (r *PgSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (id, owner_id, title, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.ID,
		slot.OwnerID,
		slot.Title,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

func (r *PgSlotRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*model.Slot, error) {
	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}
	return slot, nil
}

// GetByID получает слот по ID
func (r *PgSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	return r.getOne(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
}

// GetByIDForUpdate получает слот по ID и блокирует строку до конца транзакции
func (r *PgSlotRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	return r.getOne(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, id)
}

// GetByIDs получает слоты пачкой
func (r *PgSlotRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Slot, error) {
	result := make(map[uuid.UUID]*model.Slot, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	slots, err := r.list(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = ANY($1::uuid[])`, keys)
	if err != nil {
		return nil, fmt.Errorf("get slots by ids: %w", err)
	}
	for _, slot := range slots {
		result[slot.ID] = slot
	}
	return result, nil
}

// ListByOwner получает все слоты пользователя по возрастанию времени начала
func (r *PgSlotRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE owner_id = $1
		ORDER BY start_time, id
	`

	slots, err := r.list(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get slots by owner: %w", err)
	}
	return slots, nil
}

// ListSwappable получает слоты других пользователей, выставленные на обмен
func (r *PgSlotRepository) ListSwappable(ctx context.Context, excludeOwnerID int64) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE status = 'SWAPPABLE'
		  AND owner_id <> $1
		ORDER BY start_time, id
	`

	slots, err := r.list(ctx, query, excludeOwnerID)
	if err != nil {
		return nil, fmt.Errorf("get swappable slots: %w", err)
	}
	return slots, nil
}

func (r *PgSlotRepository) list(ctx context.Context, query string, args ...any) ([]*model.Slot, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// Update сохраняет изменяемые поля слота, включая владельца и статус
func (r *PgSlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET owner_id = $1, title = $2, start_time = $3, end_time = $4, status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.OwnerID,
		slot.Title,
		slot.StartTime,
		slot.EndTime,
		slot.Status,
		slot.ID,
	).Scan(&slot.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("slot not found")
		}
		return fmt.Errorf("update slot: %w", err)
	}

	return nil
}

// Delete удаляет слот
func (r *PgSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}
