package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository/base"
	"github.com/google/uuid"
)

const swapRequestColumns = `id, requester_id, owner_id, offered_slot_id, requested_slot_id, status, created_at, updated_at, responded_at`

type PgSwapRequestRepository struct {
	*base.Repository
}

func NewSwapRequestRepository(q base.Querier) *PgSwapRequestRepository {
	return &PgSwapRequestRepository{Repository: base.NewRepository(q)}
}

func scanSwapRequest(row rowScanner) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := row.Scan(
		&req.ID,
		&req.RequesterID,
		&req.OwnerID,
		&req.OfferedSlotID,
		&req.RequestedSlotID,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.RespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create создаёт новую заявку на обмен
func (r *PgSwapRequestRepository) Create(ctx context.Context, req *model.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (id, requester_id, owner_id, offered_slot_id, requested_slot_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		req.ID,
		req.RequesterID,
		req.OwnerID,
		req.OfferedSlotID,
		req.RequestedSlotID,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create swap request: %w", err)
	}

	return nil
}

func (r *PgSwapRequestRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*model.SwapRequest, error) {
	req, err := scanSwapRequest(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get swap request by id: %w", err)
	}
	return req, nil
}

// GetByID получает заявку по ID
func (r *PgSwapRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	return r.getOne(ctx, `SELECT `+swapRequestColumns+` FROM swap_requests WHERE id = $1`, id)
}

// GetByIDForUpdate получает заявку по ID и блокирует строку до конца транзакции
func (r *PgSwapRequestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	return r.getOne(ctx, `SELECT `+swapRequestColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id)
}

// ListByOwner получает входящие заявки, новые первыми
func (r *PgSwapRequestRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.SwapRequest, error) {
	query := `
		SELECT ` + swapRequestColumns + `
		FROM swap_requests
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`

	reqs, err := r.list(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get swap requests by owner: %w", err)
	}
	return reqs, nil
}

// ListByRequester получает исходящие заявки, новые первыми
func (r *PgSwapRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*model.SwapRequest, error) {
	query := `
		SELECT ` + swapRequestColumns + `
		FROM swap_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC, id
	`

	reqs, err := r.list(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("get swap requests by requester: %w", err)
	}
	return reqs, nil
}

// ListPendingCreatedBefore получает заявки, которые ждут ответа дольше порога
func (r *PgSwapRequestRepository) ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]*model.SwapRequest, error) {
	query := `
		SELECT ` + swapRequestColumns + `
		FROM swap_requests
		WHERE status = 'PENDING'
		  AND created_at < $1
		ORDER BY created_at ASC
	`

	reqs, err := r.list(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("get stale pending swap requests: %w", err)
	}
	return reqs, nil
}

func (r *PgSwapRequestRepository) list(ctx context.Context, query string, args ...any) ([]*model.SwapRequest, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*model.SwapRequest
	for rows.Next() {
		req, err := scanSwapRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swap request: %w", err)
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

// UpdateStatus переводит заявку в финальный статус. Обновляется только заявка
// в статусе PENDING, повторный ответ не затрагивает строк.
func (r *PgSwapRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SwapRequestStatus, respondedAt time.Time) error {
	query := `
		UPDATE swap_requests
		SET status = $1, responded_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`

	affected, err := r.ExecAffected(ctx, query, status, respondedAt, id)
	if err != nil {
		return fmt.Errorf("update swap request status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("swap request not found or already resolved")
	}

	return nil
}
