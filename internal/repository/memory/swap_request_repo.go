package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/google/uuid"
)

type swapRequestRepo struct {
	c *conn
}

func (r *swapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	var err error
	r.c.write(func(st *state) {
		if _, exists := st.requests[req.ID]; exists {
			err = fmt.Errorf("create swap request: duplicate id %s", req.ID)
			return
		}
		now := r.c.now()
		req.CreatedAt = now
		req.UpdatedAt = now
		st.requests[req.ID] = req.Clone()
	})
	return err
}

func (r *swapRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	var req *model.SwapRequest
	r.c.read(func(st *state) {
		if found, ok := st.requests[id]; ok {
			req = found.Clone()
		}
	})
	return req, nil
}

func (r *swapRequestRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *swapRequestRepo) ListByOwner(_ context.Context, ownerID int64) ([]*model.SwapRequest, error) {
	return r.newestFirst(func(req *model.SwapRequest) bool {
		return req.OwnerID == ownerID
	}), nil
}

func (r *swapRequestRepo) ListByRequester(_ context.Context, requesterID int64) ([]*model.SwapRequest, error) {
	return r.newestFirst(func(req *model.SwapRequest) bool {
		return req.RequesterID == requesterID
	}), nil
}

func (r *swapRequestRepo) ListPendingCreatedBefore(_ context.Context, before time.Time) ([]*model.SwapRequest, error) {
	reqs := r.newestFirst(func(req *model.SwapRequest) bool {
		return req.IsPending() && req.CreatedAt.Before(before)
	})
	// Самые старые первыми, как в SQL-реализации
	for i, j := 0, len(reqs)-1; i < j; i, j = i+1, j-1 {
		reqs[i], reqs[j] = reqs[j], reqs[i]
	}
	return reqs, nil
}

func (r *swapRequestRepo) newestFirst(match func(req *model.SwapRequest) bool) []*model.SwapRequest {
	var reqs []*model.SwapRequest
	r.c.read(func(st *state) {
		for _, req := range st.requests {
			if match(req) {
				reqs = append(reqs, req.Clone())
			}
		}
	})

	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
		}
		return reqs[i].ID.String() < reqs[j].ID.String()
	})
	return reqs
}

func (r *swapRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.SwapRequestStatus, respondedAt time.Time) error {
	var err error
	r.c.write(func(st *state) {
		current, ok := st.requests[id]
		if !ok || !current.IsPending() {
			err = fmt.Errorf("swap request not found or already resolved")
			return
		}
		updated := current.Clone()
		updated.Status = status
		updated.RespondedAt = &respondedAt
		updated.UpdatedAt = r.c.now()
		st.requests[id] = updated
	})
	return err
}
