package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/apperr"
	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository"
	"github.com/google/uuid"
)

// SwapService ведёт заявки на обмен слотами: PENDING -> ACCEPTED | REJECTED.
//
// Взаимное исключение держится на статусе слота: пока заявка PENDING, оба её
// слота находятся в SWAP_PENDING и не проходят проверку IsSwappable ни в одном
// другом предложении. Проверка и запись выполняются в одной транзакции.
type SwapService struct {
	repos *repository.Repositories
	tx    repository.TxManager
	now   func() time.Time
}

func NewSwapService(repos *repository.Repositories, tx repository.TxManager) *SwapService {
	return &SwapService{
		repos: repos,
		tx:    tx,
		now:   time.Now,
	}
}

// ProposeSwap создаёт заявку: requester предлагает свой слот offeredSlotID
// в обмен на чужой requestedSlotID. Оба слота блокируются до ответа.
func (s *SwapService) ProposeSwap(ctx context.Context, requesterID int64, offeredSlotID, requestedSlotID uuid.UUID) (*model.SwapRequest, error) {
	if offeredSlotID == requestedSlotID {
		return nil, apperr.Validation("cannot swap a slot with itself")
	}

	var req *model.SwapRequest

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		slots, err := lockSlots(ctx, repos, offeredSlotID, requestedSlotID)
		if err != nil {
			return err
		}

		offered, requested := slots[offeredSlotID], slots[requestedSlotID]
		if offered == nil {
			return apperr.NotFound("your slot not found")
		}
		if requested == nil {
			return apperr.NotFound("requested slot not found")
		}

		if offered.OwnerID != requesterID {
			return apperr.Forbidden("you do not own the slot you are offering")
		}

		if requested.OwnerID == requesterID {
			return apperr.Validation("cannot swap with your own slot")
		}

		if !offered.IsSwappable() {
			return apperr.Conflict("your slot must be marked as SWAPPABLE to request a swap")
		}
		if !requested.IsSwappable() {
			return apperr.Conflict("the requested slot is no longer available for swapping")
		}

		offered.Status = model.SlotStatusSwapPending
		requested.Status = model.SlotStatusSwapPending
		for _, slot := range []*model.Slot{offered, requested} {
			if err := repos.Slots.Update(ctx, slot); err != nil {
				return err
			}
		}

		req = &model.SwapRequest{
			ID:              uuid.New(),
			RequesterID:     requesterID,
			OwnerID:         requested.OwnerID,
			OfferedSlotID:   offeredSlotID,
			RequestedSlotID: requestedSlotID,
			Status:          model.SwapRequestStatusPending,
		}
		if err := repos.SwapRequests.Create(ctx, req); err != nil {
			return err
		}

		req.OfferedSlot = offered
		req.RequestedSlot = requested
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("propose swap: %w", err)
	}

	// Заявка уже сохранена: без сторон останутся только уведомления
	_ = s.attachUsers(ctx, []*model.SwapRequest{req})

	return req, nil
}

// RespondToSwap отвечает на заявку. Ответить может только владелец
// запрошенного слота и только один раз.
func (s *SwapService) RespondToSwap(ctx context.Context, requestID uuid.UUID, responderID int64, accept bool) (*model.SwapRequest, error) {
	var req *model.SwapRequest

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		var err error
		req, err = repos.SwapRequests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if req == nil {
			return apperr.NotFound("swap request not found")
		}

		if req.OwnerID != responderID {
			return apperr.Forbidden("you are not authorized to respond to this swap request")
		}

		if !req.IsPending() {
			return apperr.Conflict("swap request has already been %s", strings.ToLower(string(req.Status)))
		}

		slots, err := lockSlots(ctx, repos, req.OfferedSlotID, req.RequestedSlotID)
		if err != nil {
			return err
		}

		offered, requested := slots[req.OfferedSlotID], slots[req.RequestedSlotID]
		if err := checkLockedBy(req, offered, requested); err != nil {
			return err
		}

		status := model.SwapRequestStatusRejected
		if accept {
			status = model.SwapRequestStatusAccepted
			offered.OwnerID, requested.OwnerID = req.OwnerID, req.RequesterID
			offered.Status = model.SlotStatusBusy
			requested.Status = model.SlotStatusBusy
		} else {
			offered.Status = model.SlotStatusSwappable
			requested.Status = model.SlotStatusSwappable
		}

		for _, slot := range []*model.Slot{offered, requested} {
			if err := repos.Slots.Update(ctx, slot); err != nil {
				return err
			}
		}

		respondedAt := s.now()
		if err := repos.SwapRequests.UpdateStatus(ctx, req.ID, status, respondedAt); err != nil {
			return err
		}

		req.Status = status
		req.RespondedAt = &respondedAt
		req.OfferedSlot = offered
		req.RequestedSlot = requested
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("respond to swap: %w", err)
	}

	// Заявка уже сохранена: без сторон останутся только уведомления
	_ = s.attachUsers(ctx, []*model.SwapRequest{req})

	return req, nil
}

// GetRequest получает заявку для одной из её сторон
func (s *SwapService) GetRequest(ctx context.Context, requestID uuid.UUID, callerID int64) (*model.SwapRequest, error) {
	req, err := s.repos.SwapRequests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get swap request: %w", err)
	}

	if req == nil {
		return nil, apperr.NotFound("swap request not found")
	}

	if !req.IsParty(callerID) {
		return nil, apperr.Forbidden("swap request belongs to other users")
	}

	if err := s.hydrate(ctx, []*model.SwapRequest{req}); err != nil {
		return nil, err
	}

	return req, nil
}

// ListIncoming получает заявки на слоты пользователя, новые первыми
func (s *SwapService) ListIncoming(ctx context.Context, ownerID int64) ([]*model.SwapRequest, error) {
	reqs, err := s.repos.SwapRequests.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, reqs); err != nil {
		return nil, err
	}

	return reqs, nil
}

// ListOutgoing получает заявки, созданные пользователем, новые первыми
func (s *SwapService) ListOutgoing(ctx context.Context, requesterID int64) ([]*model.SwapRequest, error) {
	reqs, err := s.repos.SwapRequests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, reqs); err != nil {
		return nil, err
	}

	return reqs, nil
}

// ListStalePending получает заявки, которые ждут ответа дольше olderThan.
// Заявки не истекают, список нужен только для напоминаний.
func (s *SwapService) ListStalePending(ctx context.Context, olderThan time.Duration) ([]*model.SwapRequest, error) {
	reqs, err := s.repos.SwapRequests.ListPendingCreatedBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, reqs); err != nil {
		return nil, err
	}

	return reqs, nil
}

// hydrate заполняет снимки слотов и пользователей
func (s *SwapService) hydrate(ctx context.Context, reqs []*model.SwapRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	slotIDs := make([]uuid.UUID, 0, len(reqs)*2)
	for _, req := range reqs {
		slotIDs = append(slotIDs, req.SlotIDs()...)
	}

	slots, err := s.repos.Slots.GetByIDs(ctx, slotIDs)
	if err != nil {
		return fmt.Errorf("get swap slots: %w", err)
	}

	for _, req := range reqs {
		req.OfferedSlot = slots[req.OfferedSlotID]
		req.RequestedSlot = slots[req.RequestedSlotID]
	}

	return s.attachUsers(ctx, reqs)
}

func (s *SwapService) attachUsers(ctx context.Context, reqs []*model.SwapRequest) error {
	userIDs := make([]int64, 0, len(reqs)*2)
	for _, req := range reqs {
		userIDs = append(userIDs, req.RequesterID, req.OwnerID)
	}

	users, err := s.repos.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("get swap parties: %w", err)
	}

	for _, req := range reqs {
		req.Requester = users[req.RequesterID]
		req.Owner = users[req.OwnerID]
	}

	return nil
}

// lockSlots блокирует слоты в порядке возрастания ID, чтобы встречные
// транзакции не взаимоблокировались
func lockSlots(ctx context.Context, repos *repository.Repositories, ids ...uuid.UUID) (map[uuid.UUID]*model.Slot, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	slots := make(map[uuid.UUID]*model.Slot, len(ordered))
	for _, id := range ordered {
		slot, err := repos.Slots.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		slots[id] = slot
	}

	return slots, nil
}

// checkLockedBy проверяет что оба слота всё ещё заблокированы этой заявкой
// и принадлежат её сторонам
func checkLockedBy(req *model.SwapRequest, offered, requested *model.Slot) error {
	if offered == nil || requested == nil {
		return apperr.Conflict("swap request references a missing slot")
	}

	if !offered.IsLocked() || !requested.IsLocked() {
		return apperr.Conflict("swap request slots are no longer locked for this request")
	}

	if offered.OwnerID != req.RequesterID || requested.OwnerID != req.OwnerID {
		return apperr.Conflict("swap request slots changed owners")
	}

	return nil
}
