package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository/base"
	"github.com/google/uuid"
)

// Все Get-методы возвращают (nil, nil), если запись не найдена.

// SlotRepository хранилище слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	// GetByIDForUpdate читает слот с блокировкой строки до конца транзакции
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Slot, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error)
	ListSwappable(ctx context.Context, excludeOwnerID int64) ([]*model.Slot, error)
	Update(ctx context.Context, slot *model.Slot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SwapRequestRepository хранилище заявок на обмен
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.SwapRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*model.SwapRequest, error)
	ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]*model.SwapRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SwapRequestStatus, respondedAt time.Time) error
}

// UserRepository хранилище пользователей
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error)
}

// Repositories агрегирует все репозитории, привязанные к одному соединению или транзакции
type Repositories struct {
	Users        UserRepository
	Slots        SlotRepository
	SwapRequests SwapRequestRepository
}

// TxManager выполняет fn в одной транзакции. Репозитории, переданные в fn,
// видят только эту транзакцию. Ошибка из fn откатывает все изменения.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

// NewRepositories создаёт PostgreSQL-репозитории поверх пула или транзакции
func NewRepositories(q base.Querier) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(q),
		Slots:        NewSlotRepository(q),
		SwapRequests: NewSwapRequestRepository(q),
	}
}
