// Package memory реализует репозитории в памяти процесса. Транзакция держит
// эксклюзивную блокировку всего хранилища и работает с копией состояния,
// которая публикуется только при успешном завершении.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/Freeeeeet/slotswap_bot/internal/model"
	"github.com/Freeeeeet/slotswap_bot/internal/repository"
	"github.com/google/uuid"
)

type state struct {
	users      map[int64]*model.User
	slots      map[uuid.UUID]*model.Slot
	requests   map[uuid.UUID]*model.SwapRequest
	nextUserID int64
}

func newState() *state {
	return &state{
		users:      make(map[int64]*model.User),
		slots:      make(map[uuid.UUID]*model.Slot),
		requests:   make(map[uuid.UUID]*model.SwapRequest),
		nextUserID: 1,
	}
}

// clone делает копию карт. Записи внутри не мутируются на месте,
// репозитории всегда кладут новые указатели, поэтому поверхностной копии достаточно.
func (s *state) clone() *state {
	return &state{
		users:      maps.Clone(s.users),
		slots:      maps.Clone(s.slots),
		requests:   maps.Clone(s.requests),
		nextUserID: s.nextUserID,
	}
}

// Store хранилище в памяти
type Store struct {
	mu    sync.RWMutex
	data  *state
	now   func() time.Time
	repos *repository.Repositories
}

// Option настраивает Store
type Option func(*Store)

// WithClock подменяет источник времени для created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		data: newState(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.repos = newRepositories(&conn{store: s})
	return s
}

// Repositories возвращает репозитории вне транзакции
func (s *Store) Repositories() *repository.Repositories {
	return s.repos
}

// WithinTx выполняет fn под эксклюзивной блокировкой хранилища
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(ctx, newRepositories(&conn{store: s, tx: tx})); err != nil {
		return err
	}

	s.data = tx
	return nil
}

// conn привязывает репозитории либо к общему состоянию, либо к копии внутри транзакции
type conn struct {
	store *Store
	tx    *state
}

func (c *conn) read(fn func(st *state)) {
	if c.tx != nil {
		fn(c.tx)
		return
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	fn(c.store.data)
}

func (c *conn) write(fn func(st *state)) {
	if c.tx != nil {
		fn(c.tx)
		return
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	fn(c.store.data)
}

func (c *conn) now() time.Time {
	return c.store.now()
}

func newRepositories(c *conn) *repository.Repositories {
	return &repository.Repositories{
		Users:        &userRepo{c: c},
		Slots:        &slotRepo{c: c},
		SwapRequests: &swapRequestRepo{c: c},
	}
}
