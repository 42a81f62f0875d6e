// Package memory keeps every table in process memory. It backs local runs
// without Postgres and the service tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/icoffeetyperepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iconfigurationrepo"
	iorder "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderrepo"
	iorderitem "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/service/models/outbox"
)

var (
	// ErrForeignKey is returned when a write would leave a dangling reference.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrDuplicateKey is returned when a write would duplicate a unique key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// view is one set of tables, live or seen from a unit of work.
type view struct {
	orders         table[int64, order.Order]
	items          table[int64, orderitem.OrderItem]
	coffeeTypes    table[int64, coffeetype.CoffeeType]
	configurations table[string, string]
	outbox         table[int64, outbox.OutboxMessage]
}

type state struct {
	orders         liveTable[int64, order.Order]
	items          liveTable[int64, orderitem.OrderItem]
	coffeeTypes    liveTable[int64, coffeetype.CoffeeType]
	configurations liveTable[string, string]
	outbox         liveTable[int64, outbox.OutboxMessage]
}

func newState() state {
	return state{
		orders:         make(liveTable[int64, order.Order]),
		items:          make(liveTable[int64, orderitem.OrderItem]),
		coffeeTypes:    make(liveTable[int64, coffeetype.CoffeeType]),
		configurations: make(liveTable[string, string]),
		outbox:         make(liveTable[int64, outbox.OutboxMessage]),
	}
}

func (s state) view() view {
	return view{
		orders:         s.orders,
		items:          s.items,
		coffeeTypes:    s.coffeeTypes,
		configurations: s.configurations,
		outbox:         s.outbox,
	}
}

// pending holds the uncommitted writes of one unit of work.
type pending struct {
	mu sync.Mutex

	orders         *overlay[int64, order.Order]
	items          *overlay[int64, orderitem.OrderItem]
	coffeeTypes    *overlay[int64, coffeetype.CoffeeType]
	configurations *overlay[string, string]
	outbox         *overlay[int64, outbox.OutboxMessage]
}

func newPending(s state) *pending {
	return &pending{
		orders:         newOverlay(s.orders),
		items:          newOverlay(s.items),
		coffeeTypes:    newOverlay(s.coffeeTypes),
		configurations: newOverlay(s.configurations),
		outbox:         newOverlay(s.outbox),
	}
}

func (p *pending) view() view {
	return view{
		orders:         p.orders,
		items:          p.items,
		coffeeTypes:    p.coffeeTypes,
		configurations: p.configurations,
		outbox:         p.outbox,
	}
}

// commit must be called with the store write lock held.
func (p *pending) commit() {
	p.orders.commit()
	p.items.commit()
	p.coffeeTypes.commit()
	p.configurations.commit()
	p.outbox.commit()
}

// Store is an in-memory implementation of the unit of work.
//
// Writes made inside Do stay private to the unit of work until it commits,
// so readers never observe them half done. Writes made through Repositories
// apply immediately and survive a concurrent rollback.
type Store struct {
	// txMu serializes units of work.
	txMu sync.Mutex
	// mu guards the live tables.
	mu   sync.RWMutex
	data state

	// Ids are handed out even when the unit of work rolls back, like a
	// Postgres sequence.
	nextOrderID      atomic.Int64
	nextItemID       atomic.Int64
	nextCoffeeTypeID atomic.Int64
	nextOutboxID     atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		data: newState(),
	}
}

// Repositories returns repositories reading and writing the live tables.
func (s *Store) Repositories() uow.Repositories {
	return &repositories{session: &session{store: s}}
}

// Do runs fn atomically. Changes made by fn are published on success and
// discarded when it returns an error or panics.
func (s *Store) Do(ctx context.Context, fn uow.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := newPending(s.data)
	if err := fn(ctx, &repositories{session: &session{store: s, tx: tx}}); err != nil {
		return err
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()

	s.mu.Lock()
	tx.commit()
	s.mu.Unlock()

	return nil
}

// session routes repository calls either to the live tables or to the
// pending writes of a unit of work.
type session struct {
	store *Store
	tx    *pending
}

func (s *session) read(fn func(v view)) {
	if s.tx != nil {
		s.tx.mu.Lock()
		defer s.tx.mu.Unlock()
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	fn(s.view())
}

func (s *session) write(fn func(v view) error) error {
	if s.tx != nil {
		// pending writes never touch the live tables, a read lock is enough
		s.tx.mu.Lock()
		defer s.tx.mu.Unlock()

		s.store.mu.RLock()
		defer s.store.mu.RUnlock()

		return fn(s.tx.view())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return fn(s.store.data.view())
}

func (s *session) view() view {
	if s.tx != nil {
		return s.tx.view()
	}

	return s.store.data.view()
}

type repositories struct {
	session *session
}

func (r *repositories) OrderRepository() iorder.IOrderRepository {
	return &OrderRepository{session: r.session}
}

func (r *repositories) OrderItemRepository() iorderitem.IOrderItemRepository {
	return &OrderItemRepository{session: r.session}
}

func (r *repositories) CoffeeTypeRepository() icoffeetyperepo.ICoffeeTypeRepository {
	return &CoffeeTypeRepository{session: r.session}
}

func (r *repositories) ConfigurationRepository() iconfigurationrepo.IConfigurationRepository {
	return &ConfigurationRepository{session: r.session}
}

func (r *repositories) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &OutboxRepository{session: r.session}
}
