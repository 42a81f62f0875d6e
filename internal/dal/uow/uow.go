package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/icoffeetyperepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iconfigurationrepo"
	iorder "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderrepo"
	iorderitem "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	coffeetyperepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/coffeetype/postgres"
	configurationrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/configuration/postgres"
	orderrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
)

// Repositories gives access to every repository bound to the same connection or transaction.
type Repositories interface {
	OrderRepository() iorder.IOrderRepository
	OrderItemRepository() iorderitem.IOrderItemRepository
	CoffeeTypeRepository() icoffeetyperepo.ICoffeeTypeRepository
	ConfigurationRepository() iconfigurationrepo.IConfigurationRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, repos Repositories) error

type repositories struct {
	orderRepo         iorder.IOrderRepository
	orderItemRepo     iorderitem.IOrderItemRepository
	coffeeTypeRepo    icoffeetyperepo.ICoffeeTypeRepository
	configurationRepo iconfigurationrepo.IConfigurationRepository
	outboxRepo        ioutboxrepo.IOutboxRepository
}

func newRepositories(conn postgres.GenericConn) *repositories {
	return &repositories{
		orderRepo:         orderrepo.NewPostgresOrderRepository(conn),
		orderItemRepo:     orderitemrepo.NewPostgresOrderItemRepository(conn),
		coffeeTypeRepo:    coffeetyperepo.NewPostgresCoffeeTypeRepository(conn),
		configurationRepo: configurationrepo.NewPostgresConfigurationRepository(conn),
		outboxRepo:        outboxrepo.NewOutboxRepository(conn),
	}
}

func (r *repositories) OrderRepository() iorder.IOrderRepository {
	return r.orderRepo
}

func (r *repositories) OrderItemRepository() iorderitem.IOrderItemRepository {
	return r.orderItemRepo
}

func (r *repositories) CoffeeTypeRepository() icoffeetyperepo.ICoffeeTypeRepository {
	return r.coffeeTypeRepo
}

func (r *repositories) ConfigurationRepository() iconfigurationrepo.IConfigurationRepository {
	return r.configurationRepo
}

func (r *repositories) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return r.outboxRepo
}

// UnitOfWork runs groups of repository calls atomically on a Postgres connection pool.
type UnitOfWork struct {
	conn  postgres.TxConn
	repos *repositories
}

// NewUnitOfWork creates a unit of work over the given pool.
func NewUnitOfWork(conn postgres.TxConn) *UnitOfWork {
	return &UnitOfWork{
		conn:  conn,
		repos: newRepositories(conn),
	}
}

// Repositories returns repositories bound to the pool, outside of any transaction.
func (u *UnitOfWork) Repositories() Repositories {
	return u.repos
}

// Do runs fn inside one transaction. The transaction is committed when fn
// returns nil and rolled back when it returns an error or panics.
func (u *UnitOfWork) Do(ctx context.Context, fn TxFunc) (err error) {
	tx, err := u.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err = fn(ctx, newRepositories(tx)); err != nil {
		rollback(ctx, tx)

		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}
