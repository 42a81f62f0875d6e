package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const ordersTable = "coffee_orders"

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64     `db:"id"`
	CreatedAt       time.Time `db:"created_at"`
	CustomerName    string    `db:"customer_name"`
	DeliveryAddress string    `db:"delivery_address"`
	Cost            string    `db:"cost"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cost, err := decimal.NewFromString(o.Cost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order cost %q: %w", o.Cost, err)
	}

	return &order.Order{
		ID:              o.Id,
		CreatedAt:       o.CreatedAt,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		Cost:            cost,
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:              o.ID,
		CreatedAt:       o.CreatedAt,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		Cost:            o.Cost.String(),
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save inserts the order header and returns it with the generated ID.
func (r *PostgresOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	if o == nil {
		return nil, nil
	}

	dal := OrderDalFromModel(o)

	sql, args, err := r.sb.
		Insert(ordersTable).
		Columns("created_at", "customer_name", "delivery_address", "cost").
		Values(dal.CreatedAt, dal.CustomerName, dal.DeliveryAddress, dal.Cost).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	saved := *o
	saved.ID = dal.Id

	return &saved, nil
}

// Get returns the order with the given ID or nil if it does not exist.
func (r *PostgresOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Select("id", "created_at", "customer_name", "delivery_address", "cost::text").
		From(ordersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.CreatedAt,
		&dal.CustomerName,
		&dal.DeliveryAddress,
		&dal.Cost,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return dal.ToModel()
}

// Update overwrites the mutable order columns.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return nil
	}

	dal := OrderDalFromModel(o)

	sql, args, err := r.sb.
		Update(ordersTable).
		Set("customer_name", dal.CustomerName).
		Set("delivery_address", dal.DeliveryAddress).
		Set("cost", dal.Cost).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update order %d: %w", dal.Id, err)
	}

	return nil
}

// Delete removes the order header and returns the number of deleted rows.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.
		Delete(ordersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}
