package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

const orderItemsTable = "coffee_order_items"

var orderItemColumns = []string{"id", "order_id", "coffee_type_id", "quantity"}

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id           int64 `db:"id"`
	OrderId      int64 `db:"order_id"`
	CoffeeTypeId int64 `db:"coffee_type_id"`
	Quantity     int   `db:"quantity"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ID:           oi.Id,
		OrderID:      oi.OrderId,
		CoffeeTypeID: oi.CoffeeTypeId,
		Quantity:     oi.Quantity,
	}
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		Id:           oi.ID,
		OrderId:      oi.OrderID,
		CoffeeTypeId: oi.CoffeeTypeID,
		Quantity:     oi.Quantity,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save inserts a single order item and returns it with the generated ID.
func (r *PostgresOrderItemRepository) Save(
	ctx context.Context,
	item *orderitem.OrderItem,
) (*orderitem.OrderItem, error) {
	if item == nil {
		return nil, nil
	}

	dal := OrderItemDalFromModel(item)

	sql, args, err := r.sb.
		Insert(orderItemsTable).
		Columns("order_id", "coffee_type_id", "quantity").
		Values(dal.OrderId, dal.CoffeeTypeId, dal.Quantity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id); err != nil {
		return nil, fmt.Errorf("failed to insert order item: %w", err)
	}

	saved := dal.ToModel()

	return &saved, nil
}

// Get returns the order item with the given ID or nil if it does not exist.
func (r *PostgresOrderItemRepository) Get(ctx context.Context, id int64) (*orderitem.OrderItem, error) {
	sql, args, err := r.sb.
		Select(orderItemColumns...).
		From(orderItemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderItemDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.CoffeeTypeId,
		&dal.Quantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order item %d: %w", id, err)
	}

	item := dal.ToModel()

	return &item, nil
}

// Update overwrites the order item row.
func (r *PostgresOrderItemRepository) Update(ctx context.Context, item *orderitem.OrderItem) error {
	if item == nil {
		return nil
	}

	dal := OrderItemDalFromModel(item)

	sql, args, err := r.sb.
		Update(orderItemsTable).
		Set("order_id", dal.OrderId).
		Set("coffee_type_id", dal.CoffeeTypeId).
		Set("quantity", dal.Quantity).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update order item %d: %w", dal.Id, err)
	}

	return nil
}

// Delete removes the order item and returns the number of deleted rows.
func (r *PostgresOrderItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.
		Delete(orderItemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order item %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

// ListForOrder returns the items of an order in insertion order.
func (r *PostgresOrderItemRepository) ListForOrder(
	ctx context.Context,
	orderID int64,
) ([]orderitem.OrderItem, error) {
	return r.Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{orderID}})
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	if filter == nil {
		filter = &orderitem.QueryOrderItemsModel{}
	}

	query := r.sb.
		Select(orderItemColumns...).
		From(orderItemsTable).
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.CoffeeTypeIds) > 0 {
		query = query.Where(sq.Eq{"coffee_type_id": filter.CoffeeTypeIds})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		var dal OrderItemDal

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.CoffeeTypeId,
			&dal.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
