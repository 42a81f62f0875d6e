package postgresrepo_test

import (
	"context"
	"regexp"
	"testing"

	postgresrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/orderitem/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO coffee_order_items (order_id,coffee_type_id,quantity) VALUES ($1,$2,$3) RETURNING id",
	)).
		WithArgs(int64(7), int64(2), 3).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))

	saved, err := postgresrepo.NewPostgresOrderItemRepository(mock).Save(context.Background(), &orderitem.OrderItem{
		OrderID:      7,
		CoffeeTypeID: 2,
		Quantity:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, &orderitem.OrderItem{ID: 21, OrderID: 7, CoffeeTypeID: 2, Quantity: 3}, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	columns := []string{"id", "order_id", "coffee_type_id", "quantity"}
	mock.ExpectQuery("SELECT (.+) FROM coffee_order_items WHERE order_id IN \\(\\$1\\) ORDER BY id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(21), int64(7), int64(2), 3).
			AddRow(int64(22), int64(7), int64(1), 1))

	items, err := postgresrepo.NewPostgresOrderItemRepository(mock).ListForOrder(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 22, items[1].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
