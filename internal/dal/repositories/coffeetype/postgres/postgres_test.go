package postgresrepo_test

import (
	"context"
	"regexp"
	"testing"

	postgresrepo "github.com/corray333/backend-labs/coffee/internal/dal/repositories/coffeetype/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "type_name", "price", "disabled"}

func TestSave_DefaultsToEnabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO coffee_types (type_name,price,disabled) VALUES ($1,$2,$3) RETURNING id",
	)).
		WithArgs("Espresso", "3", "N").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	saved, err := postgresrepo.NewPostgresCoffeeTypeRepository(mock).Save(context.Background(), &coffeetype.CoffeeType{
		TypeName: "Espresso",
		Price:    decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, saved.ID)
	assert.Equal(t, coffeetype.Enabled, saved.Disabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDisabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, type_name, price::text, disabled FROM coffee_types WHERE disabled = $1 ORDER BY id",
	)).
		WithArgs("Y").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(2), "Mocha", "4.20", "Y").
			AddRow(int64(5), "Raf", "5.00", "Y"))

	types, err := postgresrepo.NewPostgresCoffeeTypeRepository(mock).ListByDisabled(context.Background(), coffeetype.Disabled)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Mocha", types[0].TypeName)
	assert.True(t, types[0].Price.Equal(decimal.RequireFromString("4.2")))
	assert.Equal(t, coffeetype.Disabled, types[1].Disabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM coffee_types ORDER BY id").
		WillReturnRows(pgxmock.NewRows(columns))

	types, err := postgresrepo.NewPostgresCoffeeTypeRepository(mock).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_InvalidStoredFlag(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM coffee_types WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(int64(3), "Latte", "3.00", "?"))

	_, err = postgresrepo.NewPostgresCoffeeTypeRepository(mock).Get(context.Background(), 3)
	assert.ErrorIs(t, err, coffeetype.ErrInvalidDisabledFlag)
	assert.NoError(t, mock.ExpectationsWereMet())
}
