package catalogsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/coffee/internal/dal/memory"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/corray333/backend-labs/coffee/internal/service/services/catalogsvc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoffeeTypeService(t *testing.T) {
	store := memory.NewStore()
	svc := catalogsvc.MustNewCoffeeTypeService(catalogsvc.WithUnitOfWork(store))
	ctx := context.Background()

	espresso, err := svc.Add(ctx, &coffeetype.CoffeeType{TypeName: "Espresso", Price: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.NotZero(t, espresso.ID)
	assert.Equal(t, coffeetype.Enabled, espresso.Disabled)

	mocha, err := svc.Add(ctx, &coffeetype.CoffeeType{
		TypeName: "Mocha",
		Price:    decimal.NewFromInt(4),
		Disabled: coffeetype.Disabled,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enabled, err := svc.ListByDisabled(ctx, coffeetype.Enabled)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, espresso.ID, enabled[0].ID)

	mocha.Disabled = coffeetype.Enabled
	mocha.Price = decimal.NewFromInt(5)
	updated, err := svc.Update(ctx, mocha)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(5)))

	enabled, err = svc.ListByDisabled(ctx, coffeetype.Enabled)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	deleted, err := svc.Delete(ctx, espresso.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	got, err := svc.Get(ctx, espresso.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCoffeeTypeService_NilAndMissing(t *testing.T) {
	svc := catalogsvc.MustNewCoffeeTypeService(catalogsvc.WithUnitOfWork(memory.NewStore()))
	ctx := context.Background()

	added, err := svc.Add(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, added)

	updated, err := svc.Update(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, updated)

	updated, err = svc.Update(ctx, &coffeetype.CoffeeType{ID: 77, TypeName: "Ghost"})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := svc.Delete(ctx, 77)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestAccessor_PriceOf(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	latte, err := store.Repositories().CoffeeTypeRepository().Save(ctx, &coffeetype.CoffeeType{
		TypeName: "Latte",
		Price:    decimal.RequireFromString("3.75"),
	})
	require.NoError(t, err)

	accessor := catalogsvc.NewAccessor(store.Repositories().CoffeeTypeRepository())

	price, err := accessor.PriceOf(ctx, latte.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("3.75")))

	_, err = accessor.PriceOf(ctx, latte.ID+1)
	assert.ErrorIs(t, err, serviceerr.ErrCoffeeTypeNotFound)
}

type brokenCatalog struct{}

func (brokenCatalog) Get(context.Context, int64) (*coffeetype.CoffeeType, error) {
	return nil, errors.New("timeout")
}

func TestAccessor_StoreError(t *testing.T) {
	_, err := catalogsvc.NewAccessor(brokenCatalog{}).PriceOf(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, serviceerr.ErrCoffeeTypeNotFound))
	assert.Contains(t, err.Error(), "timeout")
}
