package catalogsvc

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/shopspring/decimal"
)

type coffeeTypeGetter interface {
	Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error)
}

// Accessor looks up unit prices in the coffee catalog.
type Accessor struct {
	store coffeeTypeGetter
}

// NewAccessor creates an accessor reading coffee types from store.
func NewAccessor(store coffeeTypeGetter) *Accessor {
	return &Accessor{store: store}
}

// PriceOf returns the unit price of the coffee type.
func (a *Accessor) PriceOf(ctx context.Context, coffeeTypeID int64) (decimal.Decimal, error) {
	ct, err := a.store.Get(ctx, coffeeTypeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get coffee type %d: %w", coffeeTypeID, err)
	}

	if ct == nil {
		return decimal.Zero, fmt.Errorf("coffee type %d: %w", coffeeTypeID, serviceerr.ErrCoffeeTypeNotFound)
	}

	return ct.Price, nil
}
