// Package pricing computes what an order costs under the promotional rules:
// every n-th cup of the order is free and delivery is waived once the coffee
// total is strictly above x, otherwise it costs m.
package pricing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/corray333/backend-labs/coffee/internal/service/models/cost"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/corray333/backend-labs/coffee/internal/service/services/configsvc"
	"github.com/shopspring/decimal"
)

type resolver interface {
	Resolve(ctx context.Context, key string) (string, bool, error)
}

type catalog interface {
	PriceOf(ctx context.Context, coffeeTypeID int64) (decimal.Decimal, error)
}

// Engine prices order items.
type Engine struct {
	settings resolver
	catalog  catalog
}

// NewEngine creates an engine reading settings and prices from the given sources.
func NewEngine(settings resolver, catalog catalog) *Engine {
	return &Engine{
		settings: settings,
		catalog:  catalog,
	}
}

type rules struct {
	freeCup          int
	freeDeliveryOver decimal.Decimal
	deliveryPrice    decimal.Decimal
}

// ComputeCost prices items in list order. Cups are counted across the whole
// order, not per coffee type.
func (e *Engine) ComputeCost(ctx context.Context, items []orderitem.OrderItem) (cost.Cost, error) {
	r, err := e.loadRules(ctx)
	if err != nil {
		return cost.Cost{}, err
	}

	cups := 0
	coffee := decimal.Zero
	for _, item := range items {
		price, err := e.catalog.PriceOf(ctx, item.CoffeeTypeID)
		if err != nil {
			return cost.Cost{}, err
		}

		for range item.Quantity {
			cups++
			if cups%r.freeCup != 0 {
				coffee = coffee.Add(price)
			}
		}
	}

	delivery := r.deliveryPrice
	if coffee.GreaterThan(r.freeDeliveryOver) {
		delivery = decimal.Zero
	}

	return cost.Cost{
		CoffeeTotalCost: coffee,
		DeliveryCost:    delivery,
	}, nil
}

func (e *Engine) loadRules(ctx context.Context) (rules, error) {
	n, err := e.setting(ctx, configsvc.KeyFreeCup)
	if err != nil {
		return rules{}, err
	}
	freeCup, err := strconv.Atoi(n)
	if err != nil {
		return rules{}, fmt.Errorf("failed to parse configuration %q=%q: %w", configsvc.KeyFreeCup, n, err)
	}
	if freeCup <= 0 {
		return rules{}, fmt.Errorf("configuration %q must be positive, got %d", configsvc.KeyFreeCup, freeCup)
	}

	x, err := e.decimalSetting(ctx, configsvc.KeyFreeDeliveryOver)
	if err != nil {
		return rules{}, err
	}

	m, err := e.decimalSetting(ctx, configsvc.KeyDeliveryPrice)
	if err != nil {
		return rules{}, err
	}

	return rules{
		freeCup:          freeCup,
		freeDeliveryOver: x,
		deliveryPrice:    m,
	}, nil
}

func (e *Engine) setting(ctx context.Context, key string) (string, error) {
	value, ok, err := e.settings.Resolve(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, serviceerr.ErrConfigurationMissing)
	}

	return value, nil
}

func (e *Engine) decimalSetting(ctx context.Context, key string) (decimal.Decimal, error) {
	value, err := e.setting(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse configuration %q=%q: %w", key, value, err)
	}

	return d, nil
}
