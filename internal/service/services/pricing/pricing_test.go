package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/corray333/backend-labs/coffee/internal/service/services/configsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings map[string]string

func (s settings) Resolve(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

type prices map[int64]decimal.Decimal

func (p prices) PriceOf(_ context.Context, id int64) (decimal.Decimal, error) {
	price, ok := p[id]
	if !ok {
		return decimal.Zero, serviceerr.ErrCoffeeTypeNotFound
	}
	return price, nil
}

const (
	espresso int64 = 1
	latte    int64 = 2
)

var catalog = prices{
	espresso: decimal.NewFromInt(3),
	latte:    decimal.NewFromInt(7),
}

func items(pairs ...int64) []orderitem.OrderItem {
	var result []orderitem.OrderItem
	for i := 0; i < len(pairs); i += 2 {
		result = append(result, orderitem.OrderItem{CoffeeTypeID: pairs[i], Quantity: int(pairs[i+1])})
	}
	return result
}

func TestComputeCost_DefaultRules(t *testing.T) {
	engine := pricing.NewEngine(settings(configsvc.Defaults()), catalog)

	c, err := engine.ComputeCost(context.Background(), items(espresso, 4, latte, 5))
	require.NoError(t, err)

	assert.True(t, c.CoffeeTotalCost.Equal(decimal.NewFromInt(40)), "coffee %s", c.CoffeeTotalCost)
	assert.True(t, c.DeliveryCost.IsZero(), "delivery %s", c.DeliveryCost)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(40)))
}

func TestComputeCost_HighThresholdRareFreeCup(t *testing.T) {
	engine := pricing.NewEngine(settings{"n": "30", "x": "1000", "m": "2"}, catalog)

	c, err := engine.ComputeCost(context.Background(), items(espresso, 4, latte, 5))
	require.NoError(t, err)

	assert.True(t, c.CoffeeTotalCost.Equal(decimal.NewFromInt(47)), "coffee %s", c.CoffeeTotalCost)
	assert.True(t, c.DeliveryCost.Equal(decimal.NewFromInt(2)), "delivery %s", c.DeliveryCost)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(49)))
}

func TestComputeCost_EveryNthCupFree(t *testing.T) {
	engine := pricing.NewEngine(settings(configsvc.Defaults()), catalog)

	for q := 0; q <= 23; q++ {
		c, err := engine.ComputeCost(context.Background(), items(espresso, int64(q)))
		require.NoError(t, err)

		want := decimal.NewFromInt(3).Mul(decimal.NewFromInt(int64(q - q/5)))
		assert.True(t, c.CoffeeTotalCost.Equal(want), "q=%d: got %s, want %s", q, c.CoffeeTotalCost, want)
	}
}

func TestComputeCost_CupCounterSpansCoffeeTypes(t *testing.T) {
	engine := pricing.NewEngine(settings{"n": "2", "x": "1000", "m": "0"}, catalog)

	// cups: espresso(1) latte(2, free) latte(3) espresso(4, free)
	c, err := engine.ComputeCost(context.Background(), items(espresso, 1, latte, 2, espresso, 1))
	require.NoError(t, err)

	assert.True(t, c.CoffeeTotalCost.Equal(decimal.NewFromInt(10)), "coffee %s", c.CoffeeTotalCost)
}

func TestComputeCost_DeliveryThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name     string
		x        string
		delivery int64
	}{
		{name: "coffee equals threshold", x: "12", delivery: 2},
		{name: "coffee below threshold", x: "12.01", delivery: 2},
		{name: "coffee above threshold", x: "11.99", delivery: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := pricing.NewEngine(settings{"n": "5", "x": tt.x, "m": "2"}, catalog)

			c, err := engine.ComputeCost(context.Background(), items(espresso, 4))
			require.NoError(t, err)
			assert.True(t, c.DeliveryCost.Equal(decimal.NewFromInt(tt.delivery)), "delivery %s", c.DeliveryCost)
		})
	}
}

func TestComputeCost_ZeroCupsPayDelivery(t *testing.T) {
	engine := pricing.NewEngine(settings(configsvc.Defaults()), catalog)

	c, err := engine.ComputeCost(context.Background(), items(espresso, 0))
	require.NoError(t, err)

	assert.True(t, c.CoffeeTotalCost.IsZero())
	assert.True(t, c.DeliveryCost.Equal(decimal.NewFromInt(2)))

	engine = pricing.NewEngine(settings{"n": "5", "x": "-1", "m": "2"}, catalog)

	c, err = engine.ComputeCost(context.Background(), items(espresso, 0))
	require.NoError(t, err)
	assert.True(t, c.DeliveryCost.IsZero())
}

func TestComputeCost_UnknownCoffeeType(t *testing.T) {
	engine := pricing.NewEngine(settings(configsvc.Defaults()), catalog)

	_, err := engine.ComputeCost(context.Background(), items(espresso, 1, 99, 1))
	assert.ErrorIs(t, err, serviceerr.ErrCoffeeTypeNotFound)
}

func TestComputeCost_MissingSetting(t *testing.T) {
	for _, key := range []string{"n", "x", "m"} {
		t.Run(key, func(t *testing.T) {
			s := settings(configsvc.Defaults())
			delete(s, key)

			_, err := pricing.NewEngine(s, catalog).ComputeCost(context.Background(), items(espresso, 1))
			assert.ErrorIs(t, err, serviceerr.ErrConfigurationMissing)
		})
	}
}

func TestComputeCost_UnparsableSetting(t *testing.T) {
	tests := map[string]settings{
		"n": {"n": "five", "x": "10", "m": "2"},
		"x": {"n": "5", "x": "ten", "m": "2"},
		"m": {"n": "5", "x": "10", "m": "two"},
	}

	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.NewEngine(s, catalog).ComputeCost(context.Background(), items(espresso, 1))
			require.Error(t, err)
			assert.False(t, errors.Is(err, serviceerr.ErrConfigurationMissing))
		})
	}
}

type failingSettings struct{}

func (failingSettings) Resolve(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection reset")
}

func TestComputeCost_SettingsStoreError(t *testing.T) {
	_, err := pricing.NewEngine(failingSettings{}, catalog).ComputeCost(context.Background(), items(espresso, 1))
	assert.EqualError(t, err, "connection reset")
}
