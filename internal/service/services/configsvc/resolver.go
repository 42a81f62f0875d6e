package configsvc

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
)

// Setting keys understood by the pricing rules.
const (
	KeyFreeCup          = "n"
	KeyFreeDeliveryOver = "x"
	KeyDeliveryPrice    = "m"
)

var defaults = map[string]string{
	KeyFreeCup:          "5",
	KeyFreeDeliveryOver: "10",
	KeyDeliveryPrice:    "2",
}

// Defaults returns a copy of the built-in setting values.
func Defaults() map[string]string {
	return maps.Clone(defaults)
}

type configurationGetter interface {
	Get(ctx context.Context, id string) (*configuration.Configuration, error)
}

// Resolver merges stored settings over the built-in defaults.
type Resolver struct {
	store configurationGetter
}

// NewResolver creates a resolver reading stored settings from store.
func NewResolver(store configurationGetter) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the effective value of key. ok is false when the key is
// neither stored nor has a default. A free-cup interval that is not positive
// falls back to its default.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	stored, err := r.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to get configuration %q: %w", key, err)
	}

	var (
		value string
		ok    bool
	)
	if stored != nil {
		value, ok = stored.Value, true
	} else {
		value, ok = defaults[key]
	}

	if ok && key == KeyFreeCup {
		if n, err := strconv.Atoi(value); err == nil && n <= 0 {
			value = defaults[KeyFreeCup]
		}
	}

	return value, ok, nil
}
