package memory

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/icoffeetyperepo"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
)

// CoffeeTypeRepository is an in-memory implementation of ICoffeeTypeRepository.
type CoffeeTypeRepository struct {
	session *session
}

var _ icoffeetyperepo.ICoffeeTypeRepository = (*CoffeeTypeRepository)(nil)

func (r *CoffeeTypeRepository) Save(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error) {
	if ct == nil {
		return nil, nil
	}

	saved := *ct
	if saved.Disabled == "" {
		saved.Disabled = coffeetype.Enabled
	}
	saved.ID = r.session.store.nextCoffeeTypeID.Add(1)

	err := r.session.write(func(v view) error {
		v.coffeeTypes.put(saved.ID, saved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *CoffeeTypeRepository) Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error) {
	var (
		ct coffeetype.CoffeeType
		ok bool
	)
	r.session.read(func(v view) {
		ct, ok = v.coffeeTypes.get(id)
	})
	if !ok {
		return nil, nil
	}

	return &ct, nil
}

func (r *CoffeeTypeRepository) Update(ctx context.Context, ct *coffeetype.CoffeeType) error {
	if ct == nil {
		return nil
	}

	return r.session.write(func(v view) error {
		if _, ok := v.coffeeTypes.get(ct.ID); !ok {
			return nil
		}

		updated := *ct
		if updated.Disabled == "" {
			updated.Disabled = coffeetype.Enabled
		}
		v.coffeeTypes.put(ct.ID, updated)
		return nil
	})
}

func (r *CoffeeTypeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.session.write(func(v view) error {
		if _, ok := v.coffeeTypes.get(id); !ok {
			return nil
		}

		for _, item := range v.items.all() {
			if item.CoffeeTypeID == id {
				return fmt.Errorf("coffee type %d is referenced by item %d: %w", id, item.ID, ErrForeignKey)
			}
		}

		if v.coffeeTypes.remove(id) {
			deleted = 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *CoffeeTypeRepository) List(ctx context.Context) ([]coffeetype.CoffeeType, error) {
	return r.filter(func(coffeetype.CoffeeType) bool { return true }), nil
}

func (r *CoffeeTypeRepository) ListByDisabled(
	ctx context.Context,
	flag coffeetype.DisabledFlag,
) ([]coffeetype.CoffeeType, error) {
	return r.filter(func(ct coffeetype.CoffeeType) bool { return ct.Disabled == flag }), nil
}

func (r *CoffeeTypeRepository) filter(keep func(coffeetype.CoffeeType) bool) []coffeetype.CoffeeType {
	result := []coffeetype.CoffeeType{}
	r.session.read(func(v view) {
		for _, ct := range v.coffeeTypes.all() {
			if keep(ct) {
				result = append(result, ct)
			}
		}
	})

	return result
}
