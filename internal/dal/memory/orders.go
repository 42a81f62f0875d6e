package memory

import (
	"context"
	"fmt"

	iorder "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
)

// OrderRepository is an in-memory implementation of IOrderRepository.
type OrderRepository struct {
	session *session
}

var _ iorder.IOrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	if o == nil {
		return nil, nil
	}

	saved := *o
	saved.ID = r.session.store.nextOrderID.Add(1)

	err := r.session.write(func(v view) error {
		v.orders.put(saved.ID, saved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var (
		o  order.Order
		ok bool
	)
	r.session.read(func(v view) {
		o, ok = v.orders.get(id)
	})
	if !ok {
		return nil, nil
	}

	return &o, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return nil
	}

	return r.session.write(func(v view) error {
		if _, ok := v.orders.get(o.ID); ok {
			v.orders.put(o.ID, *o)
		}
		return nil
	})
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.session.write(func(v view) error {
		if _, ok := v.orders.get(id); !ok {
			return nil
		}

		for _, item := range v.items.all() {
			if item.OrderID == id {
				return fmt.Errorf("order %d is referenced by item %d: %w", id, item.ID, ErrForeignKey)
			}
		}

		if v.orders.remove(id) {
			deleted = 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
