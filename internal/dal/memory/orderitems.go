package memory

import (
	"context"
	"fmt"
	"slices"

	iorderitem "github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
)

// OrderItemRepository is an in-memory implementation of IOrderItemRepository.
type OrderItemRepository struct {
	session *session
}

var _ iorderitem.IOrderItemRepository = (*OrderItemRepository)(nil)

func (r *OrderItemRepository) Save(ctx context.Context, item *orderitem.OrderItem) (*orderitem.OrderItem, error) {
	if item == nil {
		return nil, nil
	}

	saved := *item
	err := r.session.write(func(v view) error {
		if err := checkReferences(v, item); err != nil {
			return err
		}

		saved.ID = r.session.store.nextItemID.Add(1)
		v.items.put(saved.ID, saved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *OrderItemRepository) Get(ctx context.Context, id int64) (*orderitem.OrderItem, error) {
	var (
		item orderitem.OrderItem
		ok   bool
	)
	r.session.read(func(v view) {
		item, ok = v.items.get(id)
	})
	if !ok {
		return nil, nil
	}

	return &item, nil
}

func (r *OrderItemRepository) Update(ctx context.Context, item *orderitem.OrderItem) error {
	if item == nil {
		return nil
	}

	return r.session.write(func(v view) error {
		if _, ok := v.items.get(item.ID); !ok {
			return nil
		}
		if err := checkReferences(v, item); err != nil {
			return err
		}

		v.items.put(item.ID, *item)
		return nil
	})
}

func (r *OrderItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.session.write(func(v view) error {
		if v.items.remove(id) {
			deleted = 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *OrderItemRepository) ListForOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error) {
	return r.Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{orderID}})
}

func (r *OrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	result := []orderitem.OrderItem{}
	r.session.read(func(v view) {
		for _, item := range v.items.all() {
			if filter != nil {
				if len(filter.Ids) > 0 && !slices.Contains(filter.Ids, item.ID) {
					continue
				}
				if len(filter.OrderIds) > 0 && !slices.Contains(filter.OrderIds, item.OrderID) {
					continue
				}
				if len(filter.CoffeeTypeIds) > 0 && !slices.Contains(filter.CoffeeTypeIds, item.CoffeeTypeID) {
					continue
				}
			}
			result = append(result, item)
		}
	})

	return result, nil
}

func checkReferences(v view, item *orderitem.OrderItem) error {
	if _, ok := v.orders.get(item.OrderID); !ok {
		return fmt.Errorf("order %d does not exist: %w", item.OrderID, ErrForeignKey)
	}
	if _, ok := v.coffeeTypes.get(item.CoffeeTypeID); !ok {
		return fmt.Errorf("coffee type %d does not exist: %w", item.CoffeeTypeID, ErrForeignKey)
	}

	return nil
}
