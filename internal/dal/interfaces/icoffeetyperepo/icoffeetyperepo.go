package icoffeetyperepo

import (
	"context"

	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
)

// ICoffeeTypeRepository is an interface for coffee type repository.
type ICoffeeTypeRepository interface {
	Save(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error)
	Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error)
	Update(ctx context.Context, ct *coffeetype.CoffeeType) error
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]coffeetype.CoffeeType, error)
	ListByDisabled(ctx context.Context, flag coffeetype.DisabledFlag) ([]coffeetype.CoffeeType, error)
}
