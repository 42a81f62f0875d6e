package catalogsvc

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"go.opentelemetry.io/otel"
)

type transactor interface {
	Repositories() uow.Repositories
	Do(ctx context.Context, fn uow.TxFunc) error
}

// CoffeeTypeService manages the coffee catalog.
type CoffeeTypeService struct {
	uow transactor
}

type option func(*CoffeeTypeService)

// MustNewCoffeeTypeService creates a new CoffeeTypeService.
func MustNewCoffeeTypeService(opts ...option) *CoffeeTypeService {
	s := &CoffeeTypeService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uow == nil {
		panic("catalogsvc: unit of work is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work for the CoffeeTypeService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(u transactor) option {
	return func(s *CoffeeTypeService) {
		s.uow = u
	}
}

// Add stores a new coffee type. A nil coffee type is ignored.
func (s *CoffeeTypeService) Add(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error) {
	if ct == nil {
		return nil, nil
	}

	ctx, span := otel.Tracer("service").Start(ctx, "CoffeeTypeService.Add")
	defer span.End()

	var saved *coffeetype.CoffeeType
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		saved, err = repos.CoffeeTypeRepository().Save(ctx, ct)

		return err
	})
	if err != nil {
		slog.Error("Failed to add coffee type", "type_name", ct.TypeName, "error", err)

		return nil, serviceerr.New(err, "failed to add coffee type %q", ct.TypeName)
	}

	return saved, nil
}

// Get returns the coffee type or nil if it does not exist.
func (s *CoffeeTypeService) Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error) {
	ct, err := s.uow.Repositories().CoffeeTypeRepository().Get(ctx, id)
	if err != nil {
		return nil, serviceerr.New(err, "failed to get coffee type %d", id)
	}

	return ct, nil
}

// Update overwrites an existing coffee type and returns it. It returns nil
// when the input is nil or no coffee type has that ID.
func (s *CoffeeTypeService) Update(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error) {
	if ct == nil {
		return nil, nil
	}

	ctx, span := otel.Tracer("service").Start(ctx, "CoffeeTypeService.Update")
	defer span.End()

	var updated *coffeetype.CoffeeType
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		repo := repos.CoffeeTypeRepository()

		existing, err := repo.Get(ctx, ct.ID)
		if err != nil || existing == nil {
			return err
		}

		if err := repo.Update(ctx, ct); err != nil {
			return err
		}

		updated, err = repo.Get(ctx, ct.ID)

		return err
	})
	if err != nil {
		slog.Error("Failed to update coffee type", "coffee_type_id", ct.ID, "error", err)

		return nil, serviceerr.New(err, "failed to update coffee type %d", ct.ID)
	}

	return updated, nil
}

// Delete removes the coffee type and returns the number of deleted rows.
func (s *CoffeeTypeService) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		deleted, err = repos.CoffeeTypeRepository().Delete(ctx, id)

		return err
	})
	if err != nil {
		slog.Error("Failed to delete coffee type", "coffee_type_id", id, "error", err)

		return 0, serviceerr.New(err, "failed to delete coffee type %d", id)
	}

	return deleted, nil
}

// List returns the whole catalog.
func (s *CoffeeTypeService) List(ctx context.Context) ([]coffeetype.CoffeeType, error) {
	types, err := s.uow.Repositories().CoffeeTypeRepository().List(ctx)
	if err != nil {
		return nil, serviceerr.New(err, "failed to list coffee types")
	}

	return types, nil
}

// ListByDisabled returns the coffee types with the given disabled flag.
func (s *CoffeeTypeService) ListByDisabled(
	ctx context.Context,
	flag coffeetype.DisabledFlag,
) ([]coffeetype.CoffeeType, error) {
	types, err := s.uow.Repositories().CoffeeTypeRepository().ListByDisabled(ctx, flag)
	if err != nil {
		return nil, serviceerr.New(err, "failed to list coffee types with disabled=%s", flag)
	}

	return types, nil
}
