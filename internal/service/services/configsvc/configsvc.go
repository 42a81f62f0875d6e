package configsvc

import (
	"context"
	"log/slog"

	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"go.opentelemetry.io/otel"
)

type transactor interface {
	Repositories() uow.Repositories
	Do(ctx context.Context, fn uow.TxFunc) error
}

// ConfigurationService manages stored pricing settings.
type ConfigurationService struct {
	uow transactor
}

type option func(*ConfigurationService)

// MustNewConfigurationService creates a new ConfigurationService.
func MustNewConfigurationService(opts ...option) *ConfigurationService {
	s := &ConfigurationService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uow == nil {
		panic("configsvc: unit of work is required")
	}

	return s
}

// WithUnitOfWork sets the unit of work for the ConfigurationService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(u transactor) option {
	return func(s *ConfigurationService) {
		s.uow = u
	}
}

// Add stores a new setting. A nil setting is ignored.
func (s *ConfigurationService) Add(
	ctx context.Context,
	cfg *configuration.Configuration,
) (*configuration.Configuration, error) {
	if cfg == nil {
		return nil, nil
	}

	ctx, span := otel.Tracer("service").Start(ctx, "ConfigurationService.Add")
	defer span.End()

	var saved *configuration.Configuration
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		saved, err = repos.ConfigurationRepository().Save(ctx, cfg)

		return err
	})
	if err != nil {
		slog.Error("Failed to add configuration", "key", cfg.ID, "error", err)

		return nil, serviceerr.New(err, "failed to add configuration %q", cfg.ID)
	}

	return saved, nil
}

// Get returns the stored setting or nil. Defaults are not consulted.
func (s *ConfigurationService) Get(ctx context.Context, key string) (*configuration.Configuration, error) {
	cfg, err := s.uow.Repositories().ConfigurationRepository().Get(ctx, key)
	if err != nil {
		return nil, serviceerr.New(err, "failed to get configuration %q", key)
	}

	return cfg, nil
}

// Update changes the value of a stored setting. A nil setting is ignored.
func (s *ConfigurationService) Update(ctx context.Context, cfg *configuration.Configuration) error {
	if cfg == nil {
		return nil
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return repos.ConfigurationRepository().Update(ctx, cfg)
	})
	if err != nil {
		slog.Error("Failed to update configuration", "key", cfg.ID, "error", err)

		return serviceerr.New(err, "failed to update configuration %q", cfg.ID)
	}

	return nil
}

// Set stores value under key, inserting or overwriting it.
func (s *ConfigurationService) Set(ctx context.Context, key, value string) (*configuration.Configuration, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "ConfigurationService.Set")
	defer span.End()

	cfg := &configuration.Configuration{ID: key, Value: value}
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		repo := repos.ConfigurationRepository()

		existing, err := repo.Get(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return repo.Update(ctx, cfg)
		}

		_, err = repo.Save(ctx, cfg)

		return err
	})
	if err != nil {
		slog.Error("Failed to set configuration", "key", key, "error", err)

		return nil, serviceerr.New(err, "failed to set configuration %q", key)
	}

	return cfg, nil
}

// Delete removes a stored setting and returns the number of deleted rows.
func (s *ConfigurationService) Delete(ctx context.Context, key string) (int64, error) {
	var deleted int64
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		deleted, err = repos.ConfigurationRepository().Delete(ctx, key)

		return err
	})
	if err != nil {
		slog.Error("Failed to delete configuration", "key", key, "error", err)

		return 0, serviceerr.New(err, "failed to delete configuration %q", key)
	}

	return deleted, nil
}

// Value returns the effective value of key, stored or default.
func (s *ConfigurationService) Value(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := NewResolver(s.uow.Repositories().ConfigurationRepository()).Resolve(ctx, key)
	if err != nil {
		return "", false, serviceerr.New(err, "failed to resolve configuration %q", key)
	}

	return value, ok, nil
}
