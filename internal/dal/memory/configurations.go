package memory

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/coffee/internal/dal/interfaces/iconfigurationrepo"
	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
)

// ConfigurationRepository is an in-memory implementation of IConfigurationRepository.
type ConfigurationRepository struct {
	session *session
}

var _ iconfigurationrepo.IConfigurationRepository = (*ConfigurationRepository)(nil)

func (r *ConfigurationRepository) Save(
	ctx context.Context,
	cfg *configuration.Configuration,
) (*configuration.Configuration, error) {
	if cfg == nil || cfg.ID == "" {
		return nil, nil
	}

	err := r.session.write(func(v view) error {
		if _, ok := v.configurations.get(cfg.ID); ok {
			return fmt.Errorf("configuration %q: %w", cfg.ID, ErrDuplicateKey)
		}

		v.configurations.put(cfg.ID, cfg.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := *cfg

	return &saved, nil
}

func (r *ConfigurationRepository) Get(ctx context.Context, id string) (*configuration.Configuration, error) {
	var (
		value string
		ok    bool
	)
	r.session.read(func(v view) {
		value, ok = v.configurations.get(id)
	})
	if !ok {
		return nil, nil
	}

	return &configuration.Configuration{ID: id, Value: value}, nil
}

func (r *ConfigurationRepository) Update(ctx context.Context, cfg *configuration.Configuration) error {
	if cfg == nil {
		return nil
	}

	return r.session.write(func(v view) error {
		if _, ok := v.configurations.get(cfg.ID); ok {
			v.configurations.put(cfg.ID, cfg.Value)
		}
		return nil
	})
}

func (r *ConfigurationRepository) Delete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.session.write(func(v view) error {
		if v.configurations.remove(id) {
			deleted = 1
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
