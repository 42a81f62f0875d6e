package iconfigurationrepo

import (
	"context"

	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
)

// IConfigurationRepository is an interface for configuration repository.
type IConfigurationRepository interface {
	Save(ctx context.Context, cfg *configuration.Configuration) (*configuration.Configuration, error)
	Get(ctx context.Context, id string) (*configuration.Configuration, error)
	Update(ctx context.Context, cfg *configuration.Configuration) error
	Delete(ctx context.Context, id string) (int64, error)
}
