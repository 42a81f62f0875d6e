package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
	"github.com/jackc/pgx/v5"
)

const configurationsTable = "configurations"

// PostgresConfigurationRepository represents a Postgres configuration repository.
type PostgresConfigurationRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresConfigurationRepository creates a new Postgres configuration repository.
func NewPostgresConfigurationRepository(conn postgres.GenericConn) *PostgresConfigurationRepository {
	return &PostgresConfigurationRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save inserts a configuration entry. Entries without a key are ignored.
func (r *PostgresConfigurationRepository) Save(
	ctx context.Context,
	cfg *configuration.Configuration,
) (*configuration.Configuration, error) {
	if cfg == nil || cfg.ID == "" {
		return nil, nil
	}

	sql, args, err := r.sb.
		Insert(configurationsTable).
		Columns("id", "value").
		Values(cfg.ID, cfg.Value).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to insert configuration %q: %w", cfg.ID, err)
	}

	saved := *cfg

	return &saved, nil
}

// Get returns the configuration entry or nil if the key is not stored.
func (r *PostgresConfigurationRepository) Get(
	ctx context.Context,
	id string,
) (*configuration.Configuration, error) {
	sql, args, err := r.sb.
		Select("id", "value").
		From(configurationsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var cfg configuration.Configuration
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&cfg.ID, &cfg.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration %q: %w", id, err)
	}

	return &cfg, nil
}

// Update sets the value of an existing key.
func (r *PostgresConfigurationRepository) Update(ctx context.Context, cfg *configuration.Configuration) error {
	if cfg == nil {
		return nil
	}

	sql, args, err := r.sb.
		Update(configurationsTable).
		Set("value", cfg.Value).
		Where(sq.Eq{"id": cfg.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update configuration %q: %w", cfg.ID, err)
	}

	return nil
}

// Delete removes the key and returns the number of deleted rows.
func (r *PostgresConfigurationRepository) Delete(ctx context.Context, id string) (int64, error) {
	sql, args, err := r.sb.
		Delete(configurationsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete configuration %q: %w", id, err)
	}

	return tag.RowsAffected(), nil
}
