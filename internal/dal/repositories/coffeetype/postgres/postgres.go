package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/coffee/internal/dal/postgres"
	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const coffeeTypesTable = "coffee_types"

// price is read as text so it keeps its exact decimal representation.
var coffeeTypeColumns = []string{"id", "type_name", "price::text", "disabled"}

// CoffeeTypeDal represents coffee type data access layer model.
type CoffeeTypeDal struct {
	Id       int64  `db:"id"`
	TypeName string `db:"type_name"`
	Price    string `db:"price"`
	Disabled string `db:"disabled"`
}

// ToModel converts CoffeeTypeDal to service layer CoffeeType model.
func (c *CoffeeTypeDal) ToModel() (*coffeetype.CoffeeType, error) {
	price, err := decimal.NewFromString(c.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coffee type price %q: %w", c.Price, err)
	}

	flag, err := coffeetype.ParseDisabledFlag(c.Disabled)
	if err != nil {
		return nil, err
	}

	return &coffeetype.CoffeeType{
		ID:       c.Id,
		TypeName: c.TypeName,
		Price:    price,
		Disabled: flag,
	}, nil
}

// CoffeeTypeDalFromModel converts service layer CoffeeType model to CoffeeTypeDal.
func CoffeeTypeDalFromModel(c *coffeetype.CoffeeType) *CoffeeTypeDal {
	disabled := c.Disabled
	if disabled == "" {
		disabled = coffeetype.Enabled
	}

	return &CoffeeTypeDal{
		Id:       c.ID,
		TypeName: c.TypeName,
		Price:    c.Price.String(),
		Disabled: disabled.String(),
	}
}

// PostgresCoffeeTypeRepository represents a Postgres coffee type repository.
type PostgresCoffeeTypeRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCoffeeTypeRepository creates a new Postgres coffee type repository.
func NewPostgresCoffeeTypeRepository(conn postgres.GenericConn) *PostgresCoffeeTypeRepository {
	return &PostgresCoffeeTypeRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save inserts the coffee type and returns it with the generated ID.
func (r *PostgresCoffeeTypeRepository) Save(
	ctx context.Context,
	ct *coffeetype.CoffeeType,
) (*coffeetype.CoffeeType, error) {
	if ct == nil {
		return nil, nil
	}

	dal := CoffeeTypeDalFromModel(ct)

	sql, args, err := r.sb.
		Insert(coffeeTypesTable).
		Columns("type_name", "price", "disabled").
		Values(dal.TypeName, dal.Price, dal.Disabled).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id); err != nil {
		return nil, fmt.Errorf("failed to insert coffee type: %w", err)
	}

	return dal.ToModel()
}

// Get returns the coffee type with the given ID or nil if it does not exist.
func (r *PostgresCoffeeTypeRepository) Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error) {
	sql, args, err := r.sb.
		Select(coffeeTypeColumns...).
		From(coffeeTypesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal CoffeeTypeDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id, &dal.TypeName, &dal.Price, &dal.Disabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coffee type %d: %w", id, err)
	}

	return dal.ToModel()
}

// Update overwrites name, price and disabled flag of the coffee type.
func (r *PostgresCoffeeTypeRepository) Update(ctx context.Context, ct *coffeetype.CoffeeType) error {
	if ct == nil {
		return nil
	}

	dal := CoffeeTypeDalFromModel(ct)

	sql, args, err := r.sb.
		Update(coffeeTypesTable).
		Set("type_name", dal.TypeName).
		Set("price", dal.Price).
		Set("disabled", dal.Disabled).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update coffee type %d: %w", dal.Id, err)
	}

	return nil
}

// Delete removes the coffee type and returns the number of deleted rows.
func (r *PostgresCoffeeTypeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.
		Delete(coffeeTypesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete coffee type %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

// List returns every coffee type.
func (r *PostgresCoffeeTypeRepository) List(ctx context.Context) ([]coffeetype.CoffeeType, error) {
	return r.query(ctx, r.sb.Select(coffeeTypeColumns...).From(coffeeTypesTable).OrderBy("id"))
}

// ListByDisabled returns the coffee types with the given disabled flag.
func (r *PostgresCoffeeTypeRepository) ListByDisabled(
	ctx context.Context,
	flag coffeetype.DisabledFlag,
) ([]coffeetype.CoffeeType, error) {
	return r.query(ctx, r.sb.
		Select(coffeeTypeColumns...).
		From(coffeeTypesTable).
		Where(sq.Eq{"disabled": flag.String()}).
		OrderBy("id"))
}

func (r *PostgresCoffeeTypeRepository) query(
	ctx context.Context,
	query sq.SelectBuilder,
) ([]coffeetype.CoffeeType, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coffee types: %w", err)
	}
	defer rows.Close()

	result := []coffeetype.CoffeeType{}
	for rows.Next() {
		var dal CoffeeTypeDal
		if err := rows.Scan(&dal.Id, &dal.TypeName, &dal.Price, &dal.Disabled); err != nil {
			return nil, fmt.Errorf("failed to scan coffee type: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert coffee type dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
