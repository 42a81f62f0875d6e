package uow_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateConfiguration = regexp.QuoteMeta("UPDATE configurations SET value = $1 WHERE id = $2")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func updateN(ctx context.Context, repos uow.Repositories) error {
	return repos.ConfigurationRepository().Update(ctx, &configuration.Configuration{ID: "n", Value: "7"})
}

func TestDo_Commit(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(updateConfiguration).
		WithArgs("7", "n").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := uow.NewUnitOfWork(mock).Do(context.Background(), updateN)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	errBoom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(updateConfiguration).
		WithArgs("7", "n").
		WillReturnError(errBoom)
	mock.ExpectRollback()

	err := uow.NewUnitOfWork(mock).Do(context.Background(), updateN)
	assert.ErrorIs(t, err, errBoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.NewUnitOfWork(mock).Do(context.Background(), func(context.Context, uow.Repositories) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginError(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := uow.NewUnitOfWork(mock).Do(context.Background(), func(context.Context, uow.Repositories) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_CommitError(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := uow.NewUnitOfWork(mock).Do(context.Background(), func(context.Context, uow.Repositories) error {
		return nil
	})
	assert.ErrorContains(t, err, "serialization failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositories_OutsideTransaction(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, value FROM configurations WHERE id = $1")).
		WithArgs("x").
		WillReturnRows(pgxmock.NewRows([]string{"id", "value"}).AddRow("x", "15"))

	cfg, err := uow.NewUnitOfWork(mock).Repositories().ConfigurationRepository().Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, &configuration.Configuration{ID: "x", Value: "15"}, cfg)
	assert.NoError(t, mock.ExpectationsWereMet())
}
