package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	identityLock      = regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext(UPPER($1)))`)
	listByRNumber     = regexp.QuoteMeta(`WHERE UPPER(dp.r_number) = UPPER($1)`)
	departmentColumns = []string{
		"id", "name", "email", "r_number", "unique_id", "department", "blood_group",
		"phone", "sport", "gender", "year", "captain_id", "status", "added_at", "name",
	}
)

func newMockDepartmentPlayerRepo(t *testing.T) (DepartmentPlayerRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewPostgresDepartmentPlayerRepository(conn), mock
}

func TestWithIdentityLockRunsInsideTransaction(t *testing.T) {
	repo, mock := newMockDepartmentPlayerRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(identityLock).WithArgs("R600").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(listByRNumber).WithArgs("R600").WillReturnRows(sqlmock.NewRows(departmentColumns))
	mock.ExpectCommit()

	err := repo.WithIdentityLock(ctx, "R600", func(tx DepartmentPlayerRepository) error {
		players, err := tx.ListByRNumber(ctx, "R600")
		require.NoError(t, err)
		assert.Empty(t, players)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithIdentityLockRollsBackOnError(t *testing.T) {
	repo, mock := newMockDepartmentPlayerRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(identityLock).WithArgs("R601").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.WithIdentityLock(context.Background(), "R601", func(DepartmentPlayerRepository) error {
		return ErrDepartmentPlayerSportConflict
	})
	assert.ErrorIs(t, err, ErrDepartmentPlayerSportConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
