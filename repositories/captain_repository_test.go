package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deletePlayersOfCaptain = regexp.QuoteMeta(`DELETE FROM department_players WHERE captain_id = $1`)
	deleteCaptain          = regexp.QuoteMeta(`DELETE FROM captains WHERE id = $1`)
)

func newMockCaptainRepo(t *testing.T) (CaptainRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewPostgresCaptainRepository(conn), mock
}

func TestDeleteWithPlayersCommits(t *testing.T) {
	repo, mock := newMockCaptainRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(deletePlayersOfCaptain).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(deleteCaptain).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.DeleteWithPlayers(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPlayersRollsBackMissingCaptain(t *testing.T) {
	repo, mock := newMockCaptainRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(deletePlayersOfCaptain).WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(deleteCaptain).WithArgs(8).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	removed, err := repo.DeleteWithPlayers(context.Background(), 8)
	assert.ErrorIs(t, err, ErrCaptainNotFound)
	assert.Zero(t, removed, "rolled back players are not reported as removed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithPlayersStopsOnPlayerDeleteError(t *testing.T) {
	repo, mock := newMockCaptainRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec(deletePlayersOfCaptain).WithArgs(9).WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.DeleteWithPlayers(context.Background(), 9)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet(), "the captain row must not be touched")
}
