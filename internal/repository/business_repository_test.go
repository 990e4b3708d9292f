package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusinessRepoMock(t *testing.T) (*BusinessRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBusinessRepo(db), mock
}

func TestBusinessCreateTxStartsOnFreePlan(t *testing.T) {
	repo, mock := newBusinessRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO businesses (user_id, company, contact_name, phone, website, plan, lead_credits) VALUES (?,?,?,?,?,'free',?)")).
		WithArgs(uint64(5), "Acme Events", "Jo", "0100", "https://acme.test", 3).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	tx, err := repo.DB.Begin()
	require.NoError(t, err)
	id, err := repo.CreateTx(context.Background(), tx, 5, "Acme Events", "Jo", "0100", "https://acme.test", 3)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantCreditsReturnsNewBalance(t *testing.T) {
	repo, mock := newBusinessRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET lead_credits = lead_credits + ? WHERE id = ?")).
		WithArgs(10, uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lead_credits FROM businesses WHERE id = ?")).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"lead_credits"}).AddRow(13))
	mock.ExpectCommit()

	balance, err := repo.GrantCredits(context.Background(), 12, 10)
	require.NoError(t, err)
	assert.Equal(t, 13, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantCreditsUnknownBusiness(t *testing.T) {
	repo, mock := newBusinessRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE businesses SET lead_credits = lead_credits + ? WHERE id = ?")).
		WithArgs(5, uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.GrantCredits(context.Background(), 404, 5)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
