package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreateTx(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, password_hash, is_admin, is_provider, is_business) VALUES (?,?,?,?,?)")).
		WithArgs("ann@example.com", "hashed", false, true, false).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	tx, err := repo.DB.Begin()
	require.NoError(t, err)
	id, err := repo.CreateTx(context.Background(), tx, "ann@example.com", "hashed", false, true, false)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateTxDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ann@example.com' for key 'users.email'"))
	mock.ExpectRollback()

	tx, err := repo.DB.Begin()
	require.NoError(t, err)
	_, err = repo.CreateTx(context.Background(), tx, "ann@example.com", "hashed", false, false, true)
	require.NoError(t, tx.Rollback())

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNormalizes(t *testing.T) {
	repo, mock := newUserRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,email,password_hash,is_admin,is_provider,is_business,created_at FROM users WHERE email=? LIMIT 1")).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin", "is_provider", "is_business", "created_at"}).
			AddRow(5, "ann@example.com", "hashed", false, false, true, testTime()))

	u, err := repo.GetByEmail(context.Background(), "  Ann@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), u.ID)
	assert.True(t, u.IsBusiness)
	assert.NoError(t, mock.ExpectationsWereMet())
}
