package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-api/internal/model"
)

func newBookingRepoMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db, NewLeadRepo(db)), mock
}

func TestCreateWithLead(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	actID := uint64(7)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings (customer_name, customer_email, date, message, act_id, venue_id) VALUES (?,?,?,?,?,?)")).
		WithArgs("Ann", "ann@example.com", "2026-09-01", "hello", &actID, (*uint64)(nil)).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads (booking_id) VALUES (?)")).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM bookings WHERE id = ?")).
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(testTime()))
	mock.ExpectCommit()

	b := model.Booking{
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
		Date:          "2026-09-01",
		Message:       "hello",
		ActID:         &actID,
	}
	leadID, err := repo.CreateWithLead(context.Background(), &b)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), b.ID)
	assert.Equal(t, uint64(9), leadID)
	assert.Equal(t, testTime(), b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithLeadRollsBackWhenLeadInsertFails(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	venueID := uint64(4)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads (booking_id) VALUES (?)")).
		WithArgs(uint64(22)).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	b := model.Booking{CustomerName: "Bob", CustomerEmail: "bob@example.com", VenueID: &venueID}
	_, err := repo.CreateWithLead(context.Background(), &b)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookingRemovesLeadFirst(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads WHERE booking_id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookingMissing(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads WHERE booking_id = ?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
