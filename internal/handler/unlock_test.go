package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-api/internal/middleware"
	"github.com/venuehub/venuehub-api/internal/repository"
	"github.com/venuehub/venuehub-api/internal/utils"
)

func unlockContext(t *testing.T, userID uint64, leadID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/business/leads/"+leadID+"/unlock", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(leadID)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRoles, utils.RoleClaims{Business: true})
	return c, rec
}

func expectBusinessLookup(mock sqlmock.Sqlmock, userID, businessID uint64, credits int) {
	mock.ExpectQuery("(?s)SELECT id, user_id, .+ FROM businesses WHERE user_id=\\? LIMIT 1").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "company", "contact_name", "phone", "website", "plan", "lead_credits", "created_at",
		}).AddRow(businessID, userID, "Acme", "Jo", "", "", "free", credits, testCreatedAt()))
}

func TestUnlockHandlerStatusMapping(t *testing.T) {
	t.Run("unknown lead is 404", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		h := NewBusinessLeadHandler(repository.NewLeadRepo(db), repository.NewBusinessRepo(db))

		expectBusinessLookup(mock, 5, 9, 3)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT unlocked_by_business_id FROM leads WHERE id = \\? FOR UPDATE").
			WithArgs(uint64(404)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		c, rec := unlockContext(t, 5, "404")
		require.NoError(t, h.Unlock(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty balance is 402", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		h := NewBusinessLeadHandler(repository.NewLeadRepo(db), repository.NewBusinessRepo(db))

		expectBusinessLookup(mock, 5, 9, 0)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT unlocked_by_business_id FROM leads WHERE id = \\? FOR UPDATE").
			WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"unlocked_by_business_id"}).AddRow(nil))
		mock.ExpectQuery("SELECT lead_credits FROM businesses WHERE id = \\? FOR UPDATE").
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"lead_credits"}).AddRow(0))
		mock.ExpectRollback()

		c, rec := unlockContext(t, 5, "10")
		require.NoError(t, h.Unlock(c))
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign unlock is 409", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		h := NewBusinessLeadHandler(repository.NewLeadRepo(db), repository.NewBusinessRepo(db))

		expectBusinessLookup(mock, 5, 9, 3)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT unlocked_by_business_id FROM leads WHERE id = \\? FOR UPDATE").
			WithArgs(uint64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"unlocked_by_business_id"}).AddRow(int64(8)))
		mock.ExpectQuery("SELECT lead_credits FROM businesses WHERE id = \\? FOR UPDATE").
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"lead_credits"}).AddRow(3))
		mock.ExpectRollback()

		c, rec := unlockContext(t, 5, "10")
		require.NoError(t, h.Unlock(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bad lead id is 400", func(t *testing.T) {
		h := NewBusinessLeadHandler(nil, nil)
		c, rec := unlockContext(t, 5, "not-a-number")
		require.NoError(t, h.Unlock(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
