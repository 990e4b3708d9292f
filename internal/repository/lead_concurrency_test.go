package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-api/internal/database"
)

// TestUnlockConcurrentSpend proves the FOR UPDATE locking holds under
// real contention: a business with 3 credits races 10 goroutines at 10
// distinct leads and exactly 3 may win.  sqlmock cannot exercise row
// locks, so this test needs a live MySQL and is opt-in:
//
//	TEST_DATABASE_DSN="user:pass@tcp(127.0.0.1:3306)/venuehub_test?parseTime=true" go test ./internal/repository/
func TestUnlockConcurrentSpend(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))

	// Clean slate for the rows this test owns.
	for _, q := range []string{
		"DELETE FROM leads", "DELETE FROM bookings", "DELETE FROM businesses", "DELETE FROM users",
	} {
		_, err := db.ExecContext(ctx, q)
		require.NoError(t, err)
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, is_business) VALUES ('race@test.local', 'x', TRUE)")
	require.NoError(t, err)
	userID, _ := res.LastInsertId()

	res, err = db.ExecContext(ctx,
		"INSERT INTO businesses (user_id, company, plan, lead_credits) VALUES (?, 'Race Co', 'free', 3)", userID)
	require.NoError(t, err)
	businessID, _ := res.LastInsertId()

	const n = 10
	leadIDs := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		res, err := db.ExecContext(ctx,
			"INSERT INTO bookings (customer_name, customer_email, date) VALUES (?, ?, '2026-09-01')",
			fmt.Sprintf("Customer %d", i), fmt.Sprintf("c%d@test.local", i))
		require.NoError(t, err)
		bookingID, _ := res.LastInsertId()
		res, err = db.ExecContext(ctx, "INSERT INTO leads (booking_id) VALUES (?)", bookingID)
		require.NoError(t, err)
		leadID, _ := res.LastInsertId()
		leadIDs = append(leadIDs, uint64(leadID))
	}

	repo := NewLeadRepo(db)
	var wg sync.WaitGroup
	results := make(chan error, n)
	for _, leadID := range leadIDs {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			_, err := repo.Unlock(ctx, uint64(businessID), id)
			results <- err
		}(leadID)
	}
	wg.Wait()
	close(results)

	won, broke := 0, 0
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrInsufficientCredits):
			broke++
		default:
			t.Errorf("unexpected unlock error: %v", err)
		}
	}
	assert.Equal(t, 3, won, "exactly the credit balance may be spent")
	assert.Equal(t, n-3, broke)

	var balance int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT lead_credits FROM businesses WHERE id = ?", businessID).Scan(&balance))
	assert.Equal(t, 0, balance, "balance must end at zero, never negative")

	var unlocked int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE unlocked_by_business_id IS NOT NULL").Scan(&unlocked))
	assert.Equal(t, 3, unlocked)
}
