package repository

import (
	"context"
	"database/sql"

	"github.com/venuehub/venuehub-api/internal/model"
)

// BusinessRepo provides data access to the businesses table.  A business
// row exists one-to-one with a user holding the business role and carries
// the subscription plan and the lead credit balance.
type BusinessRepo struct{ DB *sql.DB }

func NewBusinessRepo(db *sql.DB) *BusinessRepo { return &BusinessRepo{DB: db} }

// CreateTx inserts the business profile for a freshly registered user
// inside the registration transaction.  New accounts start on the free
// plan with the configured starting credit grant.
func (r *BusinessRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64, company, contactName, phone, website string, startingCredits int) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO businesses (user_id, company, contact_name, phone, website, plan, lead_credits) VALUES (?,?,?,?,?,'free',?)",
		userID, company, contactName, phone, website, startingCredits)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUserID returns the business profile owned by the given user.
// sql.ErrNoRows means the user has no business profile (e.g. the business
// flag was granted without registration completing).
func (r *BusinessRepo) GetByUserID(ctx context.Context, userID uint64) (model.Business, error) {
	var b model.Business
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, COALESCE(company,''), COALESCE(contact_name,''), COALESCE(phone,''),
		        COALESCE(website,''), plan, lead_credits, created_at
		 FROM businesses WHERE user_id=? LIMIT 1`,
		userID).Scan(&b.ID, &b.UserID, &b.Company, &b.ContactName, &b.Phone, &b.Website, &b.Plan, &b.LeadCredits, &b.CreatedAt)
	return b, err
}

// GetByID returns a business by primary key.
func (r *BusinessRepo) GetByID(ctx context.Context, id uint64) (model.Business, error) {
	var b model.Business
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, COALESCE(company,''), COALESCE(contact_name,''), COALESCE(phone,''),
		        COALESCE(website,''), plan, lead_credits, created_at
		 FROM businesses WHERE id=? LIMIT 1`,
		id).Scan(&b.ID, &b.UserID, &b.Company, &b.ContactName, &b.Phone, &b.Website, &b.Plan, &b.LeadCredits, &b.CreatedAt)
	return b, err
}

// GrantCredits adds amount (must be positive, validated by the handler)
// to a business's balance and returns the new balance.  The addition and
// read-back run in one transaction so concurrent grants cannot report a
// stale balance.  sql.ErrNoRows is returned for an unknown business.
func (r *BusinessRepo) GrantCredits(ctx context.Context, businessID uint64, amount int) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE businesses SET lead_credits = lead_credits + ? WHERE id = ?",
		amount, businessID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, sql.ErrNoRows
	}
	var balance int
	if err := tx.QueryRowContext(ctx,
		"SELECT lead_credits FROM businesses WHERE id = ?", businessID).Scan(&balance); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return balance, nil
}
