package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/venuehub/venuehub-api/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// CreateTx inserts a user within an existing transaction and returns its ID.
// Registration creates the user and, for business accounts, the business
// profile as one unit, so the caller owns the transaction.  The email must
// already be normalized (lowercased, trimmed).
func (r *UserRepo) CreateTx(ctx context.Context, tx *sql.Tx, email, passwordHash string, isAdmin, isProvider, isBusiness bool) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, is_admin, is_provider, is_business) VALUES (?,?,?,?,?)",
		email, passwordHash, isAdmin, isProvider, isBusiness)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_admin,is_provider,is_business,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.IsProvider, &u.IsBusiness, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_admin,is_provider,is_business,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.IsProvider, &u.IsBusiness, &u.CreatedAt)
	return u, err
}
