package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuehub/venuehub-api/internal/config"
	"github.com/venuehub/venuehub-api/internal/middleware"
	"github.com/venuehub/venuehub-api/internal/repository"
	"github.com/venuehub/venuehub-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg        config.Config
	Users      *repository.UserRepo
	Businesses *repository.BusinessRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, b *repository.BusinessRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Businesses: b}
}

// ----- DTOs -----

type registerReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsProvider bool   `json:"is_provider"`
	IsBusiness bool   `json:"is_business"`
	// Business profile fields, used when is_business is set.
	Company     string `json:"company"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type rolesPart struct {
	Admin    bool `json:"admin"`
	Provider bool `json:"provider"`
	Business bool `json:"business"`
}
type userPart struct {
	ID    uint64    `json:"id"`
	Email string    `json:"email"`
	Roles rolesPart `json:"roles"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Register creates a user and returns a token immediately.  Role flags
// are fixed at creation: provider and business may be requested, admin
// never can be (admin accounts are seeded out of band).  When the
// business flag is set, the business profile with its starting credit
// grant is created in the same transaction as the user row.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Users.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	uid, err := h.Users.CreateTx(ctx, tx, req.Email, hash, false, req.IsProvider, req.IsBusiness)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	if req.IsBusiness {
		if _, err := h.Businesses.CreateTx(ctx, tx, uid, req.Company, req.ContactName, req.Phone, req.Website, h.Cfg.StartingCredits); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create business failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	committed = true

	roles := utils.RoleClaims{Provider: req.IsProvider, Business: req.IsBusiness}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, roles, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Email: req.Email, Roles: rolesPart{Provider: roles.Provider, Business: roles.Business}},
		Token:   access.Token,
		Expires: access.Exp,
	})
}

// Login verifies credentials and returns a fresh token.  Unknown email
// and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	roles := utils.RoleClaims{Admin: u.IsAdmin, Provider: u.IsProvider, Business: u.IsBusiness}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, roles, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Email: u.Email, Roles: rolesPart{Admin: roles.Admin, Provider: roles.Provider, Business: roles.Business}},
		Token:   access.Token,
		Expires: access.Exp,
	})
}

// Me: simple protected endpoint echoing the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, _ := middleware.UserID(c)
	roles, _ := c.Get(middleware.CtxRoles).(utils.RoleClaims)
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": uid,
		"roles":   rolesPart{Admin: roles.Admin, Provider: roles.Provider, Business: roles.Business},
	})
}
