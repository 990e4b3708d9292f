package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel errors for token validation failures
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Validation failures are collapsed into two sentinels so the HTTP layer
// can distinguish an expired session from a garbage or tampered token.
var (
    ErrTokenExpired = errors.New("token expired")
    ErrInvalidToken = errors.New("invalid token")
)

// RoleClaims is the role-claim set embedded in every access token.  Each
// flag mirrors the corresponding boolean column on the users table at the
// time the token was issued.
type RoleClaims struct {
    Admin    bool
    Provider bool
    Business bool
}

// Claims is the decoded content of a validated access token.
type Claims struct {
    UserID uint64
    Roles  RoleClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are encoded in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role claims and a TTL in hours.
// The JWT includes the subject (sub), a roles map with the three boolean
// role flags, expiration (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, roles RoleClaims, ttlHours int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub": userID,
        "roles": map[string]bool{
            "admin":    roles.Admin,
            "provider": roles.Provider,
            "business": roles.Business,
        },
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates a raw token string and extracts its claims.
// It returns ErrTokenExpired when the token is past its expiry and
// ErrInvalidToken for every other failure (bad signature, wrong signing
// method, malformed claims).
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Type assert the signing method to HMAC; reject others.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return Claims{}, ErrTokenExpired
        }
        return Claims{}, ErrInvalidToken
    }
    if !tok.Valid {
        return Claims{}, ErrInvalidToken
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrInvalidToken
    }
    // JWT numeric values decode as float64.
    sub, ok := mc["sub"].(float64)
    if !ok || sub <= 0 {
        return Claims{}, ErrInvalidToken
    }
    out := Claims{UserID: uint64(sub)}
    if rm, ok := mc["roles"].(map[string]interface{}); ok {
        out.Roles.Admin, _ = rm["admin"].(bool)
        out.Roles.Provider, _ = rm["provider"].(bool)
        out.Roles.Business, _ = rm["business"].(bool)
    }
    return out, nil
}
