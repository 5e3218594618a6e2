package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Browser-held cookies carry an HS256-signed JWT wrapping the opaque
// server-side token. The signature lets the gate reject forged or tampered
// cookies before touching storage; the server-held record stays authoritative.

var ErrInvalidCookieToken = errors.New("httpx: invalid cookie token")

type cookieClaims struct {
	Token string `json:"tok"`
	jwt.RegisteredClaims
}

// SignCookieToken wraps an opaque token in a signed JWT valid for ttl.
func SignCookieToken(secret []byte, token string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := cookieClaims{
		Token: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseCookieToken verifies the JWT signature and expiry and returns the
// wrapped opaque token.
func ParseCookieToken(secret []byte, value string) (string, error) {
	var claims cookieClaims
	_, err := jwt.ParseWithClaims(value, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Token == "" {
		return "", ErrInvalidCookieToken
	}
	return claims.Token, nil
}

// SetCookie writes an HttpOnly, Lax cookie scoped to the whole site.
func SetCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the named cookie immediately.
func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
