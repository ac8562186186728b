package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the cookie carrying the signed session token.
const CookieName = "session_token"

// CookieClaims wraps the opaque session token in a signed envelope.
type CookieClaims struct {
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieSigner signs session cookies with HS256.
type CookieSigner struct {
	secret []byte
	secure bool
}

// NewCookieSigner creates a new cookie signer with the given secret.
func NewCookieSigner(secret string, secure bool) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		secure: secure,
	}
}

// Sign returns the cookie value for a session token.
func (s *CookieSigner) Sign(token string, expiresAt time.Time) (string, error) {
	claims := &CookieClaims{
		SessionToken: token,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Cookie builds the session cookie for a token.
func (s *CookieSigner) Cookie(token string, expiresAt time.Time) (*http.Cookie, error) {
	value, err := s.Sign(token, expiresAt)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie builds a cookie that removes the session cookie.
func (s *CookieSigner) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
