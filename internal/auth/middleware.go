package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/errors"
	"workspace/internal/model"
)

const (
	identityKey = "identity"
	cookieKey   = "session_cookie"
)

// SessionResolver resolves a raw session token into an identity. A nil
// identity with a nil error means the token is unknown or expired.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.Identity, error)
}

// VerifyCookie verifies the signed session cookie and stores its claims in
// the echo context. Requests carrying an Authorization header are skipped,
// and a missing or invalid cookie is left for RequireSession to reject.
func VerifyCookie(signer *CookieSigner) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) != ""
		},
		SigningKey:  signer.secret,
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  cookieKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(CookieClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// RequireSession rejects requests without a valid session with 401 and
// stores the resolved identity in the echo context.
func RequireSession(resolver SessionResolver, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return unauthorized()
			}

			identity, err := resolver.ResolveSession(c.Request().Context(), token)
			if err != nil {
				logger.Error("resolve session",
					zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
					zap.Error(err))
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if identity == nil {
				return unauthorized()
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token from the Authorization bearer
// header, falling back to the cookie verified by VerifyCookie.
func TokenFromRequest(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	token, ok := c.Get(cookieKey).(*jwt.Token)
	if !ok || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*CookieClaims)
	if !ok {
		return ""
	}
	return claims.SessionToken
}

// IdentityFrom returns the identity stored by RequireSession.
func IdentityFrom(c echo.Context) (*model.Identity, bool) {
	identity, ok := c.Get(identityKey).(*model.Identity)
	return identity, ok && identity != nil
}

func unauthorized() error {
	httpErr := errors.MapErrorToHTTP(errors.ErrUnauthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
