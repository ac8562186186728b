package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workspace/internal/model"
)

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestCookieSigner_Cookie(t *testing.T) {
	signer := NewCookieSigner("secret", true)
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	cookie, err := signer.Cookie("opaque", expiresAt)
	require.NoError(t, err)

	assert.Equal(t, CookieName, cookie.Name)
	assert.NotEqual(t, "opaque", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, expiresAt, cookie.Expires)

	cleared := signer.ClearCookie()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestRevocationList_DisabledCacheNeverRevokes(t *testing.T) {
	list := NewRevocationList(nil)
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "hash", time.Hour))
	revoked, err := list.IsRevoked(ctx, "hash")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationList_NonPositiveTTLIsIgnored(t *testing.T) {
	list := NewRevocationList(nil)

	assert.NoError(t, list.Revoke(context.Background(), "hash", 0))
	assert.NoError(t, list.Revoke(context.Background(), "hash", -time.Second))
}

type fakeResolver struct {
	tokens map[string]*model.Identity
	err    error
	calls  []string
}

func (f *fakeResolver) ResolveSession(ctx context.Context, token string) (*model.Identity, error) {
	f.calls = append(f.calls, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[token], nil
}

func serve(t *testing.T, resolver SessionResolver, signer *CookieSigner, req *http.Request) (*httptest.ResponseRecorder, *model.Identity) {
	t.Helper()
	e := echo.New()
	var seen *model.Identity
	e.GET("/", func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		require.True(t, ok)
		seen = identity
		return c.NoContent(http.StatusOK)
	}, VerifyCookie(signer), RequireSession(resolver, zap.NewNop()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireSession(t *testing.T) {
	signer := NewCookieSigner("secret", false)
	identity := &model.Identity{
		User:    model.User{ID: uuid.New(), Email: "alice@example.com"},
		Session: model.SessionInfo{Token: "good", ExpiresAt: time.Now().Add(time.Hour)},
	}
	cookieValue, err := signer.Sign("good", time.Now().Add(time.Hour))
	require.NoError(t, err)
	expiredValue, err := signer.Sign("good", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	forgedValue, err := NewCookieSigner("other", false).Sign("good", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name           string
		prepare        func(r *http.Request)
		resolverErr    error
		expectedStatus int
	}{
		{
			name:           "no credential",
			prepare:        func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bearer token",
			prepare:        func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer good") },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown bearer token",
			prepare:        func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer stale") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non bearer scheme",
			prepare:        func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Basic good") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "signed cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: cookieValue})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unsigned cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: expiredValue})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "cookie signed with another secret",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: forgedValue})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer header wins over cookie",
			prepare: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer stale")
				r.AddCookie(&http.Cookie{Name: CookieName, Value: cookieValue})
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "store failure",
			prepare:        func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer good") },
			resolverErr:    errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{tokens: map[string]*model.Identity{"good": identity}, err: tt.resolverErr}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)

			rec, seen := serve(t, resolver, signer, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, identity, seen)
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}

func TestRequireSession_UnauthorizedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _ := serve(t, &fakeResolver{}, NewCookieSigner("secret", false), req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, rec.Body.String())
}
