package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireAuth_Unauthorized(t *testing.T) {
	svc := NewAuthService(&mockValidator{}, zap.NewNop())
	mw := NewMiddleware(svc, zap.NewNop())

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/sermons", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequireAuth_SetsClaimsInContext(t *testing.T) {
	want := &Claims{Email: "pastor@example.com"}
	want.Subject = "user-1"
	svc := NewAuthService(&mockValidator{claims: want}, zap.NewNop())
	mw := NewMiddleware(svc, zap.NewNop())

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		require.True(t, ok)
		assert.Equal(t, "user-1", claims.Subject)

		token, ok := GetToken(r.Context())
		require.True(t, ok)
		assert.Equal(t, "some.jwt.token", token)

		assert.Equal(t, "user-1", GetUserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
	r.Header.Set("Authorization", "Bearer some.jwt.token")
	rec := httptest.NewRecorder()
	handler(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetUserIDFromContext_NoClaims(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserIDFromContext(r.Context()))
}
