package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockValidator implements TokenValidator for tests.
type mockValidator struct {
	claims *Claims
	err    error
}

func (m *mockValidator) ValidateToken(tokenString string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func TestValidateRequest_MissingHeader(t *testing.T) {
	svc := NewAuthService(&mockValidator{}, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
	_, _, err := svc.ValidateRequest(r)

	assert.ErrorIs(t, err, ErrMissingAuthorization)
}

func TestValidateRequest_InvalidFormat(t *testing.T) {
	svc := NewAuthService(&mockValidator{}, zap.NewNop())

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		r := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
		r.Header.Set("Authorization", header)

		_, _, err := svc.ValidateRequest(r)
		assert.ErrorIs(t, err, ErrInvalidAuthFormat, "header %q", header)
	}
}

func TestValidateRequest_ValidToken(t *testing.T) {
	want := &Claims{Email: "pastor@example.com"}
	want.Subject = "user-1"
	svc := NewAuthService(&mockValidator{claims: want}, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
	r.Header.Set("Authorization", "Bearer some.jwt.token")

	claims, token, err := svc.ValidateRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "some.jwt.token", token)
}

func TestValidateRequest_ValidatorError(t *testing.T) {
	wantErr := errors.New("token expired")
	svc := NewAuthService(&mockValidator{err: wantErr}, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/sermons", nil)
	r.Header.Set("Authorization", "Bearer some.jwt.token")

	_, _, err := svc.ValidateRequest(r)
	assert.ErrorIs(t, err, wantErr)
}
