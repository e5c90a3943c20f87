package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ethnikart/internal/config"
	"ethnikart/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func testAdminService() service.AdminService {
	return service.NewAdminService(config.AdminConfig{
		Password:     "letmein",
		JWTSecret:    testSecret,
		SessionHours: 24,
	})
}

func signAdminToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest("DELETE", "/api/products/abc", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func runAdminMiddleware(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	handler := AdminAuthMiddleware(testAdminService(), zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, called
}

func TestAdminAuthAcceptsIssuedToken(t *testing.T) {
	token, _, err := testAdminService().Login("letmein")
	require.NoError(t, err)

	rec, called := runAdminMiddleware(t, adminRequest(token))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rec, called := runAdminMiddleware(t, adminRequest(""))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/products", nil)
	req.Header.Set("Authorization", "Token abc")

	rec, called := runAdminMiddleware(t, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	token := signAdminToken(t, testSecret, "admin", time.Now().Add(-time.Hour))

	rec, called := runAdminMiddleware(t, adminRequest(token))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin session expired")
}

func TestAdminAuthRejectsWrongSubject(t *testing.T) {
	token := signAdminToken(t, testSecret, "customer", time.Now().Add(time.Hour))

	rec, called := runAdminMiddleware(t, adminRequest(token))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsForeignSignature(t *testing.T) {
	token := signAdminToken(t, "other-secret", "admin", time.Now().Add(time.Hour))

	rec, called := runAdminMiddleware(t, adminRequest(token))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type stubValidator struct {
	calls int
	err   error
}

func (s *stubValidator) ValidateToken(string) error {
	s.calls++
	return s.err
}

// The middleware must not verify tokens itself; the injected validator is
// the single owner of that decision.
func TestAdminAuthDelegatesToValidator(t *testing.T) {
	stub := &stubValidator{}
	handler := AdminAuthMiddleware(stub, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest("anything-goes"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls)

	stub.err = errors.New("nope")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, adminRequest("anything-goes"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 2, stub.calls)
}
