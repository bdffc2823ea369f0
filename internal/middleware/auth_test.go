// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/risingherb/herb-api/internal/core"
)

type stubVerifier map[string]Identity

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (*Identity, error) {
	if id, ok := s[token]; ok {
		return &id, nil
	}
	return nil, errors.Join(core.ErrTokenInvalid, errors.New("signature mismatch"))
}

var verifier = stubVerifier{
	"user-token":  {SubjectID: "u-1", Role: RoleUser, Email: "u@x.io", ExpiresAt: time.Now().Add(time.Hour)},
	"admin-token": {SubjectID: "admin", Role: RoleAdmin, Email: "a@x.io", ExpiresAt: time.Now().Add(time.Hour)},
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	if id, ok := GetIdentity(r.Context()); ok {
		w.Header().Set("X-Subject", id.SubjectID)
	}
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator(t *testing.T) {
	h := Authenticator(verifier)(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"forged token", "Bearer forged", http.StatusUnauthorized},
		{"valid token", "Bearer user-token", http.StatusOK},
		{"lower-case scheme", "bearer user-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.header)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticatorUniformFailureBody(t *testing.T) {
	h := Authenticator(verifier)(http.HandlerFunc(okHandler))

	missing := serve(h, "")
	forged := serve(h, "Bearer forged")

	assert.Equal(t, missing.Body.String(), forged.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(verifier)(http.HandlerFunc(okHandler))

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Subject"))

	rec = serve(h, "Bearer forged")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Subject"))

	rec = serve(h, "Bearer user-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Header().Get("X-Subject"))
}

func TestRequireAdminChecksAuthenticationFirst(t *testing.T) {
	bare := RequireAdmin(http.HandlerFunc(okHandler))
	assert.Equal(t, http.StatusUnauthorized, serve(bare, "").Code)

	chained := Authenticator(verifier)(RequireAdmin(http.HandlerFunc(okHandler)))
	assert.Equal(t, http.StatusUnauthorized, serve(chained, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(chained, "Bearer forged").Code)
	assert.Equal(t, http.StatusForbidden, serve(chained, "Bearer user-token").Code)
	assert.Equal(t, http.StatusOK, serve(chained, "Bearer admin-token").Code)
}
