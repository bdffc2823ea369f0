// AngelaMos | 2026
// handler_test.go

package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/risingherb/herb-api/internal/core"
	"github.com/risingherb/herb-api/internal/middleware"
)

func newTestRouter(t *testing.T, users UserProvider) (http.Handler, *JWTManager) {
	t.Helper()
	m := newTestManager(t, testSecret)
	h := NewHandler(NewService(m, users, AdminConfig{Key: "k"}))

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(m))
	return r, m
}

func TestSignupHandlerStatusCodes(t *testing.T) {
	users := new(MockUserProvider)
	users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)
	users.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(&UserInfo{
		ID: "u-9", Email: "new@example.com", Role: "user",
	}, nil)

	router, _ := newTestRouter(t, users)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing fields", `{"email":"new@example.com"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
		{"duplicate", `{"email":"taken@example.com","phone":"1","password":"pw"}`, http.StatusConflict},
		{"created", `{"email":"new@example.com","phone":"1","password":"pw"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	users := new(MockUserProvider)
	users.On("GetByEmail", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("lookup: %w", core.ErrNotFound))

	router, _ := newTestRouter(t, users)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), invalidCredentialsMessage)
}

func TestMeRequiresToken(t *testing.T) {
	users := new(MockUserProvider)
	users.On("GetByID", mock.Anything, "u-1").Return(&UserInfo{
		ID: "u-1", Email: "a@b.co", Name: "Asha", Phone: "9990001111", Role: "user",
	}, nil)
	router, m := newTestRouter(t, users)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := m.Sign(Claims{SubjectID: "u-1", Role: "user", Email: "a@b.co"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@b.co"`)
	assert.Contains(t, rec.Body.String(), `"name":"Asha"`)
}

func TestMeForDeletedAccountIsUnauthorized(t *testing.T) {
	users := new(MockUserProvider)
	users.On("GetByID", mock.Anything, "u-gone").
		Return(nil, fmt.Errorf("get user: %w", core.ErrNotFound))
	router, m := newTestRouter(t, users)

	token, _, err := m.Sign(Claims{SubjectID: "u-gone", Role: "user", Email: "x@b.co"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeForAdminSessionSkipsProfileLookup(t *testing.T) {
	users := new(MockUserProvider)
	router, m := newTestRouter(t, users)

	token, _, err := m.Sign(Claims{SubjectID: AdminSubject, Role: "admin", Email: "admin@risingherb"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
