// AngelaMos | 2026
// handler_test.go

package lead

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/risingherb/herb-api/internal/middleware"
)

func withCaller(identity *middleware.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity != nil {
				r = r.WithContext(middleware.WithIdentity(r.Context(), *identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newChatRouter(svc *Service, identity *middleware.Identity) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, withCaller(identity))
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func postChat(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestChatAnonymousWithoutItem(t *testing.T) {
	repo := new(MockRepository)
	items := new(MockItemLookup)

	var saved *Lead
	repo.On("Create", mock.Anything, mock.AnythingOfType("*lead.Lead")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*Lead) }).
		Return(nil)

	h := newChatRouter(newTestService(repo, items), nil)
	rec, env := postChat(t, h,
		`{"name":"Ravi","email":"ravi@example.com","phone":"9000000000"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.True(t, strings.HasPrefix(resp.DeepLink, "https://wa.me/919990000002?text="))
	assert.Contains(t, resp.DeepLink, "your%20product")

	require.NotNil(t, saved)
	assert.Nil(t, saved.UserID)
	assert.Nil(t, saved.CatalogItemID)
	items.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChatLinksSignedInCaller(t *testing.T) {
	repo := new(MockRepository)
	items := new(MockItemLookup)

	var saved *Lead
	repo.On("Create", mock.Anything, mock.AnythingOfType("*lead.Lead")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*Lead) }).
		Return(nil)

	identity := &middleware.Identity{SubjectID: "u-42", Role: middleware.RoleUser}
	h := newChatRouter(newTestService(repo, items), identity)
	rec, _ := postChat(t, h,
		`{"name":"Ravi","email":"ravi@example.com","phone":"9000000000","itemName":"Neem"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, "u-42", *saved.UserID)
	assert.Equal(t, "Neem", saved.ItemName)
}

func TestChatRejectsInvalidBody(t *testing.T) {
	repo := new(MockRepository)
	h := newChatRouter(newTestService(repo, new(MockItemLookup)), nil)

	rec, env := postChat(t, h, `{"name":"Ravi","email":"not-an-email","phone":"9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, env = postChat(t, h, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatStoreFailureIsInternal(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	h := newChatRouter(newTestService(repo, new(MockItemLookup)), nil)
	rec, env := postChat(t, h,
		`{"name":"Ravi","email":"ravi@example.com","phone":"9000000000"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
}

func TestAdminLeadsListIsPaginated(t *testing.T) {
	repo := new(MockRepository)
	itemID := tulsiID
	repo.On("List", mock.Anything, ListParams{Page: 2, PageSize: 200}).Return([]Lead{{
		ID:            "lead-1",
		CatalogItemID: &itemID,
		ItemName:      "Tulsi",
		VisitorName:   "Asha",
		ForwardedTo:   "+91 99900 00002",
	}}, 201, nil)

	pass := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	NewHandler(newTestService(repo, new(MockItemLookup))).RegisterAdminRoutes(r, pass, pass)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads?page=2&page_size=500", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []LeadResponse `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			PageSize   int `json:"page_size"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Tulsi", body.Data[0].ItemName)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 200, body.Meta.PageSize)
	assert.Equal(t, 2, body.Meta.TotalPages)
	repo.AssertExpectations(t)
}
