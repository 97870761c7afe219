package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandhub/internal/adapter/memory"
	"brandhub/internal/adapter/rediscache"
	"brandhub/internal/adapter/schema"
	"brandhub/internal/adapter/usecase"
	"brandhub/internal/config/configs"
	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

type testEnv struct {
	handler  http.Handler
	repo     *memory.CampaignRepository
	sessions *Sessions
}

type result struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details []port.FieldError `json:"details"`
}

func newTestEnv(t *testing.T, views port.ViewCache) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := memory.NewCampaignRepository()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.PutStore(domain.Store{ID: "store-a", OwnerID: "user-a", Name: "Store A", Logo: "a.png", CreatedAt: created})
	repo.PutStore(domain.Store{ID: "store-b", OwnerID: "user-b", Name: "Store B", CreatedAt: created})
	repo.PutProduct(domain.Product{ID: "prod-a", StoreID: "store-a", Name: "Serum", Price: 10})

	validator, err := schema.NewValidator()
	require.NoError(t, err)
	if views == nil {
		views = rediscache.Noop{}
	}
	svc := usecase.NewCampaignUseCase(repo, validator, views)
	sessions := NewSessions(configs.Auth{JWTSecret: "test-secret", LoginURL: "/login"})
	h := NewHandler(svc, views, sessions, []string{"http://localhost:3000"}, logger)
	return &testEnv{handler: h.Router(), repo: repo, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, user, method, target, body string) (*httptest.ResponseRecorder, result) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if user != "" {
		token, err := e.sessions.Issue(user, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var res result
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec, res
}

func campaignID(t *testing.T, res result) string {
	t.Helper()
	var c struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &c))
	require.NotEmpty(t, c.ID)
	return c.ID
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, res := env.do(t, "", http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.Success)
}

func TestMissingSessionRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, _ := env.do(t, "", http.MethodGet, "/api/v1/campaigns", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fapi%2Fv1%2Fcampaigns", rec.Header().Get("Location"))
}

func TestInvalidSessionRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	other := NewSessions(configs.Auth{JWTSecret: "other-secret", LoginURL: "/login"})
	token, err := other.Issue("user-a", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)
	token, err := env.sessions.Issue("user-a", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCampaignLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, res := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns",
		`{"title":"Launch","budget":500,"type":"PRODUCT","type_data":{"product_id":"prod-a","quantity":2}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.True(t, res.Success)
	id := campaignID(t, res)

	var created struct {
		Status   string         `json:"status"`
		Currency string         `json:"currency"`
		TypeData map[string]any `json:"type_data"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, "prod-a", created.TypeData["product_id"])

	rec, res = env.do(t, "user-a", http.MethodPatch, "/api/v1/campaigns/"+id, `{"type_data":{"shipping_required":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		TypeData map[string]any `json:"type_data"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, "prod-a", updated.TypeData["product_id"])
	assert.Equal(t, true, updated.TypeData["shipping_required"])
	assert.EqualValues(t, 2, updated.TypeData["quantity"])

	rec, _ = env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns/"+id+"/publish", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, res = env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns/"+id+"/publish", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "Only draft campaigns can be published", res.Error)

	rec, res = env.do(t, "user-a", http.MethodDelete, "/api/v1/campaigns/"+id, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Only draft campaigns can be deleted", res.Error)
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, res := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"No budget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "Validation failed", res.Error)
	require.NotEmpty(t, res.Details)
	assert.Equal(t, "budget", res.Details[0].Field)

	rec, res = env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"x","budget":1,"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body", res.Details[0].Field)

	rec, _ = env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBodyWithTrailingDataIsRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, res := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"x","budget":1}{"title":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, res.Details)
	assert.Equal(t, "body", res.Details[0].Field)

	rec, res = env.do(t, "user-a", http.MethodGet, "/api/v1/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(res.Data), "nothing is created")

	rec, res = env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", "{\"title\":\"x\",\"budget\":1}\n")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := campaignID(t, res)

	rec, _ = env.do(t, "user-a", http.MethodPatch, "/api/v1/campaigns/"+id, `{"title":"y"} 5`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCrossStoreIsForbidden(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, res := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"Mine","budget":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := campaignID(t, res)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/campaigns/" + id, ""},
		{http.MethodPatch, "/api/v1/campaigns/" + id, `{"title":"Theirs"}`},
		{http.MethodDelete, "/api/v1/campaigns/" + id, ""},
		{http.MethodPost, "/api/v1/campaigns/" + id + "/publish", ""},
	} {
		rec, res = env.do(t, "user-b", tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, tc.method)
		assert.Equal(t, port.ErrForbidden.Message, res.Error)
	}

	rec, res = env.do(t, "user-a", http.MethodGet, "/api/v1/campaigns/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Campaign not found", res.Error)
}

func TestListWithoutStore(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, res := env.do(t, "user-nobody", http.MethodGet, "/api/v1/campaigns", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "No store found", res.Error)
	assert.JSONEq(t, `[]`, string(res.Data))
}

func TestListFiltersAndPages(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, title := range []string{"one", "two", "three"} {
		rec, _ := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"`+title+`","budget":5}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, res := env.do(t, "user-a", http.MethodGet, "/api/v1/campaigns?status=DRAFT&page=1&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page []struct {
		Title string       `json:"title"`
		Brand domain.Brand `json:"brand"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &page))
	assert.Len(t, page, 2)
	assert.Equal(t, "Store A", page[0].Brand.Name)

	rec, res = env.do(t, "user-a", http.MethodGet, "/api/v1/campaigns?page=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page", res.Details[0].Field)

	rec, _ = env.do(t, "user-a", http.MethodGet, "/api/v1/campaigns?status=ARCHIVED", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCachedViewsAreInvalidatedByWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	views := rediscache.New(client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	env := newTestEnv(t, views)

	rec, res := env.do(t, "user-a", http.MethodPost, "/api/v1/campaigns", `{"title":"Cached","budget":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := campaignID(t, res)
	path := "/api/v1/campaigns/" + id

	rec, _ = env.do(t, "user-a", http.MethodGet, path, "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec, _ = env.do(t, "user-a", http.MethodGet, path, "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec, _ = env.do(t, "user-a", http.MethodPatch, path, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, res = env.do(t, "user-a", http.MethodGet, path, "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var c struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &c))
	assert.Equal(t, "Renamed", c.Title)

	rec, _ = env.do(t, "user-b", http.MethodGet, path, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, "cached views are per caller")
}

func TestUnexpectedErrorsAreNotLeaked(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil).WithContext(context.Background())
	h := &Handler{sessions: env.sessions, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h.writeError(rec, req, io.ErrUnexpectedEOF, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, port.ErrUnexpected.Message, res.Error)
}
