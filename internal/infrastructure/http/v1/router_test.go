package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/config"
	"storeadmin/internal/core/apperror"
	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/core/types"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/actions"
	"storeadmin/internal/domain/auth"
	"storeadmin/internal/domain/confirm"
	"storeadmin/internal/domain/dashboard"
	"storeadmin/internal/domain/listing"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/infrastructure/http/v1/dto"
	"storeadmin/internal/infrastructure/http/v1/handlers"
	"storeadmin/internal/infrastructure/metrics"
	"storeadmin/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memSource struct {
	products []model.Product

	mu    sync.Mutex
	calls map[string]int
}

func (m *memSource) hit(name string) {
	m.mu.Lock()
	m.calls[name]++
	m.mu.Unlock()
}

func (m *memSource) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *memSource) Products(context.Context) ([]model.Product, error) {
	m.hit("products")
	return m.products, nil
}
func (m *memSource) Sales(context.Context) ([]model.Sale, error) { m.hit("sales"); return nil, nil }
func (m *memSource) Buys(context.Context) ([]model.Buy, error)   { m.hit("buys"); return nil, nil }
func (m *memSource) Suppliers(context.Context) ([]model.Supplier, error) {
	m.hit("suppliers")
	return nil, nil
}
func (m *memSource) Customers(context.Context) ([]model.Customer, error) {
	m.hit("customers")
	return nil, nil
}
func (m *memSource) Users(context.Context) ([]model.User, error) { m.hit("users"); return nil, nil }

type memMutator struct {
	applied []string
}

func (m *memMutator) Transition(_ context.Context, entity domain.Entity, id int64, action domain.Action) error {
	m.applied = append(m.applied, string(entity)+"/"+string(action))
	return nil
}

type harness struct {
	router  *gin.Engine
	source  *memSource
	mutator *memMutator
	admin   string
	clerk   string
}

func newHarness(t *testing.T, ready map[string]handlers.Check) *harness {
	t.Helper()
	src := &memSource{calls: map[string]int{}, products: []model.Product{
		{ID: 1, Name: "Agua", Category: "AGUAS", Stock: types.Some[int64](0), Price: types.Some(types.MustMoney("1")), State: "A"},
		{ID: 2, Name: "Vino", Category: "VINOS", Stock: types.Some[int64](3), Price: types.Some(types.MustMoney("20")), State: "A"},
		{ID: 3, Name: "Pisco", Category: "PISCOS", Stock: types.Some[int64](12), Price: types.Some(types.MustMoney("35")), State: "A"},
	}}
	mut := &memMutator{}
	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	admin, _, err := jwtSvc.GenerateAccessToken("root", appctx.RoleAdministrator, time.Hour)
	require.NoError(t, err)
	clerk, _, err := jwtSvc.GenerateAccessToken("ana", appctx.RoleEmployee, time.Hour)
	require.NoError(t, err)

	m := metrics.New(nil)
	router := NewRouter(RouterConfig{
		Logger:       logger.NewNop(),
		JWTValidator: jwtSvc,
		Listing:      listing.NewService(src, m),
		Dashboard:    dashboard.NewService(src, 5),
		Actions:      actions.NewService(mut, confirm.NewStore(time.Minute)),
		Metrics:      m,
		ReadyChecks:  ready,
		WorkingHours: config.WorkingHours{},
		Now:          func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) },
	})
	return &harness{router: router, source: src, mutator: mut, admin: admin, clerk: clerk}
}

func (h *harness) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type productView struct {
	Items []struct {
		ID int64 `json:"identifier"`
	} `json:"items"`
	Stats struct {
		Total     int `json:"total"`
		LowStock  int `json:"lowStock"`
		ZeroStock int `json:"zeroStock"`
	} `json:"stats"`
	Categories []string `json:"categories"`
}

func TestProducts_FilterAndSort(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodGet, "/api/v1/products?sort=price&dir=desc", h.clerk, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[productView](t, rec)
	require.Len(t, view.Items, 3)
	assert.Equal(t, int64(3), view.Items[0].ID)
	assert.Equal(t, int64(1), view.Items[2].ID)
	assert.Equal(t, []string{"AGUAS", "VINOS", "PISCOS"}, view.Categories)

	rec = h.do(http.MethodGet, "/api/v1/products?stock=low", h.clerk, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[productView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2), view.Items[0].ID)
	assert.Equal(t, 1, view.Stats.Total)

	rec = h.do(http.MethodGet, "/api/v1/products?expr=stock%20%3E%205", h.clerk, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[productView](t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(3), view.Items[0].ID)
}

func TestProducts_BadQueries(t *testing.T) {
	h := newHarness(t, nil)

	for _, path := range []string{
		"/api/v1/products?stock=plenty",
		"/api/v1/products?dir=sideways",
		"/api/v1/products?eq=color:red",
		"/api/v1/products?expr=stock%20%3E",
	} {
		rec := h.do(http.MethodGet, path, h.clerk, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, apperror.CodeValidation, decode[dto.ErrorResponse](t, rec).Code, path)
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	h := newHarness(t, nil)

	for _, path := range []string{"/api/v1/buys", "/api/v1/suppliers", "/api/v1/users"} {
		assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, path, h.clerk, "").Code, path)
		assert.Equal(t, http.StatusOK, h.do(http.MethodGet, path, h.admin, "").Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/v1/products", "", "").Code)
	assert.Equal(t, 1, h.source.count("buys"), "the employee request never reached the source")
}

func TestConfirmationFlow(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/api/v1/products/2/delete", h.clerk, "")
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	pending := decode[dto.ConfirmationResponse](t, rec)
	assert.Equal(t, "pending", pending.Status)
	assert.Nil(t, pending.Confirmed)
	assert.Empty(t, h.mutator.applied)

	rec = h.do(http.MethodPost, "/api/v1/confirmations/"+pending.ID, h.clerk, `{"confirmed": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	done := decode[dto.ConfirmationResponse](t, rec)
	require.NotNil(t, done.Confirmed)
	assert.True(t, *done.Confirmed)
	assert.Equal(t, []string{"product/delete"}, h.mutator.applied)

	rec = h.do(http.MethodPost, "/api/v1/confirmations/"+pending.ID, h.clerk, `{"confirmed": true}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/confirmations/unknown", h.clerk, `{"confirmed": false}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/confirmations/"+pending.ID, h.clerk, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "confirmed is required")
}

func TestActionRejections(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/products/abc/delete", h.clerk, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/products/1/complete", h.clerk, "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/api/v1/users/1/deactivate", h.clerk, "").Code)
	assert.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/api/v1/users/1/deactivate", h.admin, "").Code)
}

func TestDashboard_ByRole(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodGet, "/api/v1/dashboard", h.clerk, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	board := decode[map[string]any](t, rec)
	assert.Equal(t, appctx.RoleEmployee, board["role"])
	assert.NotContains(t, board, "buys")
	assert.Zero(t, h.source.count("buys"))

	rec = h.do(http.MethodGet, "/api/v1/dashboard", h.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec), "buys")
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t, map[string]handlers.Check{
		"backend": func(context.Context) error { return errors.New("down") },
	})

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health/live", "", "").Code)

	rec := h.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy: down", decode[dto.HealthResponse](t, rec).Checks["backend"])

	h.do(http.MethodGet, "/api/v1/products", h.clerk, "")
	rec = h.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storeadmin_list_query_duration_seconds_count{entity="product"} 1`)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/products"`)
}
