package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := New(nil)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products?q=x", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveListQuery(t *testing.T) {
	m := New(nil)
	m.ObserveListQuery("product", 2*time.Millisecond)
	m.ObserveListQuery("product", 3*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.listDuration))
}

func TestHandler_Exposition(t *testing.T) {
	open := 2
	m := New(func() int { return open })
	m.ObserveListQuery("sale", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storeadmin_list_query_duration_seconds_count{entity="sale"} 1`)
	assert.Contains(t, string(body), "storeadmin_confirmations_open 2")
}
