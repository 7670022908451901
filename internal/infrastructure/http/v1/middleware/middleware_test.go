package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/config"
	"storeadmin/internal/core/apperror"
	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/infrastructure/http/v1/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]*appctx.UserContext

func (s stubValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, errors.New("bad token")
}

var users = stubValidator{
	"admin": {UserName: "root", Role: appctx.RoleAdministrator, Token: "admin"},
	"clerk": {UserName: "ana", Role: appctx.RoleEmployee, Token: "clerk"},
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": appctx.GetUserName(c.Request.Context())})
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("plain"))
		c.Abort()
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth(t *testing.T) {
	r := newRouter(Auth(users))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer clerk", http.StatusOK},
		{"lowercase scheme", "bearer admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, "/ok", tt.header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, apperror.CodeUnauthorized, decodeError(t, rec).Code)
			}
		})
	}

	rec := do(r, "/ok", "Bearer clerk")
	assert.JSONEq(t, `{"user":"ana"}`, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter(Auth(users), RequireRole(appctx.RoleAdministrator))

	assert.Equal(t, http.StatusOK, do(r, "/ok", "Bearer admin").Code)

	rec := do(r, "/ok", "Bearer clerk")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, apperror.CodeForbidden, body.Code)
	assert.Equal(t, "You do not have permission for this action", body.Message)

	anon := newRouter(RequireRole(appctx.RoleAdministrator))
	assert.Equal(t, http.StatusUnauthorized, do(anon, "/ok", "").Code)
}

func TestWorkingHours(t *testing.T) {
	window := config.WorkingHours{Open: 8, Close: 17, Enabled: true}
	at := func(h int) func() time.Time {
		return func() time.Time { return time.Date(2024, 1, 1, h, 0, 0, 0, time.Local) }
	}

	assert.Equal(t, http.StatusOK, do(newRouter(WorkingHours(window, at(9))), "/ok", "").Code)

	rec := do(newRouter(WorkingHours(window, at(22))), "/ok", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apperror.CodeOutsideWorkingHours, decodeError(t, rec).Code)

	assert.Equal(t, http.StatusOK, do(newRouter(WorkingHours(config.WorkingHours{}, at(3))), "/ok", "").Code)
}

func TestRecoveryAndUnknownErrors(t *testing.T) {
	r := newRouter()

	rec := do(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, decodeError(t, rec).Code)

	rec = do(r, "/fail", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotEmpty(t, body.Details["request_id"])
}

func TestTrace_KeepsCallerIDs(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, rec.Header().Get(HeaderTraceID))
}
