// Package upstream reads collections from the business REST backend and
// forwards confirmed state transitions to it.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storeadmin/internal/core/apperror"
	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/model"
	"storeadmin/pkg/logger"
)

var tracer = otel.Tracer("storeadmin/upstream")

var (
	_ domain.Source  = (*Client)(nil)
	_ domain.Mutator = (*Client)(nil)
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// collections maps entities to their backend path segment.
var collections = map[domain.Entity]string{
	domain.EntityProduct:  "product",
	domain.EntitySale:     "sale",
	domain.EntityBuy:      "buy",
	domain.EntitySupplier: "supplier",
	domain.EntityCustomer: "customer",
	domain.EntityUser:     "users",
}

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns defaults for a backend at baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{BaseURL: baseURL, Timeout: 10 * time.Second}
}

// Client talks to the backend on behalf of the signed-in user.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	return list[model.Product](ctx, c, domain.EntityProduct)
}

func (c *Client) Sales(ctx context.Context) ([]model.Sale, error) {
	return list[model.Sale](ctx, c, domain.EntitySale)
}

func (c *Client) Buys(ctx context.Context) ([]model.Buy, error) {
	return list[model.Buy](ctx, c, domain.EntityBuy)
}

func (c *Client) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	return list[model.Supplier](ctx, c, domain.EntitySupplier)
}

func (c *Client) Customers(ctx context.Context) ([]model.Customer, error) {
	return list[model.Customer](ctx, c, domain.EntityCustomer)
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	return list[model.User](ctx, c, domain.EntityUser)
}

// Transition asks the backend to apply action to entity/id.
// Customers use PUT, every other collection PATCH.
func (c *Client) Transition(ctx context.Context, entity domain.Entity, id int64, action domain.Action) error {
	if !entity.Supports(action) {
		return apperror.NewValidation(fmt.Sprintf("%s does not support %s", entity, action))
	}
	method := http.MethodPatch
	if entity == domain.EntityCustomer {
		method = http.MethodPut
	}
	path := collections[entity] + "/" + string(action) + "/" + strconv.FormatInt(id, 10)

	return c.do(ctx, method, path, nil,
		attribute.String("upstream.entity", string(entity)),
		attribute.String("upstream.action", string(action)),
		attribute.Int64("upstream.id", id))
}

func list[T any](ctx context.Context, c *Client, entity domain.Entity) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, collections[entity], &out,
		attribute.String("upstream.entity", string(entity))); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// do performs one backend call. A non-nil dst receives the decoded body.
func (c *Client) do(ctx context.Context, method, path string, dst any, attrs ...attribute.KeyValue) error {
	ctx, span := tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
	defer span.End()
	log := logger.FromContext(ctx).WithComponent("upstream").With("method", method, "path", path)

	endpoint, err := url.JoinPath(c.baseURL, "v1/api", path)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build url: %w", err))
	}

	var body io.Reader
	if method != http.MethodGet {
		body = strings.NewReader("{}")
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := appctx.GetToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := appctx.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		log.Warnw("backend request failed", "error", err)
		return apperror.NewUpstream(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer res.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	log.Debugw("backend request", "status", res.StatusCode, "elapsed", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		span.SetStatus(codes.Error, res.Status)
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return apperror.FromUpstreamStatus(res.StatusCode, backendMessage(b))
	}
	if dst == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		span.RecordError(err)
		return apperror.NewUpstream(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

// backendMessage extracts {"message": "..."} from an error body, falling back
// to short plain-text bodies.
func backendMessage(b []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		return payload.Message
	}
	if s := strings.TrimSpace(string(b)); len(s) <= 200 {
		return s
	}
	return ""
}
