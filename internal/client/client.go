// Package client implements the back-office repositories over the HTTP API,
// so detail controllers can run against a remote server.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
	"github.com/xenking/backoffice/internal/entity"
	"github.com/xenking/backoffice/internal/wire"
)

// maxResponse bounds response bodies read by the client.
const maxResponse = 8 << 20

// APIError is a non-2xx response that does not map to an entity error.
type APIError struct {
	Status  int
	Message string
	Issues  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client talks to the back-office API.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) endpoint(segments ...string) string {
	return c.base.JoinPath(segments...).String()
}

// do sends a request and decodes a 2xx body with dec. Non-2xx responses are
// mapped to entity errors or *APIError.
func do[T any](ctx context.Context, c *Client, method, target string, body []byte, dec func(*jx.Decoder) (T, error)) (T, error) {
	var zero T

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return zero, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, errors.Wrapf(err, "%s %s", method, target)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return zero, errors.Wrap(err, "read response")
	}
	if resp.StatusCode/100 != 2 {
		return zero, responseError(resp.StatusCode, data)
	}
	v, err := dec(jx.DecodeBytes(data))
	if err != nil {
		return zero, errors.Wrap(err, "decode response")
	}
	return v, nil
}

func responseError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	if e, err := wire.DecodeError(jx.DecodeBytes(body)); err == nil && e.Message != "" {
		apiErr.Message = e.Message
		apiErr.Issues = e.Issues
	}
	switch status {
	case http.StatusNotFound:
		return errors.Wrap(entity.ErrNotFound, apiErr.Message)
	case http.StatusConflict:
		return errors.Wrap(entity.ErrAlreadyExists, apiErr.Message)
	default:
		return apiErr
	}
}

// Collection is a remote record collection. It implements the domain
// repository interfaces.
type Collection[T any, P entity.Patch[T]] struct {
	client *Client
	path   string

	encode      func(*jx.Encoder, T)
	decode      func(*jx.Decoder) (T, error)
	encodePatch func(*jx.Encoder, P)
	diff        func(before, after T) P
	clone       func(T) T
}

// Get fetches one record. Unknown ids yield entity.ErrNotFound.
func (col *Collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	return do(ctx, col.client, http.MethodGet, col.client.endpoint(col.path, id), nil, col.decode)
}

// Update sends patch as a partial update. Typed patches are sent as they
// are. Other patches are applied to the current remote record and only the
// fields they changed are sent; fields they leave equal are not written.
func (col *Collection[T, P]) Update(ctx context.Context, id string, patch entity.Patch[T]) (T, error) {
	typed, ok := patch.(P)
	if !ok {
		cur, err := col.Get(ctx, id)
		if err != nil {
			var zero T
			return zero, err
		}
		next := col.clone(cur)
		patch.Apply(&next)
		typed = col.diff(cur, next)
	}
	body := wire.Marshal(typed, col.encodePatch)
	return do(ctx, col.client, http.MethodPatch, col.client.endpoint(col.path, id), body, col.decode)
}

// List fetches every record.
func (col *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	return do(ctx, col.client, http.MethodGet, col.client.endpoint(col.path), nil, wire.ListDecoder(col.decode))
}

// Create posts a new record and returns it with its assigned id.
func (col *Collection[T, P]) Create(ctx context.Context, v T) (T, error) {
	return do(ctx, col.client, http.MethodPost, col.client.endpoint(col.path), wire.Marshal(v, col.encode), col.decode)
}

func identity[T any](v T) T { return v }

// Orders returns the remote order collection.
func (c *Client) Orders() *Collection[order.Order, order.Patch] {
	return &Collection[order.Order, order.Patch]{
		client:      c,
		path:        "orders",
		encode:      wire.EncodeOrder,
		decode:      wire.DecodeOrder,
		encodePatch: wire.EncodeOrderPatch,
		diff:        order.Diff,
		clone:       order.Order.Clone,
	}
}

// Products returns the remote product collection.
func (c *Client) Products() *Collection[product.Product, product.Patch] {
	return &Collection[product.Product, product.Patch]{
		client:      c,
		path:        "products",
		encode:      wire.EncodeProduct,
		decode:      wire.DecodeProduct,
		encodePatch: wire.EncodeProductPatch,
		diff:        product.Diff,
		clone:       identity[product.Product],
	}
}

// Customers returns the remote customer collection.
func (c *Client) Customers() *Collection[customer.Customer, customer.Patch] {
	return &Collection[customer.Customer, customer.Patch]{
		client:      c,
		path:        "customers",
		encode:      wire.EncodeCustomer,
		decode:      wire.DecodeCustomer,
		encodePatch: wire.EncodeCustomerPatch,
		diff:        customer.Diff,
		clone:       identity[customer.Customer],
	}
}

// CustomerOrders lists the orders of one customer.
func (c *Client) CustomerOrders(ctx context.Context, customerID string) ([]order.Order, error) {
	return do(ctx, c, http.MethodGet, c.endpoint("customers", customerID, "orders"), nil, wire.ListDecoder(wire.DecodeOrder))
}

var (
	_ order.Repository    = (*Collection[order.Order, order.Patch])(nil)
	_ product.Repository  = (*Collection[product.Product, product.Patch])(nil)
	_ customer.Repository = (*Collection[customer.Customer, customer.Patch])(nil)
)
