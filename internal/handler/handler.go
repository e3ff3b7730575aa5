// Package handler serves the back-office records over HTTP.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
	"github.com/xenking/backoffice/internal/entity"
	"github.com/xenking/backoffice/internal/wire"
)

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// MaxBodyBytes limits request bodies. Zero means 1 MiB.
	MaxBodyBytes int64
}

// Handler routes /api requests to the order, product and customer stores.
type Handler struct {
	orders    resource[order.Order, order.Patch]
	products  resource[product.Product, product.Patch]
	customers resource[customer.Customer, customer.Patch]

	orderService *order.Service
	customerRepo customer.Repository
	maxBody      int64
}

// NewHandler constructs a Handler over the given stores.
func NewHandler(
	cfg HandlerConfig,
	orders order.Repository,
	products product.Repository,
	customers customer.Repository,
) *Handler {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	orderService := order.NewService(orders)
	return &Handler{
		orders: resource[order.Order, order.Patch]{
			name:        "order",
			repo:        orders,
			list:        orders.List,
			create:      orderService.Create,
			encode:      wire.EncodeOrder,
			decode:      wire.DecodeOrder,
			decodePatch: wire.DecodeOrderPatch,
			maxBody:     maxBody,
		},
		products: resource[product.Product, product.Patch]{
			name:        "product",
			repo:        products,
			list:        products.List,
			create:      product.NewService(products).Create,
			encode:      wire.EncodeProduct,
			decode:      wire.DecodeProduct,
			decodePatch: wire.DecodeProductPatch,
			maxBody:     maxBody,
		},
		customers: resource[customer.Customer, customer.Patch]{
			name:        "customer",
			repo:        customers,
			list:        customers.List,
			create:      customer.NewService(customers).Create,
			encode:      wire.EncodeCustomer,
			decode:      wire.DecodeCustomer,
			decodePatch: wire.DecodeCustomerPatch,
			maxBody:     maxBody,
		},
		orderService: orderService,
		customerRepo: customers,
		maxBody:      maxBody,
	}
}

// Register adds the API routes to mux under prefix (e.g. "/api").
func (h *Handler) Register(mux *http.ServeMux, prefix string) {
	h.orders.register(mux, prefix+"/orders")
	h.products.register(mux, prefix+"/products")
	h.customers.register(mux, prefix+"/customers")
	mux.HandleFunc("GET "+prefix+"/customers/{id}/orders", h.customerOrders)
}

// customerOrders lists the orders placed by one customer.
func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if _, err := h.customerRepo.Get(ctx, id); err != nil {
		writeError(ctx, w, "customer", err)
		return
	}
	orders, err := h.orderService.ByCustomer(ctx, id)
	if err != nil {
		writeError(ctx, w, "order", err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, func(e *jx.Encoder) {
		wire.EncodeList(e, orders, wire.EncodeOrder)
	})
}

// resource serves one collection.
type resource[T any, P entity.Patch[T]] struct {
	name        string
	repo        entity.Repository[T]
	list        func(ctx context.Context) ([]T, error)
	create      func(ctx context.Context, v T) (T, error)
	encode      func(*jx.Encoder, T)
	decode      func(*jx.Decoder) (T, error)
	decodePatch func(*jx.Decoder) (P, error)
	maxBody     int64
}

func (res resource[T, P]) register(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+base, res.handleList)
	mux.HandleFunc("POST "+base, res.handleCreate)
	mux.HandleFunc("GET "+base+"/{id}", res.handleGet)
	mux.HandleFunc("PATCH "+base+"/{id}", res.handlePatch)
}

func (res resource[T, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := res.repo.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	res.writeOne(ctx, w, http.StatusOK, v)
}

func (res resource[T, P]) handlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(w, r, res.maxBody)
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	patch, err := res.decodePatch(jx.DecodeBytes(body))
	if err != nil {
		writeError(ctx, w, res.name, &badRequestError{err: err})
		return
	}
	v, err := res.repo.Update(ctx, r.PathValue("id"), patch)
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	res.writeOne(ctx, w, http.StatusOK, v)
}

func (res resource[T, P]) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := res.list(ctx)
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, func(e *jx.Encoder) {
		wire.EncodeList(e, items, res.encode)
	})
}

func (res resource[T, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readBody(w, r, res.maxBody)
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	v, err := res.decode(jx.DecodeBytes(body))
	if err != nil {
		writeError(ctx, w, res.name, &badRequestError{err: err})
		return
	}
	created, err := res.create(ctx, v)
	if err != nil {
		writeError(ctx, w, res.name, err)
		return
	}
	res.writeOne(ctx, w, http.StatusCreated, created)
}

func (res resource[T, P]) writeOne(ctx context.Context, w http.ResponseWriter, status int, v T) {
	writeJSON(ctx, w, status, func(e *jx.Encoder) { res.encode(e, v) })
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &badRequestError{status: http.StatusRequestEntityTooLarge, err: err}
		}
		return nil, &badRequestError{err: errors.Wrap(err, "read body")}
	}
	return body, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, write func(e *jx.Encoder)) {
	var e jx.Encoder
	write(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		zctx.From(ctx).Debug("Write response", zap.Error(err))
	}
}
