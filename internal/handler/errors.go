package handler

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/backoffice/internal/entity"
	"github.com/xenking/backoffice/internal/storage/memory"
	"github.com/xenking/backoffice/internal/wire"
)

// badRequestError marks client input that could not be read or decoded.
type badRequestError struct {
	status int
	err    error
}

func (e *badRequestError) Error() string { return e.err.Error() }

func (e *badRequestError) Unwrap() error { return e.err }

// mapError converts domain errors to an HTTP status and public message.
func mapError(name string, err error) (int, string) {
	var badReq *badRequestError
	switch {
	case errors.As(err, &badReq):
		status := badReq.status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, badReq.Error()
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, name + " not found"
	case errors.Is(err, entity.ErrAlreadyExists):
		return http.StatusConflict, name + " already exists"
	case errors.Is(err, memory.ErrInjected):
		return http.StatusServiceUnavailable, "store unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "store timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, name string, err error) {
	status, msg := mapError(name, err)
	if status >= http.StatusInternalServerError {
		zctx.From(ctx).Error("Request failed", zap.String("entity", name), zap.Error(err))
	}
	body := wire.Error{Code: status, Message: msg}
	if unknown, ok := errors.Into[*wire.UnknownFieldError](err); ok {
		body.Issues = map[string]string{unknown.Field: "unknown field"}
	}
	writeJSON(ctx, w, status, func(e *jx.Encoder) {
		wire.EncodeError(e, body)
	})
}
