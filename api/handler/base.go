package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskgo/backend/api/transport"
	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(message))
}

// mapError translates domain error codes into HTTP statuses and wire
// messages. Forbidden deliberately shares the 422 status with Invalid; see
// DESIGN.md.
func mapError(err error) (int, string) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeUnauthorized:
			return http.StatusUnauthorized, dErr.Message
		case domain.ErrCodeInvalid, domain.ErrCodeForbidden:
			return http.StatusUnprocessableEntity, dErr.Message
		case domain.ErrCodeNotFound:
			return http.StatusNotFound, dErr.Message
		}
	}
	return http.StatusInternalServerError, "Internal error."
}
