package middleware

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskgo/backend/api/transport"
	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/pkg/httpcontext"
	authUC "github.com/taskgo/backend/usecase/auth"
)

const userKey = "auth_user"

// TokenAuth resolves the opaque token header to an account before any handler
// runs. The resolved account travels with the request via a user value; there
// is no process-wide identity state.
func TokenAuth(uc *authUC.UseCase, adapter *httpcontext.Adapter, header string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if header == "" {
		header = "X-Auth-Token"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := string(ctx.Request.Header.Peek(header))

			stdCtx, cancel := attach(adapter, ctx)
			user, err := uc.ResolveToken(stdCtx, token)
			cancel()

			if err != nil {
				if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					respond(ctx, fasthttp.StatusUnauthorized, transport.NewError(domain.ErrUnauthorized.Message))
					return
				}
				logger.Error("token resolution failed", zap.Error(err))
				respond(ctx, fasthttp.StatusInternalServerError, transport.NewError("Internal error."))
				return
			}

			ctx.SetUserValue(userKey, user)
			next(ctx)
		}
	}
}

// UserFrom returns the account attached by TokenAuth, or nil when the request
// never passed through it.
func UserFrom(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(userKey).(*domain.User)
	return user
}

// StoreUser attaches an account to the request the same way TokenAuth does.
// Exported for handler tests.
func StoreUser(ctx *fasthttp.RequestCtx, user *domain.User) {
	ctx.SetUserValue(userKey, user)
}

func attach(adapter *httpcontext.Adapter, ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if adapter != nil {
		return adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func respond(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
