package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/taskgo/backend/domain"
	authUC "github.com/taskgo/backend/usecase/auth"
)

type stubUserRepo struct {
	user *domain.User
	err  error
}

func (r *stubUserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.user != nil && r.user.APIToken == token {
		return r.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }

func runRequest(t *testing.T, repo *stubUserRepo, token string) (*fasthttp.RequestCtx, *domain.User) {
	t.Helper()

	var seen *domain.User
	wrapped := TokenAuth(authUC.New(repo, nil, nil), nil, "X-Auth-Token", nil)(func(ctx *fasthttp.RequestCtx) {
		seen = UserFrom(ctx)
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/api/tasks")
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	wrapped(ctx)
	return ctx, seen
}

func TestTokenAuthAttachesAccount(t *testing.T) {
	root := &domain.User{ID: 1, Username: "root", APIToken: "root_key"}
	ctx, seen := runRequest(t, &stubUserRepo{user: root}, "root_key")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status %d, want 200", ctx.Response.StatusCode())
	}
	if seen == nil || seen.ID != 1 {
		t.Fatalf("handler saw %+v, want the root account", seen)
	}
}

func TestTokenAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	root := &domain.User{ID: 1, Username: "root", APIToken: "root_key"}

	for _, token := range []string{"", "badKey"} {
		ctx, seen := runRequest(t, &stubUserRepo{user: root}, token)
		if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
			t.Errorf("token %q: status %d, want 401", token, ctx.Response.StatusCode())
		}
		if string(ctx.Response.Body()) != `{"error":"Authentication required."}` {
			t.Errorf("token %q: body %q", token, ctx.Response.Body())
		}
		if seen != nil {
			t.Errorf("token %q: handler must not run", token)
		}
	}
}

func TestTokenAuthStoreFailureIs500(t *testing.T) {
	ctx, seen := runRequest(t, &stubUserRepo{err: errors.New("connection refused")}, "root_key")

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Fatalf("status %d, want 500", ctx.Response.StatusCode())
	}
	if seen != nil {
		t.Fatal("handler must not run on infrastructure failure")
	}
}
