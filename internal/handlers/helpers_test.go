package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/kmlog/internal/middlewares"
)

// withRoute attaches chi URL params and an authenticated user to the request.
func withRoute(r *http.Request, user string, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if user != "" {
		ctx = middlewares.WithUsername(ctx, user)
	}
	return r.WithContext(ctx)
}
