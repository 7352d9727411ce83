package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/kmlog/internal/logger"
)

type usernameKey struct{}

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUsername(ctx context.Context, tokenString string) (string, error)
}

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) bool
}

// AuthMiddleware returns a middleware that accepts either HTTP Basic
// credentials or a bearer JWT and stores the username in the request context.
func AuthMiddleware(tokener Tokener, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if username, password, ok := r.BasicAuth(); ok {
				if !authenticator.Authenticate(ctx, username, password) {
					logger.Log.Infow("basic authorization failed", "username", username)
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUsername(ctx, username)))
				return
			}

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			username, err := tokener.GetUsername(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(ctx, username)))
		})
	}
}

// WithUsername returns a copy of ctx carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// UsernameFromContext returns the username stored by AuthMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey{}).(string)
	return username, ok && username != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="kmlog", charset="UTF-8"`)
	w.WriteHeader(http.StatusUnauthorized)
}
