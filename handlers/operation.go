package handlers

import (
	"context"
	"net/http"

	"blog-api/auth"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/httpserver"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Operation is a controller action. The caller is passed in explicitly;
// auth.Anonymous on public routes without a token.
type Operation func(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request)

// Public adapts an operation that anyone may call.
func Public(op Operation) httpserver.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		ctx = withRequestID(ctx, w, r)
		p, _ := auth.FromContext(ctx)
		op(ctx, p, w, r)
	}
}

// Protected adapts an operation that needs a resolved bearer token.
// Requests without one get 401 and never reach op.
func Protected(op Operation) httpserver.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		ctx = withRequestID(ctx, w, r)
		p, ok := auth.FromContext(ctx)
		if !ok {
			logRequest(ctx, "info", "Unauthenticated request")
			writeMessage(ctx, w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		op(ctx, p, w, r)
	}
}

func withRequestID(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
