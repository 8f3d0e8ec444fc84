package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradeReportBackend/internal/auth"
	"tradeReportBackend/models"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the request ID stored by withRequestID, or "-".
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return "-"
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequireAuth is the authenticate stage: it rejects requests without a
// valid, unexpired bearer token and puts the Principal in the request context.
func RequireAuth(a *auth.Authenticator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				respondWithAppError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is the authorize stage. It must run after RequireAuth.
func RequireRole(role models.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := auth.Authorize(r.Context(), role); err != nil {
				respondWithAppError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// chain applies stages left to right: chain(h, a, b) runs a, then b, then h.
func chain(h http.HandlerFunc, stages ...mux.MiddlewareFunc) http.Handler {
	var out http.Handler = h
	for i := len(stages) - 1; i >= 0; i-- {
		out = stages[i](out)
	}
	return out
}
