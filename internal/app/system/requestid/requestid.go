// Package requestid assigns a UUID to every request so log lines from a
// single request can be correlated. The ID is echoed in the X-Request-ID
// response header; an inbound X-Request-ID from a trusted proxy is reused.
package requestid

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header is the request/response header carrying the ID.
const Header = "X-Request-ID"

type ctxKey string

const idKey ctxKey = "requestID"

// FromContext returns the request ID, or "" when the middleware did not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(idKey).(string)
	return id
}

// Middleware returns a middleware that injects a request ID into the
// context and response headers, and logs one completion line per request
// carrying the ID as a structured field.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)
			ctx := context.WithValue(r.Context(), idKey, id)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
