// Package requestid tags each request with an identifier, echoed in the
// X-Request-ID response header and carried on the request context for logs
// and spans.
package requestid

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the id in both directions.
	RequestIDHeader = "X-Request-ID"
	// MaxLength bounds client supplied ids.
	MaxLength = 128
)

type ctxKey struct{}

// FromContext returns the request id, or "" outside a request.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware keeps an acceptable client id and mints a UUIDv4 otherwise.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// Valid accepts 1..MaxLength bytes of printable, non-space ASCII, so an id
// can be written to headers and log lines unescaped.
func Valid(id string) bool {
	return id != "" && len(id) <= MaxLength &&
		strings.IndexFunc(id, func(c rune) bool { return c <= ' ' || c > '~' }) < 0
}
