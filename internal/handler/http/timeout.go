package http

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"blog-api/internal/handler/http/respond"
	"blog-api/internal/observability/logging"
)

// Timeout bounds the time a request may spend in next. The handler runs with
// a context that is cancelled at the deadline, and its response is buffered;
// if the deadline passes first the client gets 504 {"error":"request timeout"}
// and later writes by the handler fail with http.ErrHandlerTimeout.
//
// A panic in next is re-raised on the serving goroutine so Recover sees it.
// A duration <= 0 disables the middleware.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{header: make(http.Header)}
			done := make(chan any, 1)
			go func() {
				defer func() { done <- recover() }()
				next.ServeHTTP(tw, r)
			}()

			select {
			case p := <-done:
				if p != nil {
					panic(p)
				}
				tw.flushTo(w)
			case <-ctx.Done():
				tw.expire()
				respond.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "request timeout"})
				logging.FromContext(ctx).Warn("request timed out",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d))
			}
		})
	}
}

// timeoutWriter holds the handler's response until Timeout decides whether
// it reaches the client.
type timeoutWriter struct {
	mu      sync.Mutex
	header  http.Header
	body    bytes.Buffer
	code    int
	expired bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired || tw.code != 0 {
		return
	}
	tw.code = code
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	return tw.body.Write(p)
}

func (tw *timeoutWriter) expire() {
	tw.mu.Lock()
	tw.expired = true
	tw.mu.Unlock()
}

// flushTo copies the buffered response. It runs after the handler returned.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	maps.Copy(w.Header(), tw.header)
	code := tw.code
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	_, _ = w.Write(tw.body.Bytes())
}
