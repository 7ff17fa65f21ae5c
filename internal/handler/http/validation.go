package http

import (
	"mime"
	"net/http"

	"blog-api/internal/handler/http/respond"
)

const (
	// MaxAuthorizationHeaderBytes bounds the bearer token; issued tokens are well under 1KB.
	MaxAuthorizationHeaderBytes = 8 << 10
	MaxPathBytes                = 2 << 10
	// DefaultMaxBodyBytes leaves ample room for a 200-character article body.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// InputValidation rejects oversized or mistyped input before routing:
//
//	Authorization over MaxAuthorizationHeaderBytes  400
//	path over MaxPathBytes                           414
//	body with a non-JSON Content-Type                415
//
// and caps every body at maxBodyBytes (DefaultMaxBodyBytes when <= 0).
// A missing Content-Type is accepted.
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case len(r.Header.Get("Authorization")) > MaxAuthorizationHeaderBytes:
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "authorization header too large"})
				return
			case len(r.URL.Path) > MaxPathBytes:
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			case hasBody(r) && !jsonContent(r.Header.Get("Content-Type")):
				respond.JSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "content type must be application/json"})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}

func jsonContent(ct string) bool {
	if ct == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}
