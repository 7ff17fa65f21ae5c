package auth

import "net/http"

// Register mounts the auth endpoints under /api/v1/auth. throttle wraps the
// credential endpoints; pass nil to leave them unthrottled.
func Register(mux *http.ServeMux, svc Authenticator, throttle func(http.Handler) http.Handler) {
	if throttle == nil {
		throttle = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("POST /api/v1/auth", throttle(SignUpHandler{svc}))
	mux.Handle("POST /api/v1/auth/sign_in", throttle(SignInHandler{svc}))
	mux.Handle("DELETE /api/v1/auth/sign_out", RequireUser(SignOutHandler{svc}))
}
