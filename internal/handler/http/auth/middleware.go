// Package auth provides the HTTP side of authentication: bearer token
// resolution middleware and the sign up, sign in and sign out endpoints.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blog-api/internal/domain/entity"
	"blog-api/internal/domain/policy"
	"blog-api/internal/handler/http/respond"
	"blog-api/internal/observability/logging"
	authSvc "blog-api/internal/service/auth"
)

// Action labels.
const (
	ActionResolve = "resolve"
	ActionSignUp  = "sign_up"
	ActionSignIn  = "sign_in"
	ActionSignOut = "sign_out"
)

// ErrUnauthenticated is the body of every 401 response.
var ErrUnauthenticated = errors.New("authentication required")

// Authenticator is the authentication collaborator used by the handlers.
// *authSvc.AuthService satisfies it.
type Authenticator interface {
	SignUp(ctx context.Context, reg entity.Registration) (*authSvc.Session, error)
	SignIn(ctx context.Context, email, password string) (*authSvc.Session, error)
	Resolve(ctx context.Context, token string) (*authSvc.Identity, error)
	Revoke(ctx context.Context, tokenID string) error
}

type ctxKey string

const ctxIdentity ctxKey = "identity"

// WithIdentity stores the resolved caller in ctx.
func WithIdentity(ctx context.Context, id *authSvc.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// IdentityFromContext returns the caller resolved by Authenticate.
func IdentityFromContext(ctx context.Context) (*authSvc.Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(*authSvc.Identity)
	return id, ok && id != nil && id.User != nil
}

// ActorFromContext returns the policy actor for the caller, or nil for an
// anonymous request.
func ActorFromContext(ctx context.Context) *policy.Actor {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return &policy.Actor{UserID: id.User.ID}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate resolves the bearer token, when one is sent, and attaches the
// identity to the request context. Requests without a usable token continue
// anonymously; routes that need a user are wrapped with RequireUser.
func Authenticate(svc Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id, err := svc.Resolve(r.Context(), token)
			RecordAuthDuration(ActionResolve, time.Since(start).Seconds())

			switch {
			case err == nil:
				RecordAuthRequest(ActionResolve, ResultSuccess)
				ctx := WithIdentity(r.Context(), id)
				logger := logging.FromContext(ctx).With(slog.Int64("user_id", id.User.ID))
				next.ServeHTTP(w, r.WithContext(logging.WithLogger(ctx, logger)))
			case errors.Is(err, authSvc.ErrInvalidToken):
				RecordAuthRequest(ActionResolve, ResultInvalid)
				logging.FromContext(r.Context()).Debug("ignoring invalid bearer token",
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
			default:
				RecordAuthRequest(ActionResolve, ResultError)
				respond.SafeError(w, http.StatusInternalServerError, err)
			}
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			RecordUnauthenticated(r.Method)
			w.Header().Set("WWW-Authenticate", `Bearer realm="blog-api"`)
			respond.Error(w, http.StatusUnauthorized, ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
