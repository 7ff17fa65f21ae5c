package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"blog-api/internal/domain/entity"
	"blog-api/internal/handler/http/respond"
	"blog-api/internal/observability/logging"
	authSvc "blog-api/internal/service/auth"
)

// Response headers carrying a freshly issued token.
const (
	HeaderAccessToken = "access-token"
	HeaderTokenType   = "token-type"
	HeaderExpiry      = "expiry"
)

// UserDTO is the public view of a user.
type UserDTO struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"test_user"`
	Email string `json:"email" example:"test@example.com"`
}

// SessionResponse is returned by sign up and sign in.
type SessionResponse struct {
	Status    string    `json:"status,omitempty" example:"success"`
	Data      UserDTO   `json:"data"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignOutResponse is returned by sign out.
type SignOutResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"signed out"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func writeSession(w http.ResponseWriter, status string, s *authSvc.Session) {
	w.Header().Set(HeaderAccessToken, s.Token)
	w.Header().Set(HeaderTokenType, "Bearer")
	w.Header().Set(HeaderExpiry, strconv.FormatInt(s.ExpiresAt.Unix(), 10))
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, SessionResponse{
		Status:    status,
		Data:      toUserDTO(s.User),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	})
}

type SignUpHandler struct{ Svc Authenticator }

// ServeHTTP ユーザー登録
// @Summary      ユーザー登録
// @Description  ユーザーを登録し、アクセストークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registration body SignUpRequest true "登録情報"
// @Success      200 {object} SessionResponse "登録成功" headers(access-token=string)
// @Failure      400 {object} map[string]string "Bad request - malformed JSON"
// @Failure      422 {object} respond.ValidationErrorsBody "Validation failed"
// @Failure      429 {object} map[string]string "Too many requests"
// @Router       /auth [post]
func (h SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("malformed JSON body"))
		return
	}

	start := time.Now()
	sess, err := h.Svc.SignUp(r.Context(), entity.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	RecordAuthDuration(ActionSignUp, time.Since(start).Seconds())
	if err != nil {
		if verrs, ok := entity.AsValidationErrors(err); ok {
			RecordAuthRequest(ActionSignUp, ResultFailure)
			respond.Validation(w, verrs)
			return
		}
		RecordAuthRequest(ActionSignUp, ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	RecordAuthRequest(ActionSignUp, ResultSuccess)
	logging.FromContext(r.Context()).Info("user signed up", slog.Int64("user_id", sess.User.ID))
	writeSession(w, "success", sess)
}

// SignUpRequest is the sign up body.
type SignUpRequest struct {
	Name                 string `json:"name" example:"test_user"`
	Email                string `json:"email" example:"test@example.com"`
	Password             string `json:"password" example:"password"`
	PasswordConfirmation string `json:"password_confirmation" example:"password"`
}

// SignInRequest is the sign in body.
type SignInRequest struct {
	Email    string `json:"email" example:"test@example.com"`
	Password string `json:"password" example:"password"`
}

type SignInHandler struct{ Svc Authenticator }

// ServeHTTP サインイン
// @Summary      サインイン
// @Description  メールアドレスとパスワードでサインインし、アクセストークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body SignInRequest true "認証情報"
// @Success      200 {object} SessionResponse "サインイン成功" headers(access-token=string)
// @Failure      400 {object} map[string]string "Bad request - malformed JSON"
// @Failure      401 {object} map[string]string "Invalid login credentials"
// @Failure      429 {object} map[string]string "Too many requests"
// @Router       /auth/sign_in [post]
func (h SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("malformed JSON body"))
		return
	}

	start := time.Now()
	sess, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	RecordAuthDuration(ActionSignIn, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, authSvc.ErrInvalidCredentials) {
			RecordAuthRequest(ActionSignIn, ResultFailure)
			logging.FromContext(r.Context()).Warn("sign in failed")
			respond.Error(w, http.StatusUnauthorized, authSvc.ErrInvalidCredentials)
			return
		}
		RecordAuthRequest(ActionSignIn, ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	RecordAuthRequest(ActionSignIn, ResultSuccess)
	writeSession(w, "", sess)
}

type SignOutHandler struct{ Svc Authenticator }

// ServeHTTP サインアウト
// @Summary      サインアウト
// @Description  現在のアクセストークンを失効させます
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} SignOutResponse "サインアウト成功"
// @Failure      401 {object} map[string]string "Authentication required"
// @Router       /auth/sign_out [delete]
func (h SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		RecordAuthRequest(ActionSignOut, ResultFailure)
		respond.Error(w, http.StatusUnauthorized, ErrUnauthenticated)
		return
	}

	if err := h.Svc.Revoke(r.Context(), id.TokenID); err != nil {
		RecordAuthRequest(ActionSignOut, ResultError)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	RecordAuthRequest(ActionSignOut, ResultSuccess)
	logging.FromContext(r.Context()).Info("user signed out", slog.Int64("user_id", id.User.ID))
	respond.JSON(w, http.StatusOK, SignOutResponse{Success: true, Message: "signed out"})
}
