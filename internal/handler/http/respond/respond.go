// Package respond writes JSON responses for the API handlers. Server-side
// failures are logged with secrets masked and reach the client only as a
// generic message.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"blog-api/internal/domain/entity"
)

// InternalErrorMessage is the body text of every 5xx error response.
const InternalErrorMessage = "internal server error"

// ErrorBody is the {"error": "..."} envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// ValidationErrorsBody is the 422 response body.
type ValidationErrorsBody struct {
	Errors []string `json:"errors"`
}

// JSON encodes v and writes it with code. A nil v writes headers only.
// If v cannot be encoded the response becomes a 500 instead.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	if v == nil {
		w.WriteHeader(code)
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		slog.Default().Error("encode response",
			slog.Int("status_code", code),
			slog.Any("error", err))
		code = http.StatusInternalServerError
		b, _ = json.Marshal(ErrorBody{Error: InternalErrorMessage})
	}
	w.WriteHeader(code)
	_, _ = w.Write(append(b, '\n'))
}

// Error writes err's message verbatim. Use SafeError unless the text is known
// to be client-safe.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// SafeError passes 4xx messages through. For 5xx the sanitized error is
// logged and the client only sees InternalErrorMessage. A nil err is a no-op.
func SafeError(w http.ResponseWriter, code int, err error) {
	switch {
	case err == nil:
		return
	case code < http.StatusInternalServerError:
		Error(w, code, err)
		return
	}

	slog.Default().Error("request failed",
		slog.Int("code", code),
		slog.String("status", http.StatusText(code)),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: InternalErrorMessage})
}

// Validation writes 422 with one full message per violation, in order.
func Validation(w http.ResponseWriter, errs entity.ValidationErrors) {
	JSON(w, http.StatusUnprocessableEntity, ValidationErrorsBody{Errors: errs.Messages()})
}
