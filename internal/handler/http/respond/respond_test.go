package respond

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-api/internal/domain/entity"
)

// captureDefault routes slog.Default into a buffer for the duration of the test.
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name string
		code int
		v    any
		body string
	}{
		{name: "object", code: http.StatusOK, v: map[string]string{"title": "Hello"}, body: `{"title":"Hello"}`},
		{name: "struct", code: http.StatusCreated, v: struct {
			ID int `json:"id"`
		}{ID: 12}, body: `{"id":12}`},
		{name: "empty list", code: http.StatusOK, v: []int{}, body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.code, tt.v)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.body+"\n", rec.Body.String())
		})
	}
}

func TestJSON_NilWritesNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestJSON_UnencodableBecomes500(t *testing.T) {
	logs := captureDefault(t)

	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "encode response")
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, errors.New("article not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"article not found"}`, rec.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name string
		code int
		err  error
		want string
	}{
		{name: "404 passes through", code: http.StatusNotFound, err: errors.New("article not found"), want: "article not found"},
		{name: "403 passes through", code: http.StatusForbidden, err: errors.New("forbidden"), want: "forbidden"},
		{name: "500 hidden", code: http.StatusInternalServerError, err: errors.New("database connection failed"), want: InternalErrorMessage},
		{name: "503 hidden", code: http.StatusServiceUnavailable, err: fmt.Errorf("list articles: %w", errors.New("circuit breaker is open")), want: InternalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), rec.Body.String())
		})
	}
}

func TestSafeError_LogsMaskedCause(t *testing.T) {
	logs := captureDefault(t)

	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, errors.New("connect: postgres://blog:secret123@db/blog"))

	assert.NotContains(t, rec.Body.String(), "secret123")
	assert.NotContains(t, logs.String(), "secret123")
	assert.Contains(t, logs.String(), "postgres://blog:****@db/blog")
}

func TestSafeError_NilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, nil)

	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		errs entity.ValidationErrors
		want string
	}{
		{
			name: "messages in order",
			errs: entity.ValidationErrors{
				{Field: "title", Message: "is too long (maximum is 75 characters)"},
				{Field: "body", Message: "can't be blank"},
			},
			want: `{"errors":["Title is too long (maximum is 75 characters)","Body can't be blank"]}`,
		},
		{name: "empty list stays an array", want: `{"errors":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Validation(rec, tt.errs)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}
