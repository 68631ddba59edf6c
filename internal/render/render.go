package render

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"acadiasafe/pkg/e"
)

// MaxBodyBytes bounds request bodies; three 2 MiB photos in base64 fit.
const MaxBodyBytes = 10 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads exactly one JSON object into dst, rejecting unknown fields and
// trailing data.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return e.WithDetail(e.ErrInvalidInput, "invalid JSON")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return e.WithDetail(e.ErrInvalidInput, "invalid JSON")
	}
	return nil
}

// Status maps the sentinel set onto HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, e.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, e.ErrDeadline):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error writes {"error": detail}. Server faults are logged at error level and
// never expose their cause.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := Status(err)

	msg, ok := e.Detail(err)
	if !ok || code == http.StatusInternalServerError {
		msg = defaultMessage(code)
	}

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err),
	}
	if code >= 500 {
		logger.Error("handler error", attrs...)
	} else {
		logger.Debug("request rejected", attrs...)
	}

	JSON(w, code, ErrorResponse{Error: msg})
}

func defaultMessage(code int) string {
	switch code {
	case http.StatusNotFound:
		return "not found"
	case http.StatusBadRequest:
		return "invalid input"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "too many requests"
	case http.StatusGatewayTimeout:
		return "request timed out"
	default:
		return "internal error"
	}
}
