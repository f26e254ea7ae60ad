// AngelaMos | 2026
// response.go

package core

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// Payload holds the domain keys merged into the response envelope next to
// success and message.
type Payload map[string]any

var exposeErrorDetails atomic.Bool

// SetExposeErrorDetails toggles serialization of downstream error text into
// the "error" field of failure envelopes.
func SetExposeErrorDetails(expose bool) {
	exposeErrorDetails.Store(expose)
}

func ExposeErrorDetails() bool {
	return exposeErrorDetails.Load()
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func Envelope(success bool, message string, payload Payload) Payload {
	body := make(Payload, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = success
	if message != "" {
		body["message"] = message
	}
	return body
}

func OK(w http.ResponseWriter, message string, payload Payload) {
	JSON(w, http.StatusOK, Envelope(true, message, payload))
}

func Created(w http.ResponseWriter, message string, payload Payload) {
	JSON(w, http.StatusCreated, Envelope(true, message, payload))
}

// Raw writes v without the envelope.
func Raw(w http.ResponseWriter, status int, v any) {
	JSON(w, status, v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes a success:false envelope. Server-side failures are logged with
// their cause before the response goes out.
func Fail(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		slog.Error(message, "status", status, "error", err)
	}

	body := Envelope(false, message, nil)
	if err != nil && ExposeErrorDetails() {
		body["error"] = err.Error()
	}

	JSON(w, status, body)
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "unauthorized"
	}
	Fail(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, resource string) {
	Fail(w, http.StatusNotFound, resource+" not found", nil)
}

func InternalServerError(w http.ResponseWriter, err error) {
	Fail(w, http.StatusInternalServerError, "internal server error", err)
}

// JSONError writes err using its AppError status and message. Anything else
// becomes a 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		InternalServerError(w, err)
		return
	}

	Fail(w, appErr.StatusCode, appErr.Message, appErr.Cause)
}
