package resp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/epoint/springlab/ecode"
)

// Exception represents a failure response.
type Exception struct {
	Status  int    `json:"-"`                 // HTTP status
	Code    int    `json:"code"`              // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Error details
}

// Error implements error.
func (e *Exception) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Success writes a 200 response.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes a success payload with a custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	var payload any = map[string]any{"message": ecode.Text(ecode.OK)}
	if len(data) > 0 && data[0] != nil {
		if msg, ok := data[0].(string); ok {
			payload = map[string]any{"message": msg}
		} else {
			payload = data[0]
		}
	}
	writeJSON(w, statusCode, payload)
}

// Fail writes a failure response. A nil exception becomes a 500.
func Fail(w http.ResponseWriter, e *Exception) {
	if e == nil {
		e = InternalServer("")
	}
	if e.Code == 0 {
		e.Code = ecode.RequestErr
	}
	if e.Message == "" {
		e.Message = ecode.Text(e.Code)
	}
	status := e.Status
	if status == 0 {
		status = ecode.ToHTTPStatus(e.Code)
	}
	writeJSON(w, status, e)
}

// BadRequest builds a 400 exception.
func BadRequest(message string, errs ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, message, errs...)
}

// NotFound builds a 404 exception.
func NotFound(message string, errs ...any) *Exception {
	return newException(http.StatusNotFound, ecode.NothingFound, message, errs...)
}

// MethodNotAllowed builds a 405 exception.
func MethodNotAllowed(message string) *Exception {
	return newException(http.StatusMethodNotAllowed, ecode.MethodNotAllow, message)
}

// ServiceUnavailable builds a 503 exception.
func ServiceUnavailable(message string, errs ...any) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.Unavailable, message, errs...)
}

// InternalServer builds a 500 exception.
func InternalServer(message string, errs ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message, errs...)
}

func newException(status, code int, message string, errs ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// writeJSON sets the content type before the status line is written.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(res)
}
