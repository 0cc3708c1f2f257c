package ecode

import (
	"fmt"
	"net/http"
)

// Business codes
const (
	OK             = 0
	RequestErr     = -400
	NothingFound   = -404
	MethodNotAllow = -405
	ServerErr      = -500
	Unavailable    = -503
	Deadline       = -504
)

var messages = map[int]string{
	OK:             "ok",
	RequestErr:     "invalid request",
	NothingFound:   "not found",
	MethodNotAllow: "method not allowed",
	ServerErr:      "internal server error",
	Unavailable:    "service unavailable",
	Deadline:       "deadline exceeded",
}

// Text returns the default message of a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown code %d", code)
}

// ToHTTPStatus maps a business code to an HTTP status code.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NothingFound:
		return http.StatusNotFound
	case MethodNotAllow:
		return http.StatusMethodNotAllowed
	case Unavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	case ServerErr:
		return http.StatusInternalServerError
	default:
		if code <= -400 && code > -500 {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// NotExist returns a "<key> does not exist" message.
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s does not exist", k[0])
	}
	return "does not exist"
}
