package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind tells where a call failed.
type Kind int

const (
	// KindResponse: the server answered with a non-2xx status.
	KindResponse Kind = iota + 1
	// KindNetwork: the request went out but no response came back.
	KindNetwork
	// KindLocal: the request could not be built or sent.
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindNetwork:
		return "network"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by Client calls.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindResponse {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message())
	}
	return fmt.Sprintf("%s %s: %s error: %v", e.Method, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DetailCode returns the backend's machine-readable code: either a string
// `detail` or `detail.code`. Empty when the body carries neither.
func (e *Error) DetailCode() string {
	if len(e.Body) == 0 || !gjson.ValidBytes(e.Body) {
		return ""
	}
	detail := gjson.GetBytes(e.Body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsObject():
		return detail.Get("code").String()
	}
	return ""
}

// Message returns the most human-readable text available.
func (e *Error) Message() string {
	if len(e.Body) > 0 && gjson.ValidBytes(e.Body) {
		detail := gjson.GetBytes(e.Body, "detail")
		switch {
		case detail.Type == gjson.String:
			return detail.String()
		case detail.IsObject():
			if reason := detail.Get("reason").String(); reason != "" {
				return reason
			}
			if msg := detail.Get("msg").String(); msg != "" {
				return msg
			}
		case detail.IsArray():
			// Validation errors come as a list of {loc, msg}.
			if msg := detail.Get("0.msg").String(); msg != "" {
				return msg
			}
		}
		if msg := gjson.GetBytes(e.Body, "message").String(); msg != "" {
			return msg
		}
	}

	if e.Kind == KindResponse {
		if body := strings.TrimSpace(string(e.Body)); body != "" && len(body) <= 200 {
			return body
		}
		return http.StatusText(e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is a server response with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindResponse && apiErr.StatusCode == status
}

// IsTransport reports whether err never produced a server response.
func IsTransport(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind != KindResponse
}
