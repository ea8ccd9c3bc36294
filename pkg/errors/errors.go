// Package errors defines the coded errors shared by the sketchify CLI, the
// render service and the remote client.
//
// A [Code] is stable and machine readable. The CLI prints it after the
// message ("unknown style: foo (INVALID_STYLE)") and the render service
// returns it in JSON error bodies with the status from [HTTPStatus].
//
//	err := errors.New(errors.ErrCodeInvalidStyle, "unknown style: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidStyle) { ... }
//
//	err = errors.Wrap(errors.ErrCodeRemoteRender, cause, "render via %s", host)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// Rejected input. The pixel pipeline itself clamps instead of failing,
	// so these only come from parsing names, files and requests.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidMedium  Code = "INVALID_MEDIUM"
	ErrCodeInvalidBrush   Code = "INVALID_BRUSH"
	ErrCodeInvalidTexture Code = "INVALID_TEXTURE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidAspect  Code = "INVALID_ASPECT"
	ErrCodeInvalidImage   Code = "INVALID_IMAGE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Remote strategy failures. The runner falls back to a local render on
	// REMOTE_RENDER_FAILED when asked to.
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeTimeout      Code = "TIMEOUT"
	ErrCodeRemoteRender Code = "REMOTE_RENDER_FAILED"

	// Compositor publication conflicts.
	ErrCodeSuperseded     Code = "RENDER_SUPERSEDED"
	ErrCodeStaleComposite Code = "STALE_COMPOSITE"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// statusByCode lists every code that does not map to 500.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeInvalidStyle:   http.StatusBadRequest,
	ErrCodeInvalidMedium:  http.StatusBadRequest,
	ErrCodeInvalidBrush:   http.StatusBadRequest,
	ErrCodeInvalidTexture: http.StatusBadRequest,
	ErrCodeInvalidFormat:  http.StatusBadRequest,
	ErrCodeInvalidAspect:  http.StatusBadRequest,
	ErrCodeInvalidImage:   http.StatusBadRequest,
	ErrCodeInvalidPath:    http.StatusBadRequest,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeFileNotFound:   http.StatusNotFound,
	ErrCodeNetwork:        http.StatusBadGateway,
	ErrCodeRemoteRender:   http.StatusBadGateway,
	ErrCodeTimeout:        http.StatusGatewayTimeout,
	ErrCodeSuperseded:     http.StatusConflict,
	ErrCodeStaleComposite: http.StatusConflict,
	ErrCodeUnsupported:    http.StatusNotImplemented,
}

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, kept reachable through errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause. Plain errors are
// returned as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the status the render service answers with.
// Uncoded errors are 500.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
