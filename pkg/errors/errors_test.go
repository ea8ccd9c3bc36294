package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidStyle, "unknown style: %s", "crayon"), "INVALID_STYLE: unknown style: crayon"},
		{"wrapped", Wrap(ErrCodeRemoteRender, cause, "render via %s", "localhost"), "REMOTE_RENDER_FAILED: render via localhost: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write sketch")

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidImage, "not a png")
	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"direct", New(ErrCodeTimeout, "slow"), ErrCodeTimeout},
		{"outermost wins", Wrap(ErrCodeRemoteRender, inner, "remote"), ErrCodeRemoteRender},
		{"fmt wrapped", fmt.Errorf("batch: %w", inner), ErrCodeInvalidImage},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if tt.wantCode != "" && !Is(tt.err, tt.wantCode) {
				t.Errorf("Is(err, %s) = false, want true", tt.wantCode)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(err, UNSUPPORTED) = true, want false")
			}
		})
	}
}

func TestIsEmptyCode(t *testing.T) {
	if Is(errors.New("plain"), "") {
		t.Error("Is(plain, \"\") = true, want false")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeFileNotFound, "photo.jpg not found"), "photo.jpg not found"},
		{Wrap(ErrCodeNetwork, errors.New("dial tcp"), "service unreachable"), "service unreachable"},
		{errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid style", New(ErrCodeInvalidStyle, "x"), http.StatusBadRequest},
		{"invalid image", New(ErrCodeInvalidImage, "x"), http.StatusBadRequest},
		{"file not found", New(ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{"superseded", New(ErrCodeSuperseded, "x"), http.StatusConflict},
		{"timeout", New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{"remote", New(ErrCodeRemoteRender, "x"), http.StatusBadGateway},
		{"unsupported", New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{"internal", New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{"uncoded", errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
