package errors

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	maxNameLength = 255
	maxPathLength = 4096
)

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// ValidateOutputName checks a derived output file name such as
// "photo.sketch.png". It must be a plain, visible basename.
func ValidateOutputName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	case len(name) > maxNameLength:
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxNameLength)
	case hasControl(name):
		return New(ErrCodeInvalidPath, "output name contains invalid control characters")
	case strings.ContainsAny(name, `/\`):
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	case strings.HasPrefix(name, "."):
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file")
	}
	return nil
}

// ValidatePath checks a local path given on the command line or in the
// config file. Existence is checked by the caller.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case hasControl(path):
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}

// ValidateUploadName checks the client file name of a multipart upload.
// The name is only logged, but traversal sequences are still refused.
func ValidateUploadName(name string) error {
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidPath, "upload name contains invalid characters")
	}
	return nil
}

// ValidateURL checks a render service URL: http or https with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host")
	}
	return nil
}
