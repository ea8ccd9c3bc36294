// Package remote renders sketches on an HTTP render service.
//
// The service is an alternate, fallible execution strategy. [Client.Render]
// posts the source photo and parameters as multipart form data and expects a
// PNG back. Every failure (network error, non-2xx status, undecodable body)
// is reported with the REMOTE_RENDER_FAILED code and is never retried; the
// caller decides whether to fall back to the local pipeline.
//
// [Dispatcher] wraps a client with the same supersede protocol the local
// compositor uses: a request overtaken by a newer one is cancelled and its
// result discarded.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchify/sketchify/pkg/errors"
	pkgio "github.com/sketchify/sketchify/pkg/io"
	"github.com/sketchify/sketchify/pkg/observability"
	"github.com/sketchify/sketchify/pkg/params"
)

// RenderPath is the service endpoint, relative to the base URL.
const RenderPath = "/api/style-transfer-advanced"

// DefaultTimeout bounds a single render request.
const DefaultTimeout = 60 * time.Second

// maxResponse bounds the PNG body read from the service.
const maxResponse = 128 << 20

// Request is one remote render.
type Request struct {
	// Image is the encoded source photo, sent unchanged.
	Image []byte
	// Filename is reported to the service; defaults to "image.png".
	Filename string
	Params   params.Parameters
	Sizing   Sizing
}

// Client calls a render service.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *log.Logger
	now    func() time.Time
}

// NewClient returns a client for the service at baseURL. The base may be the
// service root or the full endpoint URL. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), RenderPath))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse service URL")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
		now:    time.Now,
	}, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.base.String() }

// Endpoint returns the full render URL.
func (c *Client) Endpoint() string { return c.base.JoinPath(RenderPath).String() }

// Render posts req and decodes the returned image.
func (c *Client) Render(ctx context.Context, req Request) (image.Image, error) {
	body, contentType, err := c.encode(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemoteRender, err, "build request")
	}

	endpoint := c.base.JoinPath(RenderPath)
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemoteRender, err, "build request")
	}
	hreq.Header.Set("Content-Type", contentType)
	hreq.Header.Set("Accept", "image/png")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodPost, endpoint.Host, endpoint.Path)
	start := time.Now()

	resp, err := c.http.Do(hreq)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, endpoint.Host, endpoint.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeRemoteRender, err, "contact render service")
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, endpoint.Host, endpoint.Path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemoteRender, err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeRemoteRender, "render service returned %d: %s",
			resp.StatusCode, serviceMessage(data))
	}

	img, _, err := pkgio.DecodeBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRemoteRender, err, "decode response")
	}
	c.logger.Debug("remote render", "url", endpoint, "bytes", len(data), "duration", time.Since(start))
	return img, nil
}

func (c *Client) encode(req Request) (io.Reader, string, error) {
	if len(req.Image) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	name := req.Filename
	if name == "" {
		name = "image.png"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	p := req.Params.Normalize()
	if err := writeFields(mw, p, p.EffectiveSeed(c.now()), req.Sizing); err != nil {
		return nil, "", err
	}
	fw, err := mw.CreateFormFile(FieldFile, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(req.Image); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// serviceMessage extracts a short error message from a response body.
func serviceMessage(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	if s == "" {
		return "empty body"
	}
	return s
}
