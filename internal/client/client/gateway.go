package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/common"
	"github.com/dmitrijs2005/dataflow/internal/logging"
)

// maxBodySize bounds how much of a backend answer is read.
const maxBodySize = 1 << 20

// Client is the transport contract the session controller and the account
// services are written against.
type Client interface {
	// Do sends in (when non-nil) as a JSON body to path and decodes a 2xx
	// answer into out (when non-nil).
	Do(ctx context.Context, method, path string, in, out any) error
}

// Gateway is the single HTTP pipeline to the backend. All requests share one
// http.Client whose transport attaches the session token and enforces the
// rejection policy.
type Gateway struct {
	baseURL   string
	http      *http.Client
	transport *authTransport
	log       logging.Logger
}

var _ Client = (*Gateway)(nil)

// GatewayOptions configures NewGateway. Navigator may be nil and installed
// later with SetNavigator; Transport defaults to http.DefaultTransport.
type GatewayOptions struct {
	BaseURL   string
	Store     session.Store
	Navigator Navigator
	Timeout   time.Duration
	Logger    logging.Logger
	Transport http.RoundTripper
}

func NewGateway(opts GatewayOptions) (*Gateway, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", opts.BaseURL)
	}
	if opts.Store == nil {
		return nil, errors.New("gateway requires a session store")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	t := newAuthTransport(opts.Transport, opts.Store, opts.Navigator, log)

	return &Gateway{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{Transport: t, Timeout: opts.Timeout},
		transport: t,
		log:       log,
	}, nil
}

// SetNavigator installs the surface that receives rejection redirects.
func (g *Gateway) SetNavigator(nav Navigator) {
	g.transport.setNavigator(nav)
}

func (g *Gateway) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	g.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID(resp),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// requestID returns the X-Request-ID the transport sent with resp's request.
func requestID(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.Header.Get(common.RequestIDHeaderName)
}

// errorMessage pulls the human-readable reason out of an error payload.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
