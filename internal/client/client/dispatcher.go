package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bookstore/internal/client/credentials"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/netx"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 30 * time.Second

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-Id"

	contentTypeJSON = "application/json"
	maxErrorBody    = 64 << 10
)

// Dispatcher is the single HTTP configuration shared by every call to the
// bookstore service. It is also the http.RoundTripper of its own client:
// each outgoing request gets the default headers and, when the credential
// store holds a token, an "Authorization: Bearer <token>" header read at
// send time. A 401 answer runs the unauthorized hook before the response
// is handed back to the caller.
type Dispatcher struct {
	baseURL *url.URL
	store   credentials.Store
	next    http.RoundTripper
	hc      *http.Client
	timeout time.Duration
	logger  logging.Logger

	mu             sync.RWMutex
	defaults       http.Header
	onUnauthorized func(ctx context.Context)
}

type Option func(*Dispatcher)

// WithTransport replaces the network transport under the dispatcher.
func WithTransport(rt http.RoundTripper) Option {
	return func(d *Dispatcher) { d.next = rt }
}

func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func NewDispatcher(baseURL string, store credentials.Store, opts ...Option) (*Dispatcher, error) {
	u, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		baseURL:  u,
		store:    store,
		next:     http.DefaultTransport,
		timeout:  DefaultTimeout,
		logger:   logging.Discard(),
		defaults: http.Header{},
	}
	d.defaults.Set(headerContentType, contentTypeJSON)
	d.defaults.Set("Accept", contentTypeJSON)

	for _, opt := range opts {
		opt(d)
	}

	// No cookie jar: the service is addressed with bearer tokens only.
	d.hc = &http.Client{Transport: d, Timeout: d.timeout}
	return d, nil
}

// NormalizeBaseURL defaults an empty value, adds a missing http:// scheme
// and strips trailing slashes.
func NormalizeBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u, nil
}

func (d *Dispatcher) BaseURL() string {
	return d.baseURL.String()
}

// URL resolves path against the base URL. Absolute URLs pass through.
func (d *Dispatcher) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return d.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

// SetAuthorization installs the default bearer header.
func (d *Dispatcher) SetAuthorization(token string) {
	d.mu.Lock()
	d.defaults.Set(headerAuthorization, "Bearer "+token)
	d.mu.Unlock()
}

func (d *Dispatcher) ClearAuthorization() {
	d.mu.Lock()
	d.defaults.Del(headerAuthorization)
	d.mu.Unlock()
}

// Authorization returns the default Authorization header value, if any.
func (d *Dispatcher) Authorization() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.defaults.Get(headerAuthorization)
}

// OnUnauthorized registers the teardown run on every 401 answer. Without a
// hook the dispatcher clears the credential store and its default header.
func (d *Dispatcher) OnUnauthorized(fn func(ctx context.Context)) {
	d.mu.Lock()
	d.onUnauthorized = fn
	d.mu.Unlock()
}

func (d *Dispatcher) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	hasBody := out.Body != nil && out.Body != http.NoBody
	d.mu.RLock()
	for k, vs := range d.defaults {
		if k == headerContentType && !hasBody {
			continue
		}
		if out.Header.Get(k) != "" {
			continue
		}
		for _, v := range vs {
			out.Header.Add(k, v)
		}
	}
	d.mu.RUnlock()

	sess, err := d.store.Get(ctx)
	hadToken := err == nil && sess.Valid()
	if err != nil {
		d.logger.Warn(ctx, "read credentials", "error", err)
	} else if hadToken {
		out.Header.Set(headerAuthorization, "Bearer "+sess.Token)
	}

	if out.Header.Get(headerRequestID) == "" {
		out.Header.Set(headerRequestID, uuid.NewString())
	}

	log := d.logger.With("method", out.Method, "path", out.URL.Path, "request_id", out.Header.Get(headerRequestID))
	start := time.Now()

	resp, err := d.next.RoundTrip(out)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		if hadToken {
			log.Warn(ctx, "unauthorized response, ending session")
		} else {
			log.Debug(ctx, "unauthorized response without a session")
		}
		d.unauthorized(ctx)
	}
	return resp, nil
}

func (d *Dispatcher) unauthorized(ctx context.Context) {
	d.mu.RLock()
	fn := d.onUnauthorized
	d.mu.RUnlock()

	if fn != nil {
		fn(ctx)
		return
	}

	if err := d.store.Clear(ctx); err != nil {
		d.logger.Error(ctx, "clear credentials", "error", err)
	}
	d.ClearAuthorization()
}

// Do sends a request and decodes a JSON answer into out (when non-nil).
// body is nil, a *netx.Form (sent as multipart/form-data) or any value
// encoded as JSON.
func (d *Dispatcher) Do(ctx context.Context, method, path string, body, out any) error {
	var (
		rdr         io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case *netx.Form:
		r, ct, err := b.Encode()
		if err != nil {
			return fmt.Errorf("encode form: %w", err)
		}
		rdr, contentType = r, ct
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.URL(path), rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}

	resp, err := d.hc.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// Ping checks that the service answers on its root path.
func (d *Dispatcher) Ping(ctx context.Context) error {
	return d.Do(ctx, http.MethodGet, "/", nil, nil)
}

func mapTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: request canceled: %w", ErrUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: request timed out: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Error
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
	}
	return apiErr
}
