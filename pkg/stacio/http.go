package stacio

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stacgraph/stacgraph/pkg/cache"
	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/httputil"
	"github.com/stacgraph/stacgraph/pkg/stac"
)

const httpTimeout = 30 * time.Second

// HTTPIO fetches catalog documents over HTTP(S). Responses are cached
// through the configured cache backend so re-resolving a catalog does not
// hit the network twice; transient failures (network errors, 5xx) are
// retried with exponential backoff.
//
// HTTPIO is read-only: publishing to an HTTP endpoint is not supported.
type HTTPIO struct {
	client   *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	headers  map[string]string
}

// HTTPOption configures an HTTPIO.
type HTTPOption func(*HTTPIO)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPIO) { h.client = c }
}

// WithCache sets the response cache and entry TTL.
func WithCache(c cache.Cache, ttl time.Duration) HTTPOption {
	return func(h *HTTPIO) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTPIO) { h.headers[key] = value }
}

// NewHTTPIO creates an HTTP-backed document reader. Without WithCache it
// uses a null cache and fetches every document fresh.
func NewHTTPIO(opts ...HTTPOption) *HTTPIO {
	h := &HTTPIO{
		client:  &http.Client{Timeout: httpTimeout},
		cache:   cache.NewNullCache(),
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Read fetches the document at uri, serving from cache when possible.
// A 404 is a NOT_FOUND error; network failures and 5xx responses are
// retried and surface as NETWORK_ERROR when attempts are exhausted.
func (h *HTTPIO) Read(ctx context.Context, uri string) ([]byte, error) {
	key := cache.Hash([]byte(uri))
	if data, ok, err := h.cache.Get(ctx, key); err == nil && ok {
		return data, nil
	}

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		data, fetchErr = h.fetch(ctx, uri)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	_ = h.cache.Set(ctx, key, data, h.cacheTTL)
	return data, nil
}

func (h *HTTPIO) fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHref, err, "build request for %s", uri)
	}
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", uri),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "no document at %s", uri)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", uri, resp.StatusCode),
		}
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "read body of %s", uri),
		}
	}
	return data, nil
}

// Write always fails: HTTP catalogs are read-only.
func (h *HTTPIO) Write(ctx context.Context, uri string, data []byte) error {
	return errors.New(errors.ErrCodeUnsupported, "cannot write %s: HTTP catalogs are read-only", uri)
}

// Close releases the response cache.
func (h *HTTPIO) Close() error { return h.cache.Close() }

var _ stac.ReadWriter = (*HTTPIO)(nil)

// ForHref picks the backend matching an href's scheme: HTTPIO for http(s)
// URLs, FileIO for everything else.
func ForHref(href string, opts ...HTTPOption) stac.ReadWriter {
	if isHTTP(href) {
		return NewHTTPIO(opts...)
	}
	return NewFileIO()
}

func isHTTP(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
