package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

const timeout = time.Second * 15

var ErrFailedCloseResponseBody = errors.New("failed close response body")

type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   3 * time.Second,
	}
}

// ShouldRetry reports whether a GET attempt is worth repeating: transport errors,
// rate limiting and gateway-side failures.
func ShouldRetry(statusCode int, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

type response struct {
	statusCode int
	body       []byte
	headers    http.Header
}

func newExecutor(cfg RetryConfig) failsafe.Executor[*response] {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	policy := retrypolicy.NewBuilder[*response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(resp *response, err error) bool {
			if resp == nil {
				return ShouldRetry(0, err)
			}
			return ShouldRetry(resp.statusCode, err)
		}).
		Build()
	return failsafe.With[*response](policy)
}

type HTTPClientAdapter struct {
	client   *http.Client
	executor failsafe.Executor[*response]
}

func (h *HTTPClientAdapter) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

// Get performs a GET with retries. When retries run out on a retryable status the last
// response is returned as is, so callers still branch on statusCode.
func (h *HTTPClientAdapter) Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error) {
	resp, err := h.executor.WithContext(ctx).Get(func() (*response, error) {
		return h.get(ctx, url, headers)
	})
	if resp != nil {
		return resp.statusCode, resp.body, resp.headers, nil
	}
	return 0, nil, nil, err
}

func (h *HTTPClientAdapter) get(ctx context.Context, url string, headers http.Header) (_ *response, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	if headers != nil {
		req.Header = headers.Clone()
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			err = errors.Join(err, ErrFailedCloseResponseBody)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &response{statusCode: resp.StatusCode, body: body, headers: resp.Header}, nil
}

type HTTPClient struct {
	client HTTPClientI
}

func NewHTTPClient(cfg RetryConfig) *HTTPClient {
	return &HTTPClient{
		client: &HTTPClientAdapter{
			client:   &http.Client{Timeout: timeout},
			executor: newExecutor(cfg),
		},
	}
}

func (h *HTTPClient) Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error) {
	return h.client.Get(ctx, url, headers)
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *HTTPClient) SetClient(mock HTTPClientI) {
	h.client = mock
}
