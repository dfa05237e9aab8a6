// Package leadersapi provides the session manager and fetcher for the
// country-leaders API.
package leadersapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"

	"leaderswiki/internal/config"
	"leaderswiki/internal/logger"
	"leaderswiki/pkg/utils"
)

// Upstream errors.
var (
	// ErrUpstreamUnavailable indicates the status or cookie endpoint is
	// unreachable or returned an error. Fatal for the run.
	ErrUpstreamUnavailable = errors.New("leaders API unavailable")
	// ErrUpstreamAuth indicates a 401/403 that one cookie refresh did not
	// resolve. Fatal for the call in progress.
	ErrUpstreamAuth = errors.New("leaders API rejected session after cookie refresh")
	// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
)

const sessionUserAgent = "leaderswiki/1.0 (batch biography enrichment)"

// Session owns the HTTP client and the current authentication cookie for the
// leaders API. The cookie lives in the client's jar; Refresh replaces it in
// place so subsequent requests carry the new value automatically.
type Session struct {
	http *resty.Client
	log  *logger.Logger
}

// NewSession creates a session against the configured API base URL. The retry
// policy covers transient transport failures and retryable status codes only;
// the one-shot cookie-refresh retry on 401/403 is the fetcher's job.
func NewSession(cfg config.APIConfig, retry config.RetryPolicy, log *logger.Logger) (*Session, error) {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client.SetCookieJar(jar)
	client.SetTimeout(cfg.GetTimeout())
	client.SetHeaders(utils.DefaultHeaders(sessionUserAgent, nil))

	client.SetRetryCount(retry.MaxAttempts - 1)
	client.SetRetryWaitTime(time.Duration(retry.InitialDelayMs) * time.Millisecond)
	client.SetRetryMaxWaitTime(time.Duration(retry.MaxDelayMs) * time.Millisecond)
	client.SetRetryAfter(func(_ *resty.Client, res *resty.Response) (time.Duration, error) {
		return retry.GetRetryDelay(res.Request.Attempt + 1), nil
	})
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}

		return isRetryableStatus(r.StatusCode())
	})

	return &Session{
		http: client,
		log:  log,
	}, nil
}

// Status checks that the API is up via its status endpoint.
func (s *Session) Status(ctx context.Context) error {
	res, err := s.http.R().
		SetContext(ctx).
		Get("/status")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status endpoint returned %d", ErrUpstreamUnavailable, res.StatusCode())
	}

	s.log.Debug("leaders API is up", "status", res.StatusCode())

	return nil
}

// Cookie acquires a fresh session cookie from the cookie endpoint. The cookie
// the server sets is stored in the jar; it is also returned for inspection.
func (s *Session) Cookie(ctx context.Context) (*http.Cookie, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get("/cookie")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: cookie endpoint returned %d", ErrUpstreamUnavailable, res.StatusCode())
	}

	cookies := res.Cookies()
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: cookie endpoint set no cookie", ErrUpstreamUnavailable)
	}

	return cookies[0], nil
}

// Refresh re-acquires the session cookie, replacing the stored one. All
// subsequent API calls use the new cookie.
func (s *Session) Refresh(ctx context.Context) error {
	cookie, err := s.Cookie(ctx)
	if err != nil {
		return err
	}

	s.log.Debug("session cookie refreshed", "name", cookie.Name)

	return nil
}

// get performs one GET against the API with the current cookie.
func (s *Session) get(ctx context.Context, path string, params map[string]string) (*resty.Response, error) {
	req := s.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	return req.Get(path)
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	// Retry on temporary failures
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
