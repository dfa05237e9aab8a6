package leadersapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"leaderswiki/internal/logger"
	"leaderswiki/internal/models"
)

// Client fetches countries and leaders from the API through a Session.
type Client struct {
	session *Session
	log     *logger.Logger
}

// NewClient creates a fetcher on top of an established session.
func NewClient(session *Session, log *logger.Logger) *Client {
	return &Client{
		session: session,
		log:     log,
	}
}

// Countries lists the country codes the API supports, in API order.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	res, err := c.getWithAuthRetry(ctx, "/countries", nil)
	if err != nil {
		return nil, err
	}

	var countries []string
	if err := json.Unmarshal(res.Body(), &countries); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}

	return countries, nil
}

// Leaders lists the leaders of one country, in API order. An empty list is a
// valid result for a country the API knows but has no leaders for.
func (c *Client) Leaders(ctx context.Context, country string) ([]models.Leader, error) {
	res, err := c.getWithAuthRetry(ctx, "/leaders", map[string]string{"country": country})
	if err != nil {
		return nil, fmt.Errorf("leaders for %q: %w", country, err)
	}

	leaders, err := decodeLeaders(res.Body())
	if err != nil {
		return nil, fmt.Errorf("leaders for %q: %w", country, err)
	}

	return leaders, nil
}

// getWithAuthRetry performs a GET, and on 401/403 refreshes the cookie and
// retries exactly once. A second rejection, or a refresh failure, surfaces as
// ErrUpstreamAuth.
func (c *Client) getWithAuthRetry(ctx context.Context, path string, params map[string]string) (*resty.Response, error) {
	res, err := c.session.get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	if isUnauthorized(res.StatusCode()) {
		c.log.Warn("cookie rejected, refreshing session", "path", path, "status", res.StatusCode())

		if refreshErr := c.session.Refresh(ctx); refreshErr != nil {
			return nil, fmt.Errorf("%w: refresh failed: %v", ErrUpstreamAuth, refreshErr)
		}

		res, err = c.session.get(ctx, path, params)
		if err != nil {
			return nil, fmt.Errorf("request to %s failed after refresh: %w", path, err)
		}

		if isUnauthorized(res.StatusCode()) {
			return nil, fmt.Errorf("%w: %s returned %d", ErrUpstreamAuth, path, res.StatusCode())
		}
	}

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatusCode, res.StatusCode(), path)
	}

	return res, nil
}

// decodeLeaders reads the leaders payload defensively: the upstream has been
// observed returning both a bare array and an object wrapping a "leaders" key.
func decodeLeaders(body []byte) ([]models.Leader, error) {
	var leaders []models.Leader
	if err := json.Unmarshal(body, &leaders); err == nil {
		return leaders, nil
	}

	var wrapped struct {
		Leaders []models.Leader `json:"leaders"`
	}

	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode leaders payload: %w", err)
	}

	return wrapped.Leaders, nil
}

// isUnauthorized reports whether the status signals an expired or invalid
// cookie. The upstream uses 401 and 403 interchangeably for this.
func isUnauthorized(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}
