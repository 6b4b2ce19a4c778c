// Package ecfr talks to the public eCFR versioner API.
package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	versionsPath       = "/api/versioner/v1/versions/title-%d.json"
	defaultBaseBackoff = time.Second
	maxBodySize        = 64 << 20
)

// ErrUnavailable marks failures that survived every retry.
var ErrUnavailable = errors.New("eCFR API unavailable")

type VersionsResponse struct {
	ContentVersions []model.VersionEntry `json:"content_versions"`
	Meta            json.RawMessage      `json:"meta,omitempty"`
}

type VersionsClient interface {
	// Versions returns the parsed entries and the raw payload.
	Versions(ctx context.Context, titleNumber int) ([]model.VersionEntry, []byte, error)
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// Make sure we conform to VersionsClient interface
var _ VersionsClient = (*Client)(nil)

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.Ecfr.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.EcfrTimeout()},
		maxRetries:  cfg.Ecfr.MaxRetries,
		baseBackoff: defaultBaseBackoff,
	}
}

func (c *Client) WithBackoff(d time.Duration) *Client {
	c.baseBackoff = d
	return c
}

func (c *Client) Versions(ctx context.Context, titleNumber int) ([]model.VersionEntry, []byte, error) {
	url := c.baseURL + fmt.Sprintf(versionsPath, titleNumber)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff << (attempt - 1)
			zap.S().Named("ecfr").Debugw("retrying versions request", "title", titleNumber, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retry, err := c.get(ctx, url)
		if err == nil {
			var resp VersionsResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, nil, errors.Wrapf(err, "failed to decode versions of title %d", titleNumber)
			}
			return resp.ContentVersions, body, nil
		}
		if !retry || ctx.Err() != nil {
			return nil, nil, err
		}
		lastErr = err
	}
	return nil, nil, errors.Wrapf(ErrUnavailable, "title %d after %d attempts: %v", titleNumber, c.maxRetries+1, lastErr)
}

// get performs one request. retry reports whether the failure is transient.
func (c *Client) get(ctx context.Context, url string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrapf(err, "GET %s", url)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, true, errors.Wrapf(err, "failed to read %s", url)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, errors.Errorf("GET %s: status %d", url, resp.StatusCode)
	default:
		return nil, false, errors.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
}
