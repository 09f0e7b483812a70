// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/arxivtools/a2p/internal/config"
)

const (
	// DefaultBaseURL is the public arXiv site.
	DefaultBaseURL = "https://arxiv.org"

	// arXiv serves some endpoints differently to non-browser agents.
	userAgent = "Mozilla/5.0"

	// defaultMaxAttempts bounds transient-failure retries per request,
	// overridable with a "retries" config key.
	defaultMaxAttempts = 3

	requestTimeout = 30 * time.Second
)

// Client talks to arXiv: an availability probe against the format page and
// the e-print download itself. The zero value is not usable; call NewClient.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	MaxAttempts int
}

func NewClient() *Client {
	attempts, _ := config.GetInt("retries", defaultMaxAttempts)
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		BaseURL:     DefaultBaseURL,
		HTTPClient:  &http.Client{Timeout: requestTimeout},
		MaxAttempts: attempts,
	}
}

// SourceAvailable reports whether TeX source files exist for the paper by
// checking its format page. Side-effect free; no archive is transferred.
func (c *Client) SourceAvailable(ctx context.Context, arxivID string) (bool, error) {
	body, err := c.get(ctx, "/format/"+arxivID)
	if err != nil {
		return false, fmt.Errorf("check source availability for %s: %w", arxivID, err)
	}
	return strings.Contains(string(body), "Download source"), nil
}

// FetchSource downloads the raw e-print archive for the paper. The URL
// never pins a version, so the latest revision is always fetched.
func (c *Client) FetchSource(ctx context.Context, arxivID string) ([]byte, error) {
	data, err := c.get(ctx, "/e-print/"+arxivID)
	if err != nil {
		return nil, fmt.Errorf("download source for %s: %w", arxivID, err)
	}
	log.Debugf("downloaded %s e-print (%s)", arxivID, humanize.Bytes(uint64(len(data))))
	return data, nil
}

// get issues a GET with the browser user agent, retrying transport errors
// and 5xx responses up to maxAttempts.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.BaseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * 500 * time.Millisecond):
			}
			log.Debugf("retrying GET %s (attempt %d)", url, attempt)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("GET %s: %s", url, resp.Status)
			continue
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		case readErr != nil:
			lastErr = fmt.Errorf("GET %s: read body: %w", url, readErr)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}
