// Package webpage fetches a website and flattens its markup to visible text
package webpage

import (
	"context"
	"net/http"
	"strings"
	"time"

	perr "shopfeed/internal/platform/errors"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds one page fetch end to end
const DefaultTimeout = 10 * time.Second

// Client fetches pages over plain HTTP
type Client struct {
	http *http.Client
}

// New creates a Client with the given per-request timeout
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// PageText fetches url and returns the page's text content with markup
// stripped. Scraped website values often lack a scheme; http:// is assumed
func (c *Client) PageText(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", perr.InvalidArgf("webpage: empty url")
	}
	if !strings.HasPrefix(url, "http") {
		url = "http://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "webpage: build request %s", url)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "webpage: fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", perr.Unavailablef("webpage: status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeParse, "webpage: parse %s", url)
	}
	return doc.Text(), nil
}
