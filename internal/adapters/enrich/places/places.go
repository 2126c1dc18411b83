// Package places resolves a business website from its Google Place ID by
// driving a headless Chrome through the public maps place page
package places

import (
	"context"
	"fmt"
	"sync"
	"time"

	perr "shopfeed/internal/platform/errors"
	"shopfeed/internal/platform/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

const (
	placeURLFormat = "https://www.google.com/maps/place/?q=place_id:%s"

	// the maps page renders the website link as an "authority" item
	websiteSelector = `a[data-item-id="authority"]`
)

// Config configures the browser-backed resolver
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher
	RemoteURL string

	// NavTimeout bounds navigation plus render per lookup. Default: 30s
	NavTimeout time.Duration

	// FindTimeout bounds the wait for the website element once the page
	// is loaded. Absence after this window means the place has no website
	// on record. Default: 5s
	FindTimeout time.Duration
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.FindTimeout <= 0 {
		c.FindTimeout = 5 * time.Second
	}
}

// Client drives one Chrome instance for place lookups.
// Safe for sequential use; lookups share the browser but open their own tab
type Client struct {
	cfg  Config
	log  *logger.Logger
	mu   sync.Mutex
	b    *rod.Browser
	lnch *launcher.Launcher
}

// New creates a Client. Chrome is launched lazily on first lookup
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg, log: logger.Named("places")}
}

// WebsiteByPlaceID navigates to the maps place page for placeID and reads the
// website link. A place with no website on record returns ("", nil); transport
// and browser failures return an error
func (c *Client) WebsiteByPlaceID(ctx context.Context, placeID string) (string, error) {
	if placeID == "" {
		return "", perr.InvalidArgf("places: empty place id")
	}

	b, err := c.browser()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "places: create tab")
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("places: close tab")
		}
	}()

	url := fmt.Sprintf(placeURLFormat, placeID)

	navCtx, cancel := context.WithTimeout(ctx, c.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "places: navigate %s", url)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		c.log.Warn().Str("place_id", placeID).Err(err).Msg("places: wait load timeout")
	}

	findCtx, cancel := context.WithTimeout(ctx, c.cfg.FindTimeout)
	defer cancel()

	el, err := page.Context(findCtx).Element(websiteSelector)
	if err != nil {
		// no website link on the place page
		return "", nil
	}
	href, err := el.Attribute("href")
	if err != nil || href == nil {
		return "", nil
	}
	return *href, nil
}

// Close shuts down Chrome if it was launched
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.b == nil {
		return nil
	}
	err := c.b.Close()
	if c.lnch != nil {
		c.lnch.Cleanup()
	}
	c.b, c.lnch = nil, nil
	return err
}

// browser returns the shared Chrome handle, launching it on first use
func (c *Client) browser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.b != nil {
		return c.b, nil
	}

	wsURL := c.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "places: launch chrome")
		}
		wsURL = u
		c.lnch = l
		c.log.Info().Str("ws_url", wsURL).Msg("places: launched local chrome")
	} else {
		c.log.Info().Str("ws_url", wsURL).Msg("places: connecting to remote chrome")
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "places: connect chrome")
	}
	c.b = b
	return c.b, nil
}
