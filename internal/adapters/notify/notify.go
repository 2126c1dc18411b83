// Package notify dispatches onboarding push notifications over the FCM
// topic HTTP endpoint
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	perr "shopfeed/internal/platform/errors"
)

// Topic is the subscription topic onboarding pushes are published to
const Topic = "vendorAdd"

// Message is one topic push
type Message struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Topic    string `json:"topic"`
	Type     string `json:"type"`
	VendorID string `json:"vendorId"`
}

// Config configures the dispatcher
type Config struct {
	// Endpoint receives the JSON push payload. Empty disables dispatch
	Endpoint string

	// ServerKey is sent as the Authorization bearer token when set
	ServerKey string

	// Timeout bounds one dispatch. Default: 10s
	Timeout time.Duration
}

// Dispatcher posts push payloads to the configured endpoint
type Dispatcher struct {
	cfg  Config
	http *http.Client
}

// New creates a Dispatcher
func New(cfg Config) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Dispatcher{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// Enabled reports whether an endpoint is configured
func (d *Dispatcher) Enabled() bool { return d.cfg.Endpoint != "" }

// VendorOnboarded publishes the new-shop push for a stored vendor
func (d *Dispatcher) VendorOnboarded(ctx context.Context, name, address, vendorID string) error {
	return d.send(ctx, Message{
		Title:    "New Shop is Onboarded!!!",
		Body:     name + " is opened at " + address,
		Topic:    Topic,
		Type:     Topic,
		VendorID: vendorID,
	})
}

func (d *Dispatcher) send(ctx context.Context, m Message) error {
	if !d.Enabled() {
		return nil
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "notify: marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "notify: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.ServerKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.cfg.ServerKey)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "notify: dispatch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return perr.Unavailablef("notify: endpoint status %d", resp.StatusCode)
	}
	return nil
}
