// Package iplookup resolves the server's public IP for submission
// telemetry through an external HTTP service.
package iplookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"leadcapture_backend/internal/forms/ports"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/logger"
)

// Unknown is recorded when the lookup cannot produce an address.
const Unknown = "unknown"

// Client calls an ipify-compatible endpoint ({"ip": "..."}).
type Client struct {
	url     string
	httpc   *http.Client
	timeout timeoutFn
	log     *logger.Logger
}

type timeoutFn func(ctx context.Context) (context.Context, context.CancelFunc)

// New builds a lookup client with the configured endpoint and timeout.
// The timeout bounds every call; a slow lookup service must never stall
// a submission.
func New(cfg config.LookupConfig, log *logger.Logger) *Client {
	timeout := cfg.GetIPLookupTimeout()
	return &Client{
		url:   cfg.GetIPLookupURL(),
		httpc: &http.Client{Timeout: timeout},
		timeout: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, timeout)
		},
		log: log,
	}
}

// Lookup returns the public IP, or "unknown" on any failure. It never
// returns an error; degradation is logged and absorbed here.
func (c *Client) Lookup(ctx context.Context) string {
	ctx, cancel := c.timeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.log.LookupDegraded("iplookup", err)
		return Unknown
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.LookupDegraded("iplookup", err)
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.log.LookupDegraded("iplookup", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return Unknown
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.LookupDegraded("iplookup", err)
		return Unknown
	}
	if body.IP == "" {
		c.log.LookupDegraded("iplookup", errEmptyAddress)
		return Unknown
	}
	return body.IP
}

var errEmptyAddress = errors.New("empty address in response")

var _ ports.IPLookup = (*Client)(nil)
