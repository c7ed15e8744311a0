// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package redfish performs out-of-band operations against BMC
// endpoints over the Redfish REST API. The client speaks HTTPS with
// certificate verification disabled — BMCs ship self-signed
// certificates — and authenticates every request with the target
// record's basic-auth credentials.
package redfish

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Default request timeouts. Power and status calls return quickly;
// firmware uploads stream the whole package to the BMC's update
// service and need far longer.
const (
	DefaultTimeout = 30 * time.Second
	UploadTimeout  = 5 * time.Minute
)

// Client issues Redfish requests to fleet targets. The zero value is
// not usable; construct with NewClient.
type Client struct {
	http    *http.Client
	timeout time.Duration
	scheme  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient returns a Client ready to talk to BMCs.
func NewClient(options ...Option) *Client {
	client := &Client{
		http: &http.Client{
			Transport: &http.Transport{
				// BMC management controllers present self-signed
				// certificates; verification is disabled as it is in
				// every Redfish tool that talks to them.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		timeout: DefaultTimeout,
		scheme:  "https",
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// url builds the request URL for a target address and Redfish path.
func (c *Client) url(address, path string) string {
	return fmt.Sprintf("%s://%s%s", c.scheme, address, path)
}

// StatusError reports a Redfish request that reached the BMC but came
// back with a non-success status.
type StatusError struct {
	Address string
	Path    string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d from %s%s: %s", e.Status, e.Address, e.Path, e.Body)
	}
	return fmt.Sprintf("HTTP %d from %s%s", e.Status, e.Address, e.Path)
}

// accepted reports whether the BMC acknowledged the request. Redfish
// actions return 200, 202 (async task created), or 204.
func accepted(status int) bool {
	return status == http.StatusOK || status == http.StatusAccepted || status == http.StatusNoContent
}

// postAction sends a JSON action payload and verifies acknowledgment.
func (c *Client) postAction(ctx context.Context, record target.Record, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding action payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(record.Address, path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.SetBasicAuth(record.Username, record.Password)

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", record.Address, err)
	}
	defer response.Body.Close()

	if !accepted(response.StatusCode) {
		return &StatusError{
			Address: record.Address,
			Path:    path,
			Status:  response.StatusCode,
			Body:    bodyExcerpt(response.Body),
		}
	}
	return nil
}

// get fetches a Redfish resource and decodes it into out.
func (c *Client) get(ctx context.Context, record target.Record, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(record.Address, path), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	request.SetBasicAuth(record.Username, record.Password)

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("querying %s: %w", record.Address, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &StatusError{
			Address: record.Address,
			Path:    path,
			Status:  response.StatusCode,
			Body:    bodyExcerpt(response.Body),
		}
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s%s: %w", record.Address, path, err)
	}
	return nil
}

// bodyExcerpt reads a bounded amount of an error response body for
// diagnostics. BMC error documents are small; the bound guards
// against pathological responses.
func bodyExcerpt(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(data))
}
