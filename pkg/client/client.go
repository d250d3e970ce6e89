// Copyright (C) 2025 SAGE-X Project
//
// This file is part of vestauth-go.
//
// vestauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vestauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with vestauth-go.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/vestauth/vestauth-go/pkg/agent"
)

// Client is an HTTP client that signs every request as one agent
type Client struct {
	id         string
	privateJWK any
	signer     agent.Signer
	httpClient *http.Client
}

// NewClient creates a client that signs as the agent id with privateJWK.
// A nil signer uses agent.New(nil); a nil httpClient uses http.DefaultClient.
func NewClient(id string, privateJWK any, signer agent.Signer, httpClient *http.Client) *Client {
	if signer == nil {
		signer = agent.New(nil)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		id:         id,
		privateJWK: privateJWK,
		signer:     signer,
		httpClient: httpClient,
	}
}

// Do signs req and sends it
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := c.signer.SignRequest(ctx, req, c.privateJWK, c.id); err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return resp, nil
}

// Post sends a signed POST request with a JSON body
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Get sends a signed GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.Do(ctx, req)
}

// ID returns the agent uid the client signs as
func (c *Client) ID() string {
	return c.id
}
