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

package agent

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vestauth/vestauth-go/pkg/binary"
)

// Signer produces signature headers for an agent's outbound requests
type Signer interface {
	// Headers returns the header fields to attach to a request
	Headers(ctx context.Context, in HeadersInput) (map[string]string, error)

	// SignRequest computes the headers for req and sets them on it
	SignRequest(ctx context.Context, req *http.Request, privateJWK any, id string) error
}

// HeadersInput describes the request to sign and the identity signing it
type HeadersInput struct {
	HTTPMethod string
	URI        string

	// PrivateJWK is the agent's private key: JSON text, a map, a Mapper,
	// or a json.Marshaler such as jose.JSONWebKey
	PrivateJWK any

	// ID is the agent uid
	ID string
}

// Agent implements Signer on top of the vestauth engine
type Agent struct {
	binary *binary.Binary
}

// New creates an Agent. A nil b uses binary.New().
func New(b *binary.Binary) *Agent {
	if b == nil {
		b = binary.New()
	}
	return &Agent{binary: b}
}

// Headers runs `vestauth agent headers` and returns the resulting header fields.
// Only string values are kept; use HeadersResult for the engine output as printed.
// Engine failures are returned unchanged as *binary.Error.
func (a *Agent) Headers(ctx context.Context, in HeadersInput) (map[string]string, error) {
	result, err := a.HeadersResult(ctx, in)
	if err != nil {
		return nil, err
	}
	return result.Headers(), nil
}

// HeadersResult runs `vestauth agent headers` and returns the parsed JSON object unchanged
func (a *Agent) HeadersResult(ctx context.Context, in HeadersInput) (binary.Result, error) {
	return a.binary.AgentHeaders(ctx, in.HTTPMethod, in.URI, in.PrivateJWK, in.ID)
}

// SignRequest signs req with the agent's key.
// The request method and full URL are what gets signed.
func (a *Agent) SignRequest(ctx context.Context, req *http.Request, privateJWK any, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if req.URL == nil {
		return fmt.Errorf("request URL cannot be nil")
	}

	headers, err := a.Headers(ctx, HeadersInput{
		HTTPMethod: req.Method,
		URI:        req.URL.String(),
		PrivateJWK: privateJWK,
		ID:         id,
	})
	if err != nil {
		return err
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	return nil
}
