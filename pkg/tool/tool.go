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

package tool

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vestauth/vestauth-go/pkg/binary"
)

// Verifier checks the signature on an inbound request
type Verifier interface {
	// Verify checks the signature headers found in headers for the given request line
	Verify(ctx context.Context, httpMethod, uri string, headers map[string]string) (binary.Result, error)

	// VerifyRequest checks the signature headers of req
	VerifyRequest(ctx context.Context, req *http.Request) (binary.Result, error)
}

// Tool implements Verifier on top of the vestauth engine
type Tool struct {
	binary *binary.Binary
}

// Provider is the older name for Tool
type Provider = Tool

// New creates a Tool. A nil b uses binary.New().
func New(b *binary.Binary) *Tool {
	if b == nil {
		b = binary.New()
	}
	return &Tool{binary: b}
}

// NewProvider is New under its older name
func NewProvider(b *binary.Binary) *Provider {
	return New(b)
}

// Verify runs `vestauth tool verify` with the signature fields found in headers.
// Missing fields are sent as empty strings; the engine decides whether that is an error.
func (t *Tool) Verify(ctx context.Context, httpMethod, uri string, headers map[string]string) (binary.Result, error) {
	return t.VerifySignature(ctx, httpMethod, uri, ExtractSignatureHeaders(headers))
}

// VerifyRequest verifies an incoming server request.
// The URI passed to the engine is the absolute URL the client addressed.
func (t *Tool) VerifyRequest(ctx context.Context, req *http.Request) (binary.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	return t.VerifySignature(ctx, req.Method, RequestURI(req), FromHTTPHeader(req.Header))
}

// VerifySignature runs `vestauth tool verify` with already extracted headers
func (t *Tool) VerifySignature(ctx context.Context, httpMethod, uri string, sig SignatureHeaders) (binary.Result, error) {
	return t.binary.ToolVerify(ctx, binary.ToolVerifyArgs{
		HTTPMethod:     httpMethod,
		URI:            uri,
		Signature:      sig.Signature,
		SignatureInput: sig.SignatureInput,
		SignatureAgent: sig.SignatureAgent,
	})
}

// RequestURI rebuilds the absolute URL of a server-side request.
// Server requests carry only the path, so scheme and host come from the
// connection and the Host header.
func RequestURI(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	if req.URL.IsAbs() {
		return req.URL.String()
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     req.Host,
		Path:     req.URL.Path,
		RawPath:  req.URL.RawPath,
		RawQuery: req.URL.RawQuery,
	}
	return u.String()
}
