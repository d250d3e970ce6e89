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

// Package primitives verifies a raw HTTP message signature against a known
// public key, without resolving the signer's identity.
package primitives

import (
	"context"

	"github.com/vestauth/vestauth-go/pkg/binary"
)

// VerifyInput is the signature material and key to check it against
type VerifyInput struct {
	HTTPMethod string
	URI        string

	// SignatureHeader is the value of the Signature header
	SignatureHeader string

	// SignatureInputHeader is the value of the Signature-Input header
	SignatureInputHeader string

	// PublicJWK accepts the same shapes as agent private keys
	PublicJWK any
}

// Primitives runs `vestauth primitives verify`
type Primitives struct {
	binary *binary.Binary
}

// New creates a Primitives. A nil b uses binary.New().
func New(b *binary.Binary) *Primitives {
	if b == nil {
		b = binary.New()
	}
	return &Primitives{binary: b}
}

// Verify checks in.SignatureHeader against in.PublicJWK.
// A {"success": false} result is returned without error.
func (p *Primitives) Verify(ctx context.Context, in VerifyInput) (binary.Result, error) {
	return p.binary.PrimitivesVerify(ctx, in.HTTPMethod, in.URI, in.SignatureHeader, in.SignatureInputHeader, in.PublicJWK)
}
