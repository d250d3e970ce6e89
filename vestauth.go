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

// Package vestauth is the entry point to vestauth-go. A Client groups the
// agent, tool, and primitives facades over one shared engine configuration.
//
//	vc := vestauth.New(binary.WithExecutable("/usr/local/bin/vestauth"))
//
//	headers, err := vc.Agent().Headers(ctx, agent.HeadersInput{
//	    HTTPMethod: "GET",
//	    URI:        "https://api.example.com/whoami",
//	    PrivateJWK: key,
//	    ID:         "agent-123",
//	})
//
//	result, err := vc.Tool().Verify(ctx, "GET", "https://api.example.com/whoami", headers)
package vestauth

import (
	"github.com/vestauth/vestauth-go/pkg/agent"
	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/primitives"
	"github.com/vestauth/vestauth-go/pkg/tool"
)

// Client exposes every engine facade over a single Binary
type Client struct {
	binary     *binary.Binary
	agent      *agent.Agent
	tool       *tool.Tool
	primitives *primitives.Primitives
}

// New creates a Client whose facades share one Binary built from opts
func New(opts ...binary.Option) *Client {
	return NewWithBinary(binary.New(opts...))
}

// NewWithBinary creates a Client around an existing Binary. A nil b uses binary.New().
func NewWithBinary(b *binary.Binary) *Client {
	if b == nil {
		b = binary.New()
	}
	return &Client{
		binary:     b,
		agent:      agent.New(b),
		tool:       tool.New(b),
		primitives: primitives.New(b),
	}
}

// Agent returns the facade that signs outbound requests
func (c *Client) Agent() *agent.Agent {
	return c.agent
}

// Tool returns the facade that verifies inbound requests
func (c *Client) Tool() *tool.Tool {
	return c.tool
}

// Provider is the same facade as Tool
func (c *Client) Provider() *tool.Provider {
	return c.tool
}

// Primitives returns the facade that verifies against a known public key
func (c *Client) Primitives() *primitives.Primitives {
	return c.primitives
}

// Binary returns the shared engine bridge
func (c *Client) Binary() *binary.Binary {
	return c.binary
}
