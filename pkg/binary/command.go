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

package binary

import (
	"fmt"
	"strings"
)

// Operation is one of the engine subcommands the bridge can run
type Operation int

const (
	OperationAgentHeaders Operation = iota + 1
	OperationToolVerify
	OperationPrimitivesVerify
)

// Segments returns the subcommand path passed right after the executable
func (o Operation) Segments() []string {
	switch o {
	case OperationAgentHeaders:
		return []string{"agent", "headers"}
	case OperationToolVerify:
		return []string{"tool", "verify"}
	case OperationPrimitivesVerify:
		return []string{"primitives", "verify"}
	default:
		return nil
	}
}

func (o Operation) String() string {
	segments := o.Segments()
	if segments == nil {
		return "unknown"
	}
	return strings.Join(segments, " ")
}

// Engine flag names
const (
	FlagPrivateJWK     = "--private-jwk"
	FlagUID            = "--uid"
	FlagSignature      = "--signature"
	FlagSignatureInput = "--signature-input"
	FlagSignatureAgent = "--signature-agent"
	FlagPublicJWK      = "--public-jwk"
)

// AgentHeadersArgs are the inputs of `agent headers`. PrivateJWK is JSON text.
type AgentHeadersArgs struct {
	HTTPMethod string
	URI        string
	PrivateJWK string
	UID        string
}

// ToolVerifyArgs are the inputs of `tool verify`
type ToolVerifyArgs struct {
	HTTPMethod     string
	URI            string
	Signature      string
	SignatureInput string
	SignatureAgent string
}

// PrimitivesVerifyArgs are the inputs of `primitives verify`. PublicJWK is JSON text.
type PrimitivesVerifyArgs struct {
	HTTPMethod     string
	URI            string
	Signature      string
	SignatureInput string
	PublicJWK      string
}

// Command is a single engine invocation. It is never modified after BuildCommand returns.
type Command struct {
	op   Operation
	argv []string
}

// Operation returns the operation this command runs
func (c Command) Operation() Operation {
	return c.op
}

// Path returns the executable name or path
func (c Command) Path() string {
	if len(c.argv) == 0 {
		return ""
	}
	return c.argv[0]
}

// Args returns a copy of the full argument vector, executable first
func (c Command) Args() []string {
	out := make([]string, len(c.argv))
	copy(out, c.argv)
	return out
}

// BuildCommand assembles the argument vector for op.
// args must be the *Args struct matching op. Empty fields stay in place as
// empty strings.
func BuildCommand(executable string, op Operation, args any) (Command, error) {
	var (
		tail []string
		want Operation
	)

	switch a := args.(type) {
	case AgentHeadersArgs:
		tail, want = agentHeadersTail(a), OperationAgentHeaders
	case ToolVerifyArgs:
		tail, want = toolVerifyTail(a), OperationToolVerify
	case PrimitivesVerifyArgs:
		tail, want = primitivesVerifyTail(a), OperationPrimitivesVerify
	default:
		return Command{}, fmt.Errorf("unsupported arguments %T", args)
	}

	if want != op {
		return Command{}, fmt.Errorf("arguments %T do not match operation %q", args, op)
	}

	segments := op.Segments()
	argv := make([]string, 0, 1+len(segments)+len(tail))
	argv = append(argv, executable)
	argv = append(argv, segments...)
	argv = append(argv, tail...)

	return Command{op: op, argv: argv}, nil
}

func agentHeadersTail(a AgentHeadersArgs) []string {
	return []string{
		a.HTTPMethod,
		a.URI,
		FlagPrivateJWK, a.PrivateJWK,
		FlagUID, a.UID,
	}
}

func toolVerifyTail(a ToolVerifyArgs) []string {
	return []string{
		a.HTTPMethod,
		a.URI,
		FlagSignature, a.Signature,
		FlagSignatureInput, a.SignatureInput,
		FlagSignatureAgent, a.SignatureAgent,
	}
}

func primitivesVerifyTail(a PrimitivesVerifyArgs) []string {
	return []string{
		a.HTTPMethod,
		a.URI,
		FlagSignature, a.Signature,
		FlagSignatureInput, a.SignatureInput,
		FlagPublicJWK, a.PublicJWK,
	}
}
