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
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// DefaultExecutable is the engine looked up on PATH when none is configured
const DefaultExecutable = "vestauth"

// Observer is told about every engine run. outcome is "success" or an ErrorKind label.
type Observer interface {
	ObserveInvocation(op Operation, outcome string, elapsed time.Duration)
}

// Binary runs engine commands and parses their output.
// All fields are set at construction, so one Binary may be shared between goroutines.
type Binary struct {
	executable string
	invoker    Invoker
	logger     zerolog.Logger
	observer   Observer
}

// Option configures a Binary
type Option func(*Binary)

// WithExecutable sets the engine name or path. An empty value keeps the default.
func WithExecutable(executable string) Option {
	return func(b *Binary) {
		if executable != "" {
			b.executable = executable
		}
	}
}

// WithInvoker replaces the process runner, mainly for tests
func WithInvoker(invoker Invoker) Option {
	return func(b *Binary) {
		if invoker != nil {
			b.invoker = invoker
		}
	}
}

// WithLogger sets the logger used for per-run debug lines
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Binary) {
		b.logger = logger
	}
}

// WithObserver reports each run to observer
func WithObserver(observer Observer) Option {
	return func(b *Binary) {
		b.observer = observer
	}
}

// New creates a Binary that runs DefaultExecutable through an ExecInvoker
// unless options say otherwise
func New(opts ...Option) *Binary {
	b := &Binary{
		executable: DefaultExecutable,
		invoker:    NewExecInvoker(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Executable returns the configured engine name or path
func (b *Binary) Executable() string {
	return b.executable
}

// AgentHeaders runs `agent headers` and returns the header fields to attach to the request.
// privateJWK may be any shape SerializeKey accepts.
func (b *Binary) AgentHeaders(ctx context.Context, httpMethod, uri string, privateJWK any, uid string) (Result, error) {
	jwk, err := SerializeKey(privateJWK, "private_jwk")
	if err != nil {
		return nil, err
	}

	return b.run(ctx, OperationAgentHeaders, AgentHeadersArgs{
		HTTPMethod: httpMethod,
		URI:        uri,
		PrivateJWK: jwk,
		UID:        uid,
	})
}

// ToolVerify runs `tool verify`. Missing header values are passed as empty
// strings and left for the engine to reject.
func (b *Binary) ToolVerify(ctx context.Context, args ToolVerifyArgs) (Result, error) {
	return b.run(ctx, OperationToolVerify, args)
}

// ProviderVerify is ToolVerify under its older name
func (b *Binary) ProviderVerify(ctx context.Context, args ToolVerifyArgs) (Result, error) {
	return b.ToolVerify(ctx, args)
}

// PrimitivesVerify runs `primitives verify`. publicJWK may be any shape SerializeKey accepts.
func (b *Binary) PrimitivesVerify(ctx context.Context, httpMethod, uri, signature, signatureInput string, publicJWK any) (Result, error) {
	jwk, err := SerializeKey(publicJWK, "public_jwk")
	if err != nil {
		return nil, err
	}

	return b.run(ctx, OperationPrimitivesVerify, PrimitivesVerifyArgs{
		HTTPMethod:     httpMethod,
		URI:            uri,
		Signature:      signature,
		SignatureInput: signatureInput,
		PublicJWK:      jwk,
	})
}

func (b *Binary) run(ctx context.Context, op Operation, args any) (Result, error) {
	cmd, err := BuildCommand(b.executable, op, args)
	if err != nil {
		return nil, err
	}
	return b.Run(ctx, cmd)
}

// Run invokes a prepared command and parses its outcome
func (b *Binary) Run(ctx context.Context, cmd Command) (Result, error) {
	start := time.Now()
	outcome := b.invoker.Invoke(ctx, cmd)
	elapsed := time.Since(start)

	result, err := ParseOutcome(outcome)

	label := "success"
	var bridgeErr *Error
	if errors.As(err, &bridgeErr) {
		label = bridgeErr.Kind.String()
	}

	if b.observer != nil {
		b.observer.ObserveInvocation(cmd.Operation(), label, elapsed)
	}

	// argument values carry keys and signatures, so only metadata is logged
	b.logger.Debug().
		Str("executable", cmd.Path()).
		Stringer("operation", cmd.Operation()).
		Int("exit_code", outcome.ExitCode).
		Dur("elapsed", elapsed).
		Str("outcome", label).
		Msg("vestauth command finished")

	return result, err
}
