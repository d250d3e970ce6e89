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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Outcome is everything the bridge learns from one engine run
type Outcome struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int

	// LaunchErr is set when the process could not be started or waited on.
	// ExitCode is -1 in that case.
	LaunchErr error
}

// Success reports whether the engine ran and exited 0. Output content is not consulted.
func (o Outcome) Success() bool {
	return o.LaunchErr == nil && o.ExitCode == 0
}

// Invoker runs a Command and reports how it ended
type Invoker interface {
	Invoke(ctx context.Context, cmd Command) Outcome
}

// InvokerFunc adapts a function to Invoker
type InvokerFunc func(ctx context.Context, cmd Command) Outcome

// Invoke calls f(ctx, cmd)
func (f InvokerFunc) Invoke(ctx context.Context, cmd Command) Outcome {
	return f(ctx, cmd)
}

// ExecInvoker starts the engine directly with os/exec. No shell is involved,
// so every argument reaches the engine as one argv entry.
type ExecInvoker struct {
	// Env, when non-nil, replaces the inherited environment
	Env []string

	// Dir is the working directory, empty for the current one
	Dir string
}

// NewExecInvoker creates an ExecInvoker that inherits the environment
func NewExecInvoker() *ExecInvoker {
	return &ExecInvoker{}
}

// Invoke runs cmd and waits for it to exit. The process is always reaped before returning.
func (e *ExecInvoker) Invoke(ctx context.Context, cmd Command) Outcome {
	argv := cmd.Args()
	if len(argv) == 0 || argv[0] == "" {
		return Outcome{ExitCode: -1, LaunchErr: errors.New("no executable configured")}
	}

	var stdout, stderr bytes.Buffer

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Env = e.Env
	c.Dir = e.Dir

	err := c.Run()

	out := Outcome{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.ExitCode = 0
	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		out.ExitCode = exitErr.ExitCode()
	default:
		// not found, permission denied, or killed by a signal
		out.ExitCode = -1
		out.LaunchErr = fmt.Errorf("run %s: %w", argv[0], err)
	}

	return out
}
