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

import "errors"

// ErrorKind classifies a bridge failure
type ErrorKind int

const (
	// KindArgumentShape means key material was passed in a shape the bridge cannot serialize.
	// It is raised before any process is started.
	KindArgumentShape ErrorKind = iota + 1

	// KindProcessFailure means the engine exited nonzero or could not be started
	KindProcessFailure

	// KindProtocolViolation means the engine exited 0 but stdout was not a JSON object
	KindProtocolViolation
)

// String returns the label used in logs and metrics
func (k ErrorKind) String() string {
	switch k {
	case KindArgumentShape:
		return "argument_shape"
	case KindProcessFailure:
		return "process_failure"
	case KindProtocolViolation:
		return "protocol_violation"
	default:
		return "unknown"
	}
}

// Failure message sources
const (
	SourceStderr = "stderr"
	SourceStdout = "stdout"
	SourceLaunch = "launch"
	SourceStatus = "status"
)

var (
	// ErrArgumentShape matches any *Error of kind KindArgumentShape
	ErrArgumentShape = errors.New("vestauth: unsupported key material")

	// ErrProcessFailure matches any *Error of kind KindProcessFailure
	ErrProcessFailure = errors.New("vestauth: engine failed")

	// ErrProtocolViolation matches any *Error of kind KindProtocolViolation
	ErrProtocolViolation = errors.New("vestauth: engine output is not a JSON object")
)

// Error is the only error type the bridge returns.
// Error() is the bare diagnostic text so callers see exactly what the engine printed.
type Error struct {
	Kind    ErrorKind
	Message string

	// Field names the offending argument for KindArgumentShape
	Field string

	// Source is where Message came from for KindProcessFailure
	Source string

	// ExitCode is the engine's exit status, -1 when it never ran
	ExitCode int

	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an *Error against the package sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrArgumentShape:
		return e.Kind == KindArgumentShape
	case ErrProcessFailure:
		return e.Kind == KindProcessFailure
	case ErrProtocolViolation:
		return e.Kind == KindProtocolViolation
	}
	return false
}
