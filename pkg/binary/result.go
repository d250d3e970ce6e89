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
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Result is the JSON object the engine printed on success
type Result map[string]any

// String returns the value at key if it is a string
func (r Result) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Verdict reads the boolean "success" field some engine commands print.
// present is false when the field is missing or not a boolean.
func (r Result) Verdict() (ok bool, present bool) {
	v, present := r["success"].(bool)
	return v, present
}

// Headers returns the string-valued entries, which for `agent headers` are
// the header fields to attach to the outbound request
func (r Result) Headers() map[string]string {
	headers := make(map[string]string, len(r))
	for k, v := range r {
		if s, ok := v.(string); ok {
			headers[k] = s
		}
	}
	return headers
}

// ParseOutcome turns an Outcome into a Result, or an *Error when the engine
// failed or printed something that is not a JSON object.
func ParseOutcome(o Outcome) (Result, error) {
	if !o.Success() {
		return nil, failureError(o)
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(o.Stdout))
	if err := dec.Decode(&v); err != nil {
		return nil, protocolError(o, fmt.Sprintf("invalid JSON output: %v", err), err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, protocolError(o, "invalid JSON output: trailing data after value", nil)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, protocolError(o, fmt.Sprintf("expected a JSON object, got %s", jsonKind(v)), nil)
	}

	return Result(obj), nil
}

func failureError(o Outcome) *Error {
	e := &Error{
		Kind:     KindProcessFailure,
		ExitCode: o.ExitCode,
		Err:      o.LaunchErr,
	}

	if msg := strings.TrimSpace(string(o.Stderr)); msg != "" {
		e.Message, e.Source = msg, SourceStderr
		return e
	}
	if msg := strings.TrimSpace(string(o.Stdout)); msg != "" {
		e.Message, e.Source = msg, SourceStdout
		return e
	}
	if o.LaunchErr != nil {
		e.Message, e.Source = o.LaunchErr.Error(), SourceLaunch
		return e
	}

	e.Message, e.Source = fmt.Sprintf("exit status %d", o.ExitCode), SourceStatus
	return e
}

func protocolError(o Outcome, msg string, cause error) *Error {
	return &Error{
		Kind:     KindProtocolViolation,
		Message:  msg,
		ExitCode: o.ExitCode,
		Err:      cause,
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
