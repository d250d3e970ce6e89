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
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockInvoker records commands and replies with a canned outcome
type mockInvoker struct {
	mu       sync.Mutex
	outcome  Outcome
	commands []Command
}

func (m *mockInvoker) Invoke(ctx context.Context, cmd Command) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
	return m.outcome
}

func (m *mockInvoker) last() Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[len(m.commands)-1]
}

// mockObserver collects observations
type mockObserver struct {
	mu       sync.Mutex
	outcomes []string
	ops      []Operation
}

func (m *mockObserver) ObserveInvocation(op Operation, outcome string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
	m.outcomes = append(m.outcomes, outcome)
}

func TestNew_Defaults(t *testing.T) {
	b := New()
	assert.Equal(t, DefaultExecutable, b.Executable())
	assert.IsType(t, &ExecInvoker{}, b.invoker)

	b = New(WithExecutable(""))
	assert.Equal(t, "vestauth", b.Executable())

	b = New(WithExecutable("/usr/local/bin/vestauth"))
	assert.Equal(t, "/usr/local/bin/vestauth", b.Executable())
}

func TestBinary_ToolVerify(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte(`{"uid":"agent-123"}`)}}
	b := New(WithInvoker(invoker))

	result, err := b.ToolVerify(context.Background(), ToolVerifyArgs{
		HTTPMethod:     "GET",
		URI:            "https://api.example.com/whoami",
		Signature:      "sig1=:abc:",
		SignatureInput: `sig1=("@method");keyid="kid-1"`,
		SignatureAgent: "sig1=agent-123.agents.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, Result{"uid": "agent-123"}, result)

	assert.Equal(t, []string{
		"vestauth", "tool", "verify",
		"GET", "https://api.example.com/whoami",
		"--signature", "sig1=:abc:",
		"--signature-input", `sig1=("@method");keyid="kid-1"`,
		"--signature-agent", "sig1=agent-123.agents.example.com",
	}, invoker.last().Args())
}

func TestBinary_ProviderVerifyUsesToolCommand(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte(`{"success":true}`)}}
	b := New(WithInvoker(invoker))

	_, err := b.ProviderVerify(context.Background(), ToolVerifyArgs{HTTPMethod: "GET"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vestauth", "tool", "verify"}, invoker.last().Args()[:3])
}

func TestBinary_ToolVerifyFailure(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stderr: []byte("bad signature"), ExitCode: 1}}
	b := New(WithInvoker(invoker))

	result, err := b.ToolVerify(context.Background(), ToolVerifyArgs{HTTPMethod: "GET"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.EqualError(t, err, "bad signature")
}

func TestBinary_AgentHeadersSerializesKey(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte(`{"Signature":"sig1=:xyz:","Signature-Input":"sig1=()","Signature-Agent":"sig1=agent-123"}`)}}
	b := New(WithInvoker(invoker), WithExecutable("vestauth-test"))

	result, err := b.AgentHeaders(context.Background(), "POST", "https://api.example.com/tasks",
		map[string]any{"kty": "OKP", "d": "secret"}, "agent-123")
	require.NoError(t, err)
	assert.Equal(t, "sig1=:xyz:", result.Headers()["Signature"])

	args := invoker.last().Args()
	require.Len(t, args, 9)
	assert.Equal(t, []string{"vestauth-test", "agent", "headers", "POST", "https://api.example.com/tasks", "--private-jwk"}, args[:6])
	assert.JSONEq(t, `{"kty":"OKP","d":"secret"}`, args[6])
	assert.Equal(t, []string{"--uid", "agent-123"}, args[7:])
}

func TestBinary_ArgumentShapeErrorSpawnsNothing(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte(`{}`)}}
	b := New(WithInvoker(invoker))

	_, err := b.AgentHeaders(context.Background(), "GET", "https://api.example.com", 12345, "agent-123")
	assert.ErrorIs(t, err, ErrArgumentShape)

	_, err = b.PrimitivesVerify(context.Background(), "GET", "https://api.example.com", "sig", "input", struct{}{})
	assert.ErrorIs(t, err, ErrArgumentShape)

	assert.Empty(t, invoker.commands)
}

func TestBinary_PrimitivesVerify(t *testing.T) {
	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte(`{"success":false}`)}}
	b := New(WithInvoker(invoker))

	result, err := b.PrimitivesVerify(context.Background(), "GET", "https://api.example.com/whoami",
		"sig1=:abc:", `sig1=("@method")`, `{"kty":"OKP","x":"pub"}`)
	require.NoError(t, err, "a negative verdict is not an error")

	ok, present := result.Verdict()
	assert.True(t, present)
	assert.False(t, ok)

	assert.Equal(t, []string{
		"vestauth", "primitives", "verify",
		"GET", "https://api.example.com/whoami",
		"--signature", "sig1=:abc:",
		"--signature-input", `sig1=("@method")`,
		"--public-jwk", `{"kty":"OKP","x":"pub"}`,
	}, invoker.last().Args())
}

func TestBinary_ObserverAndLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	observer := &mockObserver{}

	invoker := &mockInvoker{outcome: Outcome{Stdout: []byte("not json")}}
	b := New(WithInvoker(invoker), WithObserver(observer), WithLogger(logger))

	_, err := b.ToolVerify(context.Background(), ToolVerifyArgs{
		HTTPMethod: "GET",
		Signature:  "sig1=:super-secret-signature:",
	})
	assert.ErrorIs(t, err, ErrProtocolViolation)

	assert.Equal(t, []Operation{OperationToolVerify}, observer.ops)
	assert.Equal(t, []string{"protocol_violation"}, observer.outcomes)

	out := logs.String()
	assert.Contains(t, out, `"operation":"tool verify"`)
	assert.Contains(t, out, `"outcome":"protocol_violation"`)
	assert.NotContains(t, out, "super-secret-signature")
}

func TestBinary_ConcurrentCalls(t *testing.T) {
	b := New(WithInvoker(InvokerFunc(func(ctx context.Context, cmd Command) Outcome {
		// echo the method back so each caller can check it got its own result
		method := cmd.Args()[3]
		return Outcome{Stdout: []byte(fmt.Sprintf(`{"method":%q}`, method))}
	})))

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			method := fmt.Sprintf("M%d", i)
			result, err := b.ToolVerify(context.Background(), ToolVerifyArgs{HTTPMethod: method})
			if err != nil {
				errs <- err
				return
			}
			if got, _ := result.String("method"); got != method {
				errs <- fmt.Errorf("got %s, want %s", got, method)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	var msgs []string
	for err := range errs {
		msgs = append(msgs, err.Error())
	}
	assert.Empty(t, msgs, strings.Join(msgs, "\n"))
}
