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

package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vestauth/vestauth-go/pkg/agent"
	"github.com/vestauth/vestauth-go/pkg/binary"
)

const testPrivateJWK = `{"kty":"OKP","crv":"Ed25519","d":"priv","x":"pub","kid":"kid-1"}`

// mockSigner sets fixed signature headers and records what it was asked to sign
type mockSigner struct {
	err    error
	signed []string
	keys   []any
	ids    []string
}

func (m *mockSigner) Headers(ctx context.Context, in agent.HeadersInput) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return map[string]string{
		"Signature":       "sig1=:mock:",
		"Signature-Input": `sig1=("@method" "@authority" "@path");keyid="kid-1"`,
		"Signature-Agent": "sig1=agent-123.agents.example.com",
	}, nil
}

func (m *mockSigner) SignRequest(ctx context.Context, req *http.Request, privateJWK any, id string) error {
	headers, err := m.Headers(ctx, agent.HeadersInput{})
	if err != nil {
		return err
	}
	m.signed = append(m.signed, req.Method+" "+req.URL.String())
	m.keys = append(m.keys, privateJWK)
	m.ids = append(m.ids, id)
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	return nil
}

func TestNewClient(t *testing.T) {
	client := NewClient("agent-123", testPrivateJWK, nil, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "agent-123", client.ID())
	assert.IsType(t, &agent.Agent{}, client.signer)
	assert.Equal(t, http.DefaultClient, client.httpClient)
}

func TestNewClientWithCustomHTTPClient(t *testing.T) {
	customClient := &http.Client{}

	client := NewClient("agent-123", testPrivateJWK, &mockSigner{}, customClient)

	assert.Equal(t, customClient, client.httpClient)
}

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sig1=:mock:", r.Header.Get("Signature"))
		assert.NotEmpty(t, r.Header.Get("Signature-Input"))
		assert.NotEmpty(t, r.Header.Get("Signature-Agent"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result": "success"}`))
	}))
	defer server.Close()

	signer := &mockSigner{}
	client := NewClient("agent-123", testPrivateJWK, signer, nil)

	req, err := http.NewRequest("PUT", server.URL+"/data", bytes.NewReader([]byte(`{"k": "v"}`)))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"PUT " + server.URL + "/data"}, signer.signed)
	assert.Equal(t, []any{testPrivateJWK}, signer.keys)
	assert.Equal(t, []string{"agent-123"}, signer.ids)
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"task": "process"}`, string(body))
		assert.NotEmpty(t, r.Header.Get("Signature"))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("agent-123", testPrivateJWK, &mockSigner{}, nil)

	resp, err := client.Post(context.Background(), server.URL, []byte(`{"task": "process"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_PostNilBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("agent-123", testPrivateJWK, &mockSigner{}, nil)

	resp, err := client.Post(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.NotEmpty(t, r.Header.Get("Signature"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	signer := &mockSigner{}
	client := NewClient("agent-123", testPrivateJWK, signer, nil)

	resp, err := client.Get(context.Background(), server.URL+"/status?verbose=1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"GET " + server.URL + "/status?verbose=1"}, signer.signed)
}

func TestClient_ContextCancellation(t *testing.T) {
	signer := &mockSigner{}
	client := NewClient("agent-123", testPrivateJWK, signer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequest("GET", "http://example.com", nil)
	require.NoError(t, err)

	_, err = client.Do(ctx, req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
	assert.Empty(t, signer.signed)
}

func TestClient_SigningError(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient("agent-123", testPrivateJWK, &mockSigner{err: errors.New("invalid private_jwk")}, nil)

	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to sign request")
	assert.Contains(t, err.Error(), "invalid private_jwk")
	assert.False(t, called)
}

func TestClient_EngineErrorIsWrapped(t *testing.T) {
	signer := agent.New(binary.New(binary.WithInvoker(binary.InvokerFunc(
		func(ctx context.Context, cmd binary.Command) binary.Outcome {
			return binary.Outcome{Stderr: []byte("unknown uid"), ExitCode: 1}
		},
	))))
	client := NewClient("agent-123", testPrivateJWK, signer, nil)

	_, err := client.Get(context.Background(), "http://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, binary.ErrProcessFailure)

	var engineErr *binary.Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "unknown uid", engineErr.Message)
}

func TestClient_HTTPError(t *testing.T) {
	client := NewClient("agent-123", testPrivateJWK, &mockSigner{}, nil)

	_, err := client.Get(context.Background(), "://invalid-url")
	assert.Error(t, err)

	_, err = client.Post(context.Background(), "", []byte(`{}`))
	assert.Error(t, err)
}
