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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand_ToolVerify(t *testing.T) {
	cmd, err := BuildCommand("vestauth", OperationToolVerify, ToolVerifyArgs{
		HTTPMethod:     "GET",
		URI:            "https://api.example.com/whoami",
		Signature:      "sig1=:abc:",
		SignatureInput: `sig1=("@method");keyid="kid-1"`,
		SignatureAgent: "sig1=agent-123.agents.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"vestauth", "tool", "verify",
		"GET", "https://api.example.com/whoami",
		"--signature", "sig1=:abc:",
		"--signature-input", `sig1=("@method");keyid="kid-1"`,
		"--signature-agent", "sig1=agent-123.agents.example.com",
	}, cmd.Args())
	assert.Equal(t, "vestauth", cmd.Path())
	assert.Equal(t, OperationToolVerify, cmd.Operation())
}

func TestBuildCommand_AgentHeaders(t *testing.T) {
	cmd, err := BuildCommand("/opt/vestauth/bin/vestauth", OperationAgentHeaders, AgentHeadersArgs{
		HTTPMethod: "POST",
		URI:        "https://api.example.com/tasks",
		PrivateJWK: `{"kty":"OKP","crv":"Ed25519","d":"secret","x":"pub"}`,
		UID:        "agent-123",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/opt/vestauth/bin/vestauth", "agent", "headers",
		"POST", "https://api.example.com/tasks",
		"--private-jwk", `{"kty":"OKP","crv":"Ed25519","d":"secret","x":"pub"}`,
		"--uid", "agent-123",
	}, cmd.Args())
}

func TestBuildCommand_PrimitivesVerify(t *testing.T) {
	cmd, err := BuildCommand("vestauth", OperationPrimitivesVerify, PrimitivesVerifyArgs{
		HTTPMethod:     "GET",
		URI:            "https://api.example.com/whoami",
		Signature:      "sig1=:abc:",
		SignatureInput: `sig1=("@method");keyid="kid-1"`,
		PublicJWK:      `{"kty":"OKP"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"vestauth", "primitives", "verify",
		"GET", "https://api.example.com/whoami",
		"--signature", "sig1=:abc:",
		"--signature-input", `sig1=("@method");keyid="kid-1"`,
		"--public-jwk", `{"kty":"OKP"}`,
	}, cmd.Args())
}

func TestBuildCommand_EmptyValuesKeepTheirSlot(t *testing.T) {
	cmd, err := BuildCommand("vestauth", OperationToolVerify, ToolVerifyArgs{
		HTTPMethod: "GET",
		URI:        "https://api.example.com/whoami",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"vestauth", "tool", "verify",
		"GET", "https://api.example.com/whoami",
		"--signature", "",
		"--signature-input", "",
		"--signature-agent", "",
	}, cmd.Args())
}

func TestBuildCommand_ShellMetacharactersStayIntact(t *testing.T) {
	hostile := `sig1=:abc:; rm -rf / "$(whoami)" 'x'`

	cmd, err := BuildCommand("vestauth", OperationToolVerify, ToolVerifyArgs{
		HTTPMethod: "GET",
		URI:        "https://api.example.com/whoami?a=1&b=2",
		Signature:  hostile,
	})
	require.NoError(t, err)

	args := cmd.Args()
	assert.Len(t, args, 11)
	assert.Equal(t, hostile, args[6])
	assert.Equal(t, "https://api.example.com/whoami?a=1&b=2", args[4])
}

func TestBuildCommand_MismatchedArguments(t *testing.T) {
	_, err := BuildCommand("vestauth", OperationAgentHeaders, ToolVerifyArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	_, err = BuildCommand("vestauth", OperationToolVerify, "not args")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported arguments")
}

func TestCommand_ArgsReturnsCopy(t *testing.T) {
	cmd, err := BuildCommand("vestauth", OperationToolVerify, ToolVerifyArgs{HTTPMethod: "GET"})
	require.NoError(t, err)

	args := cmd.Args()
	args[0] = "evil"
	args[3] = "DELETE"

	assert.Equal(t, "vestauth", cmd.Path())
	assert.Equal(t, "GET", cmd.Args()[3])
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "agent headers", OperationAgentHeaders.String())
	assert.Equal(t, "tool verify", OperationToolVerify.String())
	assert.Equal(t, "primitives verify", OperationPrimitivesVerify.String())
	assert.Equal(t, "unknown", Operation(0).String())
	assert.Nil(t, Operation(99).Segments())
}
