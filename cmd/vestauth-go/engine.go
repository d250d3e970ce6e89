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

package main

import (
	"github.com/go-jose/go-jose/v3"
	"github.com/spf13/cobra"
	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/jwk"
	"github.com/vestauth/vestauth-go/pkg/primitives"
	"github.com/vestauth/vestauth-go/pkg/server"
	"github.com/vestauth/vestauth-go/pkg/tool"
)

func newAgentCmd(a *app) *cobra.Command {
	agentCmd := &cobra.Command{
		Use:   "agent",
		Short: "commands run on behalf of a signing agent",
	}

	var uid, privateJWK, privateJWKFile string
	headersCmd := &cobra.Command{
		Use:   "headers METHOD URI",
		Short: "print the signature headers for a request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyArg(privateJWK, privateJWKFile, jwk.LoadPrivate)
			if err != nil {
				return err
			}

			result, err := a.binary().AgentHeaders(cmd.Context(), args[0], args[1], key, uid)
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	headersCmd.Flags().StringVar(&uid, "uid", "", "agent uid")
	headersCmd.Flags().StringVar(&privateJWK, "private-jwk", "", "agent private key as inline JSON")
	headersCmd.Flags().StringVar(&privateJWKFile, "private-jwk-file", "", "file holding the agent private key")
	headersCmd.MarkFlagsMutuallyExclusive("private-jwk", "private-jwk-file")
	headersCmd.MarkFlagsOneRequired("private-jwk", "private-jwk-file")

	agentCmd.AddCommand(headersCmd)
	return agentCmd
}

func newToolCmd(a *app) *cobra.Command {
	toolCmd := &cobra.Command{
		Use:     "tool",
		Aliases: []string{"provider"},
		Short:   "commands run by a tool receiving signed requests",
	}

	var headers tool.SignatureHeaders
	verifyCmd := &cobra.Command{
		Use:   "verify METHOD URI",
		Short: "verify a signed request and print the engine result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := tool.New(a.binary()).VerifySignature(cmd.Context(), args[0], args[1], headers)
			if err != nil {
				return err
			}
			return a.printVerdict(result)
		},
	}
	signatureFlags(verifyCmd, &headers.Signature, &headers.SignatureInput)
	verifyCmd.Flags().StringVar(&headers.SignatureAgent, "signature-agent", "", "Signature-Agent header value")

	toolCmd.AddCommand(verifyCmd)
	return toolCmd
}

func newPrimitivesCmd(a *app) *cobra.Command {
	primitivesCmd := &cobra.Command{
		Use:   "primitives",
		Short: "low-level signature checks",
	}

	var in primitives.VerifyInput
	var publicJWK, publicJWKFile string
	verifyCmd := &cobra.Command{
		Use:   "verify METHOD URI",
		Short: "verify a signature against a known public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyArg(publicJWK, publicJWKFile, jwk.LoadPublic)
			if err != nil {
				return err
			}

			in.HTTPMethod = args[0]
			in.URI = args[1]
			in.PublicJWK = key

			result, err := primitives.New(a.binary()).Verify(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printVerdict(result)
		},
	}
	signatureFlags(verifyCmd, &in.SignatureHeader, &in.SignatureInputHeader)
	verifyCmd.Flags().StringVar(&publicJWK, "public-jwk", "", "public key as inline JSON")
	verifyCmd.Flags().StringVar(&publicJWKFile, "public-jwk-file", "", "file holding the public key")
	verifyCmd.MarkFlagsMutuallyExclusive("public-jwk", "public-jwk-file")
	verifyCmd.MarkFlagsOneRequired("public-jwk", "public-jwk-file")

	primitivesCmd.AddCommand(verifyCmd)
	return primitivesCmd
}

func signatureFlags(cmd *cobra.Command, signature, signatureInput *string) {
	cmd.Flags().StringVar(signature, "signature", "", "Signature header value")
	cmd.Flags().StringVar(signatureInput, "signature-input", "", "Signature-Input header value")
}

// keyArg returns inline JSON as-is, or the key loaded from file
func keyArg(inline, file string, load func(string) (jose.JSONWebKey, error)) (any, error) {
	if file == "" {
		return inline, nil
	}
	key, err := load(file)
	if err != nil {
		return nil, err
	}
	return key, nil
}

// printVerdict prints result and fails when the engine reported "success": false
func (a *app) printVerdict(result binary.Result) error {
	if err := a.printResult(result); err != nil {
		return err
	}
	if ok, present := result.Verdict(); present && !ok {
		return server.ErrSignatureRejected
	}
	return nil
}
