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

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vestauth/vestauth-go/pkg/binary"
	"github.com/vestauth/vestauth-go/pkg/logging"
	"github.com/vestauth/vestauth-go/pkg/tool"
)

type contextKey string

const resultKey contextKey = "vestauth_result"

// ErrSignatureRejected is returned when the engine ran but reported
// "success": false
var ErrSignatureRejected = errors.New("signature rejected")

// ErrorHandler handles verification errors
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// AuthMiddleware verifies vestauth signatures on incoming requests
type AuthMiddleware struct {
	verifier     tool.Verifier
	errorHandler ErrorHandler
	optional     bool
}

// NewAuthMiddleware creates middleware that verifies through the engine
// configured on b. A nil b uses binary.New().
func NewAuthMiddleware(b *binary.Binary) *AuthMiddleware {
	return NewAuthMiddlewareWithVerifier(tool.New(b))
}

// NewAuthMiddlewareWithVerifier creates middleware with a custom verifier
func NewAuthMiddlewareWithVerifier(verifier tool.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:     verifier,
		errorHandler: defaultErrorHandler,
		optional:     false,
	}
}

// SetErrorHandler sets a custom error handler
func (m *AuthMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetOptional sets whether signature verification is optional.
// If true, requests without Signature and Signature-Input headers pass
// through unverified.
func (m *AuthMiddleware) SetOptional(optional bool) {
	m.optional = optional
}

// Wrap wraps an HTTP handler with vestauth verification
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS preflight
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if m.optional && !tool.FromHTTPHeader(r.Header).Present() {
			next.ServeHTTP(w, r)
			return
		}

		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body.Close()
		}
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		ctx := r.Context()
		result, err := m.verifier.VerifyRequest(ctx, r)
		if err == nil {
			if ok, present := result.Verdict(); present && !ok {
				err = ErrSignatureRejected
			}
		}

		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if err != nil {
			logging.FromContext(ctx).Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Err(err).
				Msg("vestauth verification failed")
			m.errorHandler(w, r, fmt.Errorf("signature verification failed: %w", err))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, resultKey, result)))
	})
}

// ResultFromContext returns the engine result stored by the middleware
func ResultFromContext(ctx context.Context) (binary.Result, bool) {
	result, ok := ctx.Value(resultKey).(binary.Result)
	return result, ok
}

// UIDFromContext returns the verified agent uid, if the engine reported one
func UIDFromContext(ctx context.Context) (string, bool) {
	result, ok := ResultFromContext(ctx)
	if !ok {
		return "", false
	}
	return result.String("uid")
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, fmt.Sprintf("Unauthorized: %s", err.Error()), http.StatusUnauthorized)
}
