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

// Package jwk loads JSON Web Keys from disk for the vestauth-go commands.
//
// Keys are parsed with go-jose so obviously broken files are rejected before
// the engine is started. The parsed key is a json.Marshaler and can be passed
// straight to the agent and primitives helpers.
package jwk

import (
	"fmt"
	"os"

	"github.com/go-jose/go-jose/v3"
)

// Parse decodes a single JWK
func Parse(data []byte) (jose.JSONWebKey, error) {
	var key jose.JSONWebKey
	if err := key.UnmarshalJSON(data); err != nil {
		return jose.JSONWebKey{}, fmt.Errorf("failed to parse JWK: %w", err)
	}
	if !key.Valid() {
		return jose.JSONWebKey{}, fmt.Errorf("invalid JWK")
	}
	return key, nil
}

// LoadFile reads and decodes the JWK stored at path
func LoadFile(path string) (jose.JSONWebKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return jose.JSONWebKey{}, fmt.Errorf("failed to read JWK file: %w", err)
	}
	return Parse(data)
}

// LoadPrivate is LoadFile for a key that must contain private material
func LoadPrivate(path string) (jose.JSONWebKey, error) {
	key, err := LoadFile(path)
	if err != nil {
		return jose.JSONWebKey{}, err
	}
	if key.IsPublic() {
		return jose.JSONWebKey{}, fmt.Errorf("%s holds a public key, a private key is required", path)
	}
	return key, nil
}

// LoadPublic is LoadFile reduced to the public half of the key
func LoadPublic(path string) (jose.JSONWebKey, error) {
	key, err := LoadFile(path)
	if err != nil {
		return jose.JSONWebKey{}, err
	}
	if key.IsPublic() {
		return key, nil
	}
	return key.Public(), nil
}
