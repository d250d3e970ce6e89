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

package tool

import (
	"net/http"
	"strings"
)

// Header field names carrying the signature
const (
	HeaderSignature      = "Signature"
	HeaderSignatureInput = "Signature-Input"
	HeaderSignatureAgent = "Signature-Agent"
)

// SignatureHeaders are the three header values the engine verifies.
// Missing values are empty strings.
type SignatureHeaders struct {
	Signature      string
	SignatureInput string
	SignatureAgent string
}

// Present reports whether both Signature and Signature-Input are set
func (h SignatureHeaders) Present() bool {
	return h.Signature != "" && h.SignatureInput != ""
}

// ExtractSignatureHeaders reads the signature fields from a plain map.
// Each field is looked up by its canonical name first, then lowercase;
// other spellings are not found.
func ExtractSignatureHeaders(headers map[string]string) SignatureHeaders {
	return SignatureHeaders{
		Signature:      lookup(headers, HeaderSignature),
		SignatureInput: lookup(headers, HeaderSignatureInput),
		SignatureAgent: lookup(headers, HeaderSignatureAgent),
	}
}

// FromHTTPHeader reads the signature fields from an http.Header
func FromHTTPHeader(h http.Header) SignatureHeaders {
	return SignatureHeaders{
		Signature:      h.Get(HeaderSignature),
		SignatureInput: h.Get(HeaderSignatureInput),
		SignatureAgent: h.Get(HeaderSignatureAgent),
	}
}

func lookup(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	return headers[strings.ToLower(name)]
}
