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
	"encoding/json"
	"fmt"
	"reflect"
)

const acceptedKeyShapes = "JSON text, a map or slice, a value with AsMap, or a json.Marshaler"

// Mapper is implemented by key types that can describe themselves as a map
type Mapper interface {
	AsMap() (map[string]any, error)
}

type keyKind int

const (
	keyInvalid keyKind = iota
	keyRawText
	keyStructured
	keyConvertible
)

// KeyMaterial is a key in one of three explicit representations.
// The zero value holds nothing and fails to serialize.
type KeyMaterial struct {
	kind  keyKind
	text  string
	value any
}

// RawText wraps key material that is already JSON text. It is not validated here.
func RawText(s string) KeyMaterial {
	return KeyMaterial{kind: keyRawText, text: s}
}

// Structured wraps a map or slice to be encoded as JSON
func Structured(v any) KeyMaterial {
	return KeyMaterial{kind: keyStructured, value: v}
}

// Convertible wraps a Mapper or a json.Marshaler
func Convertible(v any) KeyMaterial {
	return KeyMaterial{kind: keyConvertible, value: v}
}

// Serialize returns the JSON text for the active representation.
// field names the argument in error messages.
func (k KeyMaterial) Serialize(field string) (string, error) {
	switch k.kind {
	case keyRawText:
		return k.text, nil
	case keyStructured:
		if !isCollection(k.value) {
			return "", shapeError(field, k.value)
		}
		return encodeKey(field, k.value)
	case keyConvertible:
		return convertKey(field, k.value)
	default:
		return "", shapeError(field, nil)
	}
}

// SerializeKey normalizes a key of unknown shape into JSON text.
//
// Shapes are checked in a fixed order: text, KeyMaterial, map or slice,
// Mapper, json.Marshaler. The first match wins. If AsMap fails its error is
// returned and MarshalJSON is not attempted.
func SerializeKey(value any, field string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.RawMessage:
		return string(v), nil
	case []byte:
		return string(v), nil
	case KeyMaterial:
		return v.Serialize(field)
	case *KeyMaterial:
		if v == nil {
			return "", shapeError(field, nil)
		}
		return v.Serialize(field)
	}

	if isCollection(value) {
		return encodeKey(field, value)
	}
	return convertKey(field, value)
}

func convertKey(field string, value any) (string, error) {
	// a nil pointer would panic inside AsMap or MarshalJSON
	if isNilPointer(value) {
		return "", shapeError(field, value)
	}

	if m, ok := value.(Mapper); ok {
		mapped, err := m.AsMap()
		if err != nil {
			return "", err
		}
		return encodeKey(field, mapped)
	}

	// json.Marshal validates what MarshalJSON returns
	if _, ok := value.(json.Marshaler); ok {
		return encodeKey(field, value)
	}

	return "", shapeError(field, value)
}

func encodeKey(field string, value any) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", &Error{
			Kind:     KindArgumentShape,
			Message:  fmt.Sprintf("%s: cannot encode key material: %v", field, err),
			Field:    field,
			ExitCode: -1,
			Err:      err,
		}
	}
	return string(raw), nil
}

func isCollection(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isNilPointer(value any) bool {
	if value == nil {
		return false
	}
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func shapeError(field string, value any) *Error {
	return &Error{
		Kind:     KindArgumentShape,
		Message:  fmt.Sprintf("%s must be %s, got %T", field, acceptedKeyShapes, value),
		Field:    field,
		ExitCode: -1,
	}
}
