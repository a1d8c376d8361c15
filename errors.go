// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package conftree

import (
	"fmt"
	"reflect"
)

// ErrorKind categorizes conversion errors for fast dispatch.
// Selection-time kinds are configuration errors and always fatal;
// runtime kinds signal a shape mismatch between a serialized node and
// the serializer it was handed.
type ErrorKind uint8

const (
	// ErrKindOK indicates no error occurred
	ErrKindOK ErrorKind = iota

	// Selection-time failures.

	// ErrKindUnsupportedType indicates a type shape that can never be
	// serialized (wildcard, type variable, generic array)
	ErrKindUnsupportedType
	// ErrKindNoSerializer indicates no serializer is available for a simple
	// type that is not built-in, not an enum, not a struct, and has no override
	ErrKindNoSerializer
	// ErrKindNilFactoryResult indicates a registered serializer factory
	// returned nil
	ErrKindNilFactoryResult
	// ErrKindUnsupportedParameterized indicates a parameterized type that is
	// neither list-, set-, nor map-like
	ErrKindUnsupportedParameterized
	// ErrKindBadMapKey indicates a map key type that is not simple or enum
	ErrKindBadMapKey
	// ErrKindUnknownCustomSerializer indicates a serializeWith reference to a
	// name that was never registered
	ErrKindUnknownCustomSerializer

	// Runtime conversion failures.

	// ErrKindShapeMismatch indicates a serialized node whose shape does not
	// match the serializer invoked on it
	ErrKindShapeMismatch
	// ErrKindNullDisallowed indicates a null node encountered while null
	// input is disabled
	ErrKindNullDisallowed
	// ErrKindValueOutOfRange indicates a numeric node that cannot be
	// represented losslessly by the target type
	ErrKindValueOutOfRange
	// ErrKindUnknownEnumValue indicates an enum name or ordinal outside the
	// registered member set
	ErrKindUnknownEnumValue
)

// Error is the single error type of this package. It stores error details
// without allocating a message until Error() is called.
type Error struct {
	kind    ErrorKind
	message string
	type_   reflect.Type
}

// Ok returns true if no error occurred
func (e *Error) Ok() bool {
	return e == nil || e.kind == ErrKindOK
}

// Kind returns the error kind for fast dispatch
func (e *Error) Kind() ErrorKind {
	if e == nil {
		return ErrKindOK
	}
	return e.kind
}

// Type returns the offending type, if one is attached
func (e *Error) Type() reflect.Type {
	return e.type_
}

// IsSelectionError reports whether the error occurred while selecting a
// serializer, as opposed to during a Serialize/Deserialize call.
func (e *Error) IsSelectionError() bool {
	return e.kind >= ErrKindUnsupportedType && e.kind <= ErrKindUnknownCustomSerializer
}

// Error implements the error interface with lazy formatting
func (e *Error) Error() string {
	switch e.kind {
	case ErrKindOK:
		return ""
	case ErrKindNoSerializer:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("conftree: missing serializer for type %v", e.type_)
	default:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("conftree: conversion error: kind=%d type=%v", e.kind, e.type_)
	}
}

func baseSelectionMessage(t reflect.Type) string {
	return fmt.Sprintf("conftree: cannot select serializer for type '%v': ", t)
}

// UnsupportedTypeError creates an unsupported type shape error
func UnsupportedTypeError(t reflect.Type, shape string) *Error {
	return &Error{
		kind:    ErrKindUnsupportedType,
		type_:   t,
		message: baseSelectionMessage(t) + shape + " cannot be serialized",
	}
}

// NoSerializerError creates a missing serializer error, naming the three
// remediations available to the caller.
func NoSerializerError(t reflect.Type) *Error {
	return &Error{
		kind:  ErrKindNoSerializer,
		type_: t,
		message: fmt.Sprintf(
			"conftree: missing serializer for type %v; "+
				"either make the type a struct, use one of the built-in simple types, "+
				"or register a custom serializer for it", t),
	}
}

// NilFactoryResultError creates an error for a factory that returned nil
func NilFactoryResultError(t reflect.Type) *Error {
	return &Error{
		kind:    ErrKindNilFactoryResult,
		type_:   t,
		message: fmt.Sprintf("conftree: serializer factory for type %v returned nil", t),
	}
}

// UnsupportedParameterizedError creates an error for a parameterized type
// that is neither list-, set-, nor map-like
func UnsupportedParameterizedError(t reflect.Type) *Error {
	return &Error{
		kind:    ErrKindUnsupportedParameterized,
		type_:   t,
		message: baseSelectionMessage(t) + "parameterized types other than lists, sets, and maps cannot be serialized",
	}
}

// BadMapKeyError creates a map key restriction error
func BadMapKeyError(t reflect.Type) *Error {
	return &Error{
		kind:    ErrKindBadMapKey,
		type_:   t,
		message: baseSelectionMessage(t) + "map keys can only be of simple or enum type",
	}
}

// UnknownCustomSerializerError creates an error for an unregistered
// serializeWith reference
func UnknownCustomSerializerError(name string) *Error {
	return &Error{
		kind:    ErrKindUnknownCustomSerializer,
		message: fmt.Sprintf("conftree: no custom serializer registered under name %q", name),
	}
}

// ShapeMismatchError creates a runtime shape mismatch error
func ShapeMismatchError(t reflect.Type, node any) *Error {
	return &Error{
		kind:    ErrKindShapeMismatch,
		type_:   t,
		message: fmt.Sprintf("conftree: cannot deserialize node of type %T into %v", node, t),
	}
}

// ShapeMismatchErrorf creates a formatted runtime shape mismatch error
func ShapeMismatchErrorf(format string, args ...any) *Error {
	return &Error{
		kind:    ErrKindShapeMismatch,
		message: "conftree: " + fmt.Sprintf(format, args...),
	}
}

// NullDisallowedError creates an error for a null node read while null
// input is disabled
func NullDisallowedError(where string) *Error {
	return &Error{
		kind:    ErrKindNullDisallowed,
		message: fmt.Sprintf("conftree: %s contains a null value but null input is disabled", where),
	}
}

// ValueOutOfRangeError creates an error for a lossy numeric conversion
func ValueOutOfRangeError(t reflect.Type, node any) *Error {
	return &Error{
		kind:    ErrKindValueOutOfRange,
		type_:   t,
		message: fmt.Sprintf("conftree: value %v cannot be represented losslessly as %v", node, t),
	}
}

// UnknownEnumValueError creates an error for an enum name outside the
// registered member set
func UnknownEnumValueError(t reflect.Type, got any, valid []string) *Error {
	return &Error{
		kind:    ErrKindUnknownEnumValue,
		type_:   t,
		message: fmt.Sprintf("conftree: %v is not a member of enum %v (valid members: %v)", got, t, valid),
	}
}
