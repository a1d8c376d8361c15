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
	"math/big"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Kind is the closed set of structural categories a declared type can fall
// into. Dispatch over Kind is exhaustive; there is no fallthrough category.
type Kind uint8

const (
	// KindSimple is a non-generic, non-array type resolvable without
	// recursion: built-in scalars, enums, and struct types.
	KindSimple Kind = iota
	// KindParameterized is a container type carrying ordered type arguments:
	// slices (list-like), map[T]struct{} (set-like), and maps (map-like).
	KindParameterized
	// KindArray is a fixed-length array type with a single element type.
	KindArray
	// KindWildcard is an interface type; no concrete runtime type can be
	// determined for it, so it can never be serialized.
	KindWildcard
	// KindTypeVariable is an unbound type parameter. DescribeType never
	// produces one (Go instantiates generics before runtime), but hand-built
	// descriptors may carry it; the selector always rejects it.
	KindTypeVariable
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "Simple"
	case KindParameterized:
		return "Parameterized"
	case KindArray:
		return "Array"
	case KindWildcard:
		return "Wildcard"
	case KindTypeVariable:
		return "TypeVariable"
	}
	return "Unknown"
}

// TypeDescriptor represents one node of a declared type tree together with
// any attached annotations. Descriptors are immutable once built and are not
// retained by the selector beyond a single Select call.
//
// Exactly one of the following holds, consistent with Kind:
//   - KindSimple: RawType set, no TypeArgs, no Elem
//   - KindParameterized: RawType set, TypeArgs non-empty
//   - KindArray: RawType set, Elem set
//   - KindWildcard: RawType optionally set (the interface type, for
//     diagnostics only)
//   - KindTypeVariable: Name optionally set
type TypeDescriptor struct {
	Kind     Kind
	RawType  reflect.Type
	TypeArgs []*TypeDescriptor
	Elem     *TypeDescriptor
	// PtrDepth is the number of pointer indirections the declared type was
	// wrapped in. Pointers are Go's spelling of nullability, not a generic
	// position: unwrapping them consumes no nesting depth.
	PtrDepth    int
	Name        string
	Annotations []Annotation
}

var (
	boolType     = reflect.TypeOf((*bool)(nil)).Elem()
	intType      = reflect.TypeOf((*int)(nil)).Elem()
	int8Type     = reflect.TypeOf((*int8)(nil)).Elem()
	int16Type    = reflect.TypeOf((*int16)(nil)).Elem()
	int32Type    = reflect.TypeOf((*int32)(nil)).Elem()
	int64Type    = reflect.TypeOf((*int64)(nil)).Elem()
	uintType     = reflect.TypeOf((*uint)(nil)).Elem()
	uint8Type    = reflect.TypeOf((*uint8)(nil)).Elem()
	uint16Type   = reflect.TypeOf((*uint16)(nil)).Elem()
	uint32Type   = reflect.TypeOf((*uint32)(nil)).Elem()
	uint64Type   = reflect.TypeOf((*uint64)(nil)).Elem()
	float32Type  = reflect.TypeOf((*float32)(nil)).Elem()
	float64Type  = reflect.TypeOf((*float64)(nil)).Elem()
	stringType   = reflect.TypeOf((*string)(nil)).Elem()
	bigIntType   = reflect.TypeOf((*big.Int)(nil)).Elem()
	bigFloatType = reflect.TypeOf((*big.Float)(nil)).Elem()
	timeType     = reflect.TypeOf((*time.Time)(nil)).Elem()
	durationType = reflect.TypeOf((*time.Duration)(nil)).Elem()
	dateType     = reflect.TypeOf((*Date)(nil)).Elem()
	uuidType     = reflect.TypeOf((*uuid.UUID)(nil)).Elem()
	urlType      = reflect.TypeOf((*url.URL)(nil)).Elem()

	emptyStructType = reflect.TypeOf((*struct{})(nil)).Elem()
)

// builtinSerializers is the fixed table of simple types this library handles
// without recursion. Matching is by exact type identity: a named type defined
// over int is not an int.
var builtinSerializers = map[reflect.Type]Serializer{
	boolType:     boolSerializer{},
	intType:      intSerializer{type_: intType},
	int8Type:     intSerializer{type_: int8Type},
	int16Type:    intSerializer{type_: int16Type},
	int32Type:    intSerializer{type_: int32Type},
	int64Type:    intSerializer{type_: int64Type},
	uintType:     uintSerializer{type_: uintType},
	uint8Type:    uintSerializer{type_: uint8Type},
	uint16Type:   uintSerializer{type_: uint16Type},
	uint32Type:   uintSerializer{type_: uint32Type},
	uint64Type:   uintSerializer{type_: uint64Type},
	float32Type:  floatSerializer{type_: float32Type},
	float64Type:  floatSerializer{type_: float64Type},
	stringType:   stringSerializer{},
	bigIntType:   bigIntSerializer{},
	bigFloatType: bigFloatSerializer{},
	timeType:     timestampSerializer{},
	durationType: durationSerializer{},
	dateType:     dateSerializer{},
	uuidType:     uuidSerializer{},
	urlType:      urlSerializer{},
}

// isBuiltinType reports whether t has an entry in the built-in table.
func isBuiltinType(t reflect.Type) bool {
	_, ok := builtinSerializers[t]
	return ok
}

// isListType reports whether t is classified as list-like.
func isListType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice
}

// isSetType reports whether t is classified as set-like. The map[T]struct{}
// shape is the Go set idiom; Set[T] matches it.
func isSetType(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() == emptyStructType
}

// isMapType reports whether t is classified as map-like.
func isMapType(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem() != emptyStructType
}

// DescribeType derives a TypeDescriptor tree from a runtime type. The
// resulting tree is finite: slices, maps, and arrays always have
// strictly smaller element types.
//
// Built-in table entries are classified Simple regardless of their underlying
// kind (time.Time is a struct, uuid.UUID a byte array) so that they never
// enter container dispatch.
func DescribeType(t reflect.Type) *TypeDescriptor {
	ptrDepth := 0
	for t.Kind() == reflect.Ptr {
		ptrDepth++
		t = t.Elem()
	}

	td := &TypeDescriptor{RawType: t, PtrDepth: ptrDepth}
	switch {
	case isBuiltinType(t):
		td.Kind = KindSimple
	case t.Kind() == reflect.Interface:
		td.Kind = KindWildcard
	case isListType(t):
		td.Kind = KindParameterized
		td.TypeArgs = []*TypeDescriptor{DescribeType(t.Elem())}
	case isSetType(t):
		td.Kind = KindParameterized
		td.TypeArgs = []*TypeDescriptor{DescribeType(t.Key())}
	case isMapType(t):
		td.Kind = KindParameterized
		td.TypeArgs = []*TypeDescriptor{DescribeType(t.Key()), DescribeType(t.Elem())}
	case t.Kind() == reflect.Array:
		td.Kind = KindArray
		td.Elem = DescribeType(t.Elem())
	default:
		td.Kind = KindSimple
	}
	td.Annotations = typeAnnotations(t)
	return td
}
