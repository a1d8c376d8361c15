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
	"reflect"
	"sync"
)

// Serializer is a bidirectional converter between a native value and its
// serialized tree representation for exactly one type shape. The serialized
// form is the generic document tree a YAML/JSON model produces: scalars,
// []any sequences, and map nodes.
//
// Serializers are stateless or immutable after construction. Composed
// serializers (array/list/set/map) hold exclusive ownership of their
// element/value sub-serializers, acquired once at selection time.
type Serializer interface {
	// Serialize converts a native value to its serialized tree form.
	// It must not fail for any value that was itself produced by Deserialize
	// on a well-formed node.
	Serialize(value reflect.Value) (any, error)

	// Deserialize converts a serialized tree node back to a native value of
	// the serializer's target type. It fails with a shape-mismatch *Error if
	// the node does not match what this serializer expects.
	Deserialize(node any) (reflect.Value, error)
}

// SerializerContext bundles the information available to a custom serializer
// at its instantiation call site.
type SerializerContext struct {
	Properties *Properties
	Element    Element
	Type       *TypeDescriptor
}

// SerializerFactory produces a serializer parameterized by its call site.
// Registered factories must not return nil; a nil result is a fatal
// configuration error.
type SerializerFactory func(ctx SerializerContext) Serializer

// Condition guards a conditionally registered serializer. Conditions are
// tested against the raw type of the node being resolved, in registration
// order.
type Condition func(t reflect.Type) bool

// Registry of named custom serializer factories, referenced by serializeWith
// struct tags and SerializeWith annotations.
var customSerializers = struct {
	mu        sync.RWMutex
	factories map[string]SerializerFactory
}{
	factories: make(map[string]SerializerFactory),
}

// RegisterCustomSerializer registers a named serializer factory for use with
// serializeWith tags and SerializeWith annotations. Registration is
// process-wide; registering the same name twice replaces the earlier factory.
func RegisterCustomSerializer(name string, factory SerializerFactory) {
	if name == "" {
		panic("conftree: custom serializer name must not be empty")
	}
	if factory == nil {
		panic("conftree: custom serializer factory must not be nil")
	}
	customSerializers.mu.Lock()
	defer customSerializers.mu.Unlock()
	customSerializers.factories[name] = factory
}

// newCustomSerializer instantiates the factory registered under name,
// passing it the resolution call-site context.
func newCustomSerializer(name string, ctx SerializerContext) (Serializer, error) {
	customSerializers.mu.RLock()
	factory, ok := customSerializers.factories[name]
	customSerializers.mu.RUnlock()
	if !ok {
		return nil, UnknownCustomSerializerError(name)
	}
	s := factory(ctx)
	if s == nil {
		return nil, NilFactoryResultError(ctx.Type.RawType)
	}
	return s, nil
}

// isNil reports whether a value is a typed nil. Only pointer-shaped kinds
// can hold nil; everything else is always non-null.
func isNil(value reflect.Value) bool {
	if !value.IsValid() {
		return true
	}
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	}
	return false
}
