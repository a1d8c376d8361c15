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

// Properties is an immutable snapshot of the policies that configure
// serializer resolution. A single Properties value is safe to share by
// reference across concurrently executing Select calls: nothing in it is
// mutated after NewProperties returns.
type Properties struct {
	serializers            map[reflect.Type]Serializer
	serializerFactories    map[reflect.Type]SerializerFactory
	serializersByCondition []conditionalSerializer
	outputNulls            bool
	inputNulls             bool
	serializeSetsAsLists   bool
	fieldFormatter         FieldFormatter
	fieldFilter            FieldFilter

	// Memo of composite serializers keyed by struct type, holding
	// *structEntry values. An entry becomes readable by other goroutines
	// only after its serializer finished initializing. Semantically
	// transparent; does not affect the immutability contract above.
	structSerializers sync.Map
}

type conditionalSerializer struct {
	condition  Condition
	serializer Serializer
}

// Option configures a Properties value under construction.
type Option func(*Properties)

// NewProperties builds an immutable Properties snapshot. All registrations
// are validated eagerly; duplicate type registrations are last-wins.
func NewProperties(opts ...Option) *Properties {
	p := &Properties{
		serializers:          make(map[reflect.Type]Serializer),
		serializerFactories:  make(map[reflect.Type]SerializerFactory),
		serializeSetsAsLists: true,
		fieldFormatter:       IdentityFormatter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithSerializer registers a serializer instance for the exact type of
// sample. Instances registered here take precedence over the built-in table
// but are preempted by a factory registered for the same type.
func WithSerializer(sample any, s Serializer) Option {
	if s == nil {
		panic("conftree: serializer must not be nil")
	}
	t := typeOf(sample)
	return func(p *Properties) {
		p.serializers[t] = s
	}
}

// WithSerializerFactory registers a call-site-parameterized serializer
// factory for the exact type of sample.
func WithSerializerFactory(sample any, factory SerializerFactory) Option {
	if factory == nil {
		panic("conftree: serializer factory must not be nil")
	}
	t := typeOf(sample)
	return func(p *Properties) {
		p.serializerFactories[t] = factory
	}
}

// WithSerializerByCondition registers a serializer guarded by a predicate on
// the raw type. Conditions are tested in registration order; the first match
// wins.
func WithSerializerByCondition(condition Condition, s Serializer) Option {
	if condition == nil {
		panic("conftree: condition must not be nil")
	}
	if s == nil {
		panic("conftree: serializer must not be nil")
	}
	return func(p *Properties) {
		p.serializersByCondition = append(p.serializersByCondition,
			conditionalSerializer{condition: condition, serializer: s})
	}
}

// WithOutputNulls sets whether null fields and container elements are
// emitted during serialization. The default is false: nulls are dropped.
func WithOutputNulls(outputNulls bool) Option {
	return func(p *Properties) {
		p.outputNulls = outputNulls
	}
}

// WithInputNulls sets whether null nodes are admitted during
// deserialization. The default is false: a null node is an error.
func WithInputNulls(inputNulls bool) Option {
	return func(p *Properties) {
		p.inputNulls = inputNulls
	}
}

// WithSetsAsLists sets whether sets serialize as ordered sequences rather
// than unordered set nodes. The default is true.
func WithSetsAsLists(setsAsLists bool) Option {
	return func(p *Properties) {
		p.serializeSetsAsLists = setsAsLists
	}
}

// WithFieldFormatter sets the formatter applied to field names. The default
// keeps names unchanged.
func WithFieldFormatter(formatter FieldFormatter) Option {
	if formatter == nil {
		panic("conftree: field formatter must not be nil")
	}
	return func(p *Properties) {
		p.fieldFormatter = formatter
	}
}

// WithFieldFilter sets an additional filter applied after the default one.
func WithFieldFilter(filter FieldFilter) Option {
	if filter == nil {
		panic("conftree: field filter must not be nil")
	}
	return func(p *Properties) {
		p.fieldFilter = filter
	}
}

// OutputNulls returns whether null values are emitted.
func (p *Properties) OutputNulls() bool { return p.outputNulls }

// InputNulls returns whether null nodes are admitted.
func (p *Properties) InputNulls() bool { return p.inputNulls }

// SetsAsLists returns whether sets serialize as ordered sequences.
func (p *Properties) SetsAsLists() bool { return p.serializeSetsAsLists }
