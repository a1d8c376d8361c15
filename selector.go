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

import "reflect"

// Selector resolves structural members to serializers. A Selector holds no
// per-call state and is safe for concurrent use; each Select call owns an
// independent resolution value threaded through the recursion.
type Selector struct {
	props *Properties
}

// NewSelector creates a selector bound to the given resolution properties.
func NewSelector(props *Properties) *Selector {
	if props == nil {
		panic("conftree: properties must not be nil")
	}
	return &Selector{props: props}
}

// Select resolves exactly one serializer for the member's declared type,
// walking its descriptor tree depth-first. Resolution either fully succeeds
// or fails with a *Error; failures are terminal configuration errors, never
// retried.
func (s *Selector) Select(element Element) (Serializer, error) {
	return s.selectWith(element, nil)
}

// selectWith is Select carrying the composite types under construction, so
// a composite init can hand its in-flight serializer to recursive fields.
func (s *Selector) selectWith(element Element, building map[reflect.Type]*structSerializer) (Serializer, error) {
	r := resolution{props: s.props, element: element, nesting: -1, building: building}
	return r.resolve(element.TypeDescriptor())
}

// resolution is the mutable state scoped to one top-level Select call: the
// originating element (consulted only for member-scoped overrides) and the
// nesting counter. The counter starts at -1 and is incremented on every
// recursive entry, so the member's own declared type resolves at depth 0.
// For a member of type []Set[string], the slice is depth 0, the set depth 1,
// and the string depth 2.
type resolution struct {
	props   *Properties
	element Element
	nesting int
	// Composite types whose serializers are still initializing in this
	// resolution chain; consulted before the cross-goroutine memo.
	building map[reflect.Type]*structSerializer
}

func (r *resolution) resolve(td *TypeDescriptor) (Serializer, error) {
	r.nesting++

	ser, err := r.customSerializer(td)
	if err != nil {
		return nil, err
	}
	if ser == nil {
		ser, err = r.dispatch(td)
		if err != nil {
			return nil, err
		}
	}
	return wrapPointers(ser, td.PtrDepth), nil
}

// customSerializer tries the customization sources in strict precedence
// order; the first source that produces a serializer wins. A nil, nil return
// means no customization matched and built-in dispatch applies.
func (r *resolution) customSerializer(td *TypeDescriptor) (Serializer, error) {
	finders := []func(*TypeDescriptor) (Serializer, error){
		r.findElementOverride,
		r.findFactoryForType,
		r.findSerializerForType,
		r.findOverrideOnType,
		r.findMetaOverrideOnType,
		r.findSerializerByCondition,
	}
	for _, find := range finders {
		ser, err := find(td)
		if err != nil || ser != nil {
			return ser, err
		}
	}
	return nil, nil
}

// findElementOverride applies a serializeWith tag on the originating member
// when its declared nesting equals the current depth.
func (r *resolution) findElementOverride(td *TypeDescriptor) (Serializer, error) {
	if r.element == nil {
		return nil, nil
	}
	sw, ok := directSerializeWith(r.element.Annotations())
	if !ok || sw.Nesting != r.nesting {
		return nil, nil
	}
	return newCustomSerializer(sw.Serializer, r.context(td))
}

// findFactoryForType applies a factory registered for the exact raw type of
// a simple node. A factory returning nil is a fatal configuration error.
func (r *resolution) findFactoryForType(td *TypeDescriptor) (Serializer, error) {
	if td.Kind != KindSimple {
		return nil, nil
	}
	factory, ok := r.props.serializerFactories[td.RawType]
	if !ok {
		return nil, nil
	}
	ser := factory(r.context(td))
	if ser == nil {
		return nil, NilFactoryResultError(td.RawType)
	}
	return ser, nil
}

// findSerializerForType applies a plain serializer instance registered for
// the exact raw type. Instances are shared, not call-site parameterized.
func (r *resolution) findSerializerForType(td *TypeDescriptor) (Serializer, error) {
	if !classLike(td) {
		return nil, nil
	}
	if ser, ok := r.props.serializers[td.RawType]; ok {
		return ser, nil
	}
	return nil, nil
}

// findOverrideOnType applies a SerializeWith declared by the raw type
// itself, independent of the current depth.
func (r *resolution) findOverrideOnType(td *TypeDescriptor) (Serializer, error) {
	if !classLike(td) {
		return nil, nil
	}
	sw, ok := directSerializeWith(td.Annotations)
	if !ok {
		return nil, nil
	}
	return newCustomSerializer(sw.Serializer, r.context(td))
}

// findMetaOverrideOnType applies the SerializeWith carried by the first
// meta-annotation attached to the raw type. First match wins; there is no
// fallback to later annotations.
func (r *resolution) findMetaOverrideOnType(td *TypeDescriptor) (Serializer, error) {
	if !classLike(td) {
		return nil, nil
	}
	sw, ok := metaSerializeWith(td.Annotations)
	if !ok {
		return nil, nil
	}
	return newCustomSerializer(sw.Serializer, r.context(td))
}

// findSerializerByCondition tests the ordered predicate rules against the
// raw type. Wildcards and type variables carry no concrete type and are
// never offered to predicates.
func (r *resolution) findSerializerByCondition(td *TypeDescriptor) (Serializer, error) {
	if td.Kind == KindWildcard || td.Kind == KindTypeVariable {
		return nil, nil
	}
	for _, entry := range r.props.serializersByCondition {
		if entry.condition(td.RawType) {
			return entry.serializer, nil
		}
	}
	return nil, nil
}

func (r *resolution) context(td *TypeDescriptor) SerializerContext {
	return SerializerContext{Properties: r.props, Element: r.element, Type: td}
}

// classLike reports whether the node has a concrete class identity the way
// the override sources expect: simple types and concrete arrays qualify,
// parameterized containers and unsupported shapes do not.
func classLike(td *TypeDescriptor) bool {
	return td.Kind == KindSimple || td.Kind == KindArray
}

func (r *resolution) dispatch(td *TypeDescriptor) (Serializer, error) {
	switch td.Kind {
	case KindSimple:
		return r.selectForSimple(td)
	case KindArray:
		return r.selectForArray(td)
	case KindParameterized:
		return r.selectForParameterized(td)
	case KindWildcard:
		return nil, UnsupportedTypeError(td.RawType, "wildcard (interface) types")
	case KindTypeVariable:
		return nil, UnsupportedTypeError(td.RawType, "type variables")
	}
	return nil, UnsupportedTypeError(td.RawType, "types of unknown shape")
}

// selectForSimple is the non-recursive simple-type path: built-in table
// first (exact type match), then registered enums, then struct delegation.
// It is also the path map keys resolve through, which is why it never
// touches the nesting counter.
func (r *resolution) selectForSimple(td *TypeDescriptor) (Serializer, error) {
	if ser, ok := builtinSerializers[td.RawType]; ok {
		return ser, nil
	}
	if isEnumType(td.RawType) {
		return newEnumSerializer(td.RawType), nil
	}
	if isCompositeType(td.RawType) {
		return newStructSerializer(td.RawType, r.props, r.building)
	}
	return nil, NoSerializerError(td.RawType)
}

func (r *resolution) selectForArray(td *TypeDescriptor) (Serializer, error) {
	elem := td.Elem
	if elem.PtrDepth == 0 && elem.Kind == KindSimple {
		if ser, ok := primitiveArraySerializers[elem.RawType]; ok {
			return ser.forArray(td.RawType), nil
		}
	}
	if elem.Kind == KindParameterized {
		return nil, UnsupportedTypeError(td.RawType, "arrays of parameterized types")
	}
	elemSerializer, err := r.resolve(elem)
	if err != nil {
		return nil, err
	}
	return &arraySerializer{
		type_:       td.RawType,
		elem:        elemSerializer,
		outputNulls: r.props.outputNulls,
		inputNulls:  r.props.inputNulls,
	}, nil
}

func (r *resolution) selectForParameterized(td *TypeDescriptor) (Serializer, error) {
	raw := td.RawType
	outputNulls := r.props.outputNulls
	inputNulls := r.props.inputNulls

	switch {
	case isListType(raw):
		elemSerializer, err := r.resolve(td.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		return &listSerializer{type_: raw, elem: elemSerializer, outputNulls: outputNulls, inputNulls: inputNulls}, nil

	case isSetType(raw):
		elemSerializer, err := r.resolve(td.TypeArgs[0])
		if err != nil {
			return nil, err
		}
		if r.props.serializeSetsAsLists {
			return &setAsListSerializer{type_: raw, elem: elemSerializer, outputNulls: outputNulls, inputNulls: inputNulls}, nil
		}
		return &setSerializer{type_: raw, elem: elemSerializer, outputNulls: outputNulls, inputNulls: inputNulls}, nil

	case isMapType(raw):
		key := td.TypeArgs[0]
		if key.Kind != KindSimple || key.PtrDepth != 0 ||
			!(isBuiltinType(key.RawType) || isEnumType(key.RawType)) {
			return nil, BadMapKeyError(raw)
		}
		// Key resolution is depth-invariant: it goes through the simple-type
		// path directly and never increments the nesting counter, so a
		// depth-scoped override cannot target a map key.
		keySerializer, err := r.selectForSimple(key)
		if err != nil {
			return nil, err
		}
		valueSerializer, err := r.resolve(td.TypeArgs[1])
		if err != nil {
			return nil, err
		}
		return &mapSerializer{
			type_:       raw,
			key:         keySerializer,
			value:       valueSerializer,
			outputNulls: outputNulls,
			inputNulls:  inputNulls,
		}, nil
	}

	return nil, UnsupportedParameterizedError(raw)
}

// isCompositeType reports whether t is a composite configuration type. Go
// structs are records: every struct type that is not a built-in simple type
// qualifies.
func isCompositeType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !isBuiltinType(t)
}

func wrapPointers(ser Serializer, depth int) Serializer {
	for i := 0; i < depth; i++ {
		ser = &ptrSerializer{elem: ser}
	}
	return ser
}
