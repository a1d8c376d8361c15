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
)

// Set is a generic set type. Any map with a struct{} element type is
// classified set-like; Set is the convenience spelling.
type Set[T comparable] map[T]struct{}

// NewSet creates a set holding the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	s.Add(values...)
	return s
}

// Add adds one or more elements to the set.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Contains checks if an element is in the set.
func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// GenericSet is the unordered serialized representation of a set: element
// nodes used as keys, no associated values.
type GenericSet map[any]struct{}

// setAsListSerializer converts a set to an ordered sequence node in the
// source set's iteration order, and back. This is the default set
// representation because most document models have no set node.
type setAsListSerializer struct {
	type_       reflect.Type
	elem        Serializer
	outputNulls bool
	inputNulls  bool
}

func (s *setAsListSerializer) Serialize(value reflect.Value) (any, error) {
	out := make([]any, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		element := iter.Key()
		if isNil(element) {
			if s.outputNulls {
				out = append(out, nil)
			}
			continue
		}
		node, err := s.elem.Serialize(element)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (s *setAsListSerializer) Deserialize(node any) (reflect.Value, error) {
	seq, ok := node.([]any)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	return setFromElements(s.type_, s.elem, seq, s.inputNulls)
}

// setSerializer converts a set to a true unordered set node (GenericSet).
// Serialized elements must be hashable; an element that serializes to a
// sequence or map node cannot be a set member.
type setSerializer struct {
	type_       reflect.Type
	elem        Serializer
	outputNulls bool
	inputNulls  bool
}

func (s *setSerializer) Serialize(value reflect.Value) (any, error) {
	out := make(GenericSet, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		element := iter.Key()
		if isNil(element) {
			if s.outputNulls {
				out[nil] = struct{}{}
			}
			continue
		}
		node, err := s.elem.Serialize(element)
		if err != nil {
			return nil, err
		}
		if node != nil && !reflect.TypeOf(node).Comparable() {
			return nil, ShapeMismatchErrorf("element node of type %T is not hashable in a set node", node)
		}
		out[node] = struct{}{}
	}
	return out, nil
}

func (s *setSerializer) Deserialize(node any) (reflect.Value, error) {
	var elements []any
	switch n := node.(type) {
	case GenericSet:
		elements = make([]any, 0, len(n))
		for element := range n {
			elements = append(elements, element)
		}
	case map[any]struct{}:
		elements = make([]any, 0, len(n))
		for element := range n {
			elements = append(elements, element)
		}
	case []any:
		// Document models without a set node present sets as sequences.
		elements = n
	default:
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	return setFromElements(s.type_, s.elem, elements, s.inputNulls)
}

func setFromElements(setType reflect.Type, elem Serializer, elements []any, inputNulls bool) (reflect.Value, error) {
	out := reflect.MakeMapWithSize(setType, len(elements))
	keyType := setType.Key()
	present := reflect.Zero(setType.Elem())
	for _, item := range elements {
		if item == nil {
			if !inputNulls {
				return reflect.Value{}, NullDisallowedError("set")
			}
			out.SetMapIndex(reflect.Zero(keyType), present)
			continue
		}
		element, err := elem.Deserialize(item)
		if err != nil {
			return reflect.Value{}, err
		}
		element, err = conformValue(element, keyType)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(element, present)
	}
	return out, nil
}
