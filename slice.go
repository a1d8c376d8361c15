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

// listSerializer converts a slice through its element serializer, acquired
// once at selection time. Null policy applies per element: with outputNulls
// off, nil elements are dropped; with inputNulls off, a null node in the
// sequence is an error.
type listSerializer struct {
	type_       reflect.Type
	elem        Serializer
	outputNulls bool
	inputNulls  bool
}

func (s *listSerializer) Serialize(value reflect.Value) (any, error) {
	length := value.Len()
	out := make([]any, 0, length)
	for i := 0; i < length; i++ {
		element := value.Index(i)
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

func (s *listSerializer) Deserialize(node any) (reflect.Value, error) {
	seq, ok := node.([]any)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	out := reflect.MakeSlice(s.type_, 0, len(seq))
	elemType := s.type_.Elem()
	for _, item := range seq {
		if item == nil {
			if !s.inputNulls {
				return reflect.Value{}, NullDisallowedError("sequence")
			}
			out = reflect.Append(out, reflect.Zero(elemType))
			continue
		}
		element, err := s.elem.Deserialize(item)
		if err != nil {
			return reflect.Value{}, err
		}
		element, err = conformValue(element, elemType)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, element)
	}
	return out, nil
}

// conformValue adjusts a deserialized value to the declared target type.
// Custom serializers may return a convertible representation rather than the
// exact declared type.
func conformValue(value reflect.Value, target reflect.Type) (reflect.Value, error) {
	if value.Type() == target || value.Type().AssignableTo(target) {
		return value, nil
	}
	if value.Type().ConvertibleTo(target) {
		return value.Convert(target), nil
	}
	return reflect.Value{}, ShapeMismatchErrorf("cannot assign value of type %v to %v", value.Type(), target)
}
