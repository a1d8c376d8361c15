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

// arraySerializer converts a fixed-length array whose element type needed
// recursive resolution. Serialization follows slice semantics including the
// null policy; deserialization fills the array front to back, zero-filling
// the tail when the sequence is shorter than the array. A longer sequence
// cannot fit and is a shape mismatch.
type arraySerializer struct {
	type_       reflect.Type
	elem        Serializer
	outputNulls bool
	inputNulls  bool
}

func (s *arraySerializer) Serialize(value reflect.Value) (any, error) {
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

func (s *arraySerializer) Deserialize(node any) (reflect.Value, error) {
	seq, ok := node.([]any)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	if len(seq) > s.type_.Len() {
		return reflect.Value{}, ShapeMismatchErrorf(
			"sequence of length %d does not fit array type %v", len(seq), s.type_)
	}
	out := reflect.New(s.type_).Elem()
	elemType := s.type_.Elem()
	for i, item := range seq {
		if item == nil {
			if !s.inputNulls {
				return reflect.Value{}, NullDisallowedError("sequence")
			}
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
		out.Index(i).Set(element)
	}
	return out, nil
}
