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

// ptrSerializer wraps the serializer selected for a pointed-to type. A nil
// pointer serializes to a null node; whether that node is emitted or
// admitted is decided by the enclosing container or composite, not here.
type ptrSerializer struct {
	elem Serializer
}

func (s *ptrSerializer) Serialize(value reflect.Value) (any, error) {
	if value.IsNil() {
		return nil, nil
	}
	return s.elem.Serialize(value.Elem())
}

func (s *ptrSerializer) Deserialize(node any) (reflect.Value, error) {
	inner, err := s.elem.Deserialize(node)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(inner.Type())
	out.Elem().Set(inner)
	return out, nil
}
