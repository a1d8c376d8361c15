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

// mapSerializer converts a map through its key and value serializers. Keys
// are always simple or enum and serialize to scalar nodes; the null policy
// applies to values only. Nil map keys cannot occur: pointer key types are
// rejected at selection time.
type mapSerializer struct {
	type_       reflect.Type
	key         Serializer
	value       Serializer
	outputNulls bool
	inputNulls  bool
}

func (s *mapSerializer) Serialize(value reflect.Value) (any, error) {
	out := make(map[any]any, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		keyNode, err := s.key.Serialize(iter.Key())
		if err != nil {
			return nil, err
		}
		entry := iter.Value()
		if isNil(entry) {
			if s.outputNulls {
				out[keyNode] = nil
			}
			continue
		}
		valueNode, err := s.value.Serialize(entry)
		if err != nil {
			return nil, err
		}
		out[keyNode] = valueNode
	}
	return out, nil
}

func (s *mapSerializer) Deserialize(node any) (reflect.Value, error) {
	entries, ok := mapEntries(node)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	out := reflect.MakeMapWithSize(s.type_, len(entries))
	keyType := s.type_.Key()
	valueType := s.type_.Elem()
	for _, entry := range entries {
		key, err := s.key.Deserialize(entry.key)
		if err != nil {
			return reflect.Value{}, err
		}
		key, err = conformValue(key, keyType)
		if err != nil {
			return reflect.Value{}, err
		}
		if entry.value == nil {
			if !s.inputNulls {
				return reflect.Value{}, NullDisallowedError("mapping")
			}
			out.SetMapIndex(key, reflect.Zero(valueType))
			continue
		}
		value, err := s.value.Deserialize(entry.value)
		if err != nil {
			return reflect.Value{}, err
		}
		value, err = conformValue(value, valueType)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(key, value)
	}
	return out, nil
}

type mapEntry struct {
	key   any
	value any
}

// mapEntries flattens the two mapping node shapes document models produce.
func mapEntries(node any) ([]mapEntry, bool) {
	switch n := node.(type) {
	case map[any]any:
		entries := make([]mapEntry, 0, len(n))
		for k, v := range n {
			entries = append(entries, mapEntry{key: k, value: v})
		}
		return entries, true
	case map[string]any:
		entries := make([]mapEntry, 0, len(n))
		for k, v := range n {
			entries = append(entries, mapEntry{key: k, value: v})
		}
		return entries, true
	}
	return nil, false
}
