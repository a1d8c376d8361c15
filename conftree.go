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
	"errors"
	"fmt"
	"reflect"
)

// ErrNotComposite indicates a value whose type is not a composite (struct)
// type was handed to the package facade.
var ErrNotComposite = errors.New("conftree: value is not a composite (struct) type")

// ToTree serializes a composite value to its generic document tree: nested
// map[string]any, []any, and scalar nodes. The result can be handed
// directly to a YAML or JSON document model.
func ToTree(value any, opts ...Option) (any, error) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("conftree: cannot serialize a nil value")
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil, ErrNotComposite
	}
	serializer, err := newStructSerializer(v.Type(), NewProperties(opts...), nil)
	if err != nil {
		return nil, err
	}
	return serializer.Serialize(v)
}

// FromTree deserializes a document tree into target, which must be a
// non-nil pointer to a composite value. Fields absent from the tree keep
// their current zero value; unknown keys are ignored.
func FromTree(node any, target any, opts ...Option) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("conftree: target must be a non-nil pointer")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return ErrNotComposite
	}
	serializer, err := newStructSerializer(elem.Type(), NewProperties(opts...), nil)
	if err != nil {
		return err
	}
	value, err := serializer.Deserialize(node)
	if err != nil {
		return err
	}
	elem.Set(value)
	return nil
}

// Fingerprint returns the schema fingerprint of a composite type under the
// given options: a stable hash over its participating field names and type
// identities. Writers and readers of persisted trees can compare
// fingerprints to detect schema drift.
func Fingerprint(sample any, opts ...Option) (uint64, error) {
	t := typeOf(sample)
	if t.Kind() != reflect.Struct {
		return 0, ErrNotComposite
	}
	serializer, err := newStructSerializer(t, NewProperties(opts...), nil)
	if err != nil {
		return 0, err
	}
	return serializer.(Fingerprinted).Fingerprint(), nil
}
