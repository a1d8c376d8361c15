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
	"strings"

	"github.com/spaolacci/murmur3"
)

const fingerprintSeed = 47

// structSerializer converts a composite (struct) type member by member.
// One serializer per participating field is selected when the composite
// serializer is built and reused for every subsequent conversion.
type structSerializer struct {
	type_  reflect.Type
	props  *Properties
	fields []structField

	fingerprint uint64
}

type structField struct {
	element    *FieldElement
	serializer Serializer
}

// Fingerprinted is implemented by serializers that carry a stable schema
// fingerprint. Composite serializers hash their field names and type
// identities; writers and readers of persisted trees can compare
// fingerprints to detect schema drift.
type Fingerprinted interface {
	Fingerprint() uint64
}

// structEntry is what the Properties memo holds for a composite type: the
// serializer plus a channel closed once init finished. Goroutines that lose
// the construction race wait on the channel, so a serializer is never
// visible to another goroutine before its fields are fully resolved.
type structEntry struct {
	done chan struct{}
	ser  *structSerializer
	err  error
}

func (e *structEntry) wait() (Serializer, error) {
	<-e.done
	if e.err != nil {
		return nil, e.err
	}
	return e.ser, nil
}

// newStructSerializer builds (or returns the memoized) composite serializer
// for struct type t. building tracks the composite types under construction
// in the current resolution: a self-referential field reuses the serializer
// under construction, and actual data recursion bottoms out at nil pointers.
// Only the constructing resolution sees the in-flight serializer; every
// other goroutine waits for init to finish.
func newStructSerializer(t reflect.Type, props *Properties, building map[reflect.Type]*structSerializer) (Serializer, error) {
	if s, ok := building[t]; ok {
		return s, nil
	}
	if cached, ok := props.structSerializers.Load(t); ok {
		return cached.(*structEntry).wait()
	}
	entry := &structEntry{done: make(chan struct{})}
	if actual, loaded := props.structSerializers.LoadOrStore(t, entry); loaded {
		return actual.(*structEntry).wait()
	}

	s := &structSerializer{type_: t, props: props}
	if building == nil {
		building = make(map[reflect.Type]*structSerializer)
	}
	building[t] = s
	err := s.init(building)
	delete(building, t)
	if err != nil {
		// Failed constructions are not retained: waiters get the error,
		// later calls start over.
		entry.err = err
		props.structSerializers.Delete(t)
		close(entry.done)
		return nil, err
	}
	entry.ser = s
	close(entry.done)
	return s, nil
}

func (s *structSerializer) init(building map[reflect.Type]*structSerializer) error {
	elements := elementsOf(s.type_, s.props)
	selector := NewSelector(s.props)
	s.fields = make([]structField, 0, len(elements))

	var schema strings.Builder
	for _, element := range elements {
		serializer, err := selector.selectWith(element, building)
		if err != nil {
			return err
		}
		s.fields = append(s.fields, structField{element: element, serializer: serializer})
		schema.WriteString(element.Name())
		schema.WriteByte(':')
		schema.WriteString(element.Type().String())
		schema.WriteByte(';')
	}
	s.fingerprint = murmur3.Sum64WithSeed([]byte(schema.String()), fingerprintSeed)
	return nil
}

// Fingerprint returns a stable hash of the composite schema: the formatted
// field names and their declared type identities, in declaration order.
func (s *structSerializer) Fingerprint() uint64 {
	return s.fingerprint
}

func (s *structSerializer) Serialize(value reflect.Value) (any, error) {
	out := make(map[string]any, len(s.fields))
	for _, field := range s.fields {
		fieldValue := field.element.Value(value)
		if isNil(fieldValue) {
			if s.props.outputNulls {
				out[field.element.Name()] = nil
			}
			continue
		}
		node, err := field.serializer.Serialize(fieldValue)
		if err != nil {
			return nil, err
		}
		out[field.element.Name()] = node
	}
	return out, nil
}

func (s *structSerializer) Deserialize(node any) (reflect.Value, error) {
	entries, ok := mapEntries(node)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	byName := make(map[string]any, len(entries))
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name, ok := entry.key.(string)
		if !ok {
			return reflect.Value{}, ShapeMismatchErrorf(
				"composite node for %v has non-string key %v", s.type_, entry.key)
		}
		byName[name] = entry.value
		present[name] = true
	}

	out := reflect.New(s.type_).Elem()
	for _, field := range s.fields {
		name := field.element.Name()
		if !present[name] {
			// Absent keys keep the zero value. Unknown keys in the node are
			// ignored symmetrically.
			continue
		}
		target := field.element.Value(out)
		item := byName[name]
		if item == nil {
			if !s.props.inputNulls {
				return reflect.Value{}, NullDisallowedError("field '" + name + "'")
			}
			continue
		}
		fieldValue, err := field.serializer.Deserialize(item)
		if err != nil {
			return reflect.Value{}, err
		}
		fieldValue, err = conformValue(fieldValue, field.element.Type())
		if err != nil {
			return reflect.Value{}, err
		}
		target.Set(fieldValue)
	}
	return out, nil
}
