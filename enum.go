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

// enumMembers is the ordinal<->name table of one registered enum type.
type enumMembers struct {
	names    []string
	ordinals map[string]int64
}

// Process-wide enum registry. Go has no enum reflection, so the member set
// of a named integer type must be declared once up front.
var enumRegistry = struct {
	mu    sync.RWMutex
	types map[reflect.Type]*enumMembers
}{
	types: make(map[reflect.Type]*enumMembers),
}

// RegisterEnum declares the member names of an enum type, by ordinal:
//
//	type Color int
//	const ( Red Color = iota; Green; Blue )
//	conftree.RegisterEnum(Red, "red", "green", "blue")
//
// The sample's type must be a named integer type. Registering a type twice
// replaces the earlier member set.
func RegisterEnum(sample any, names ...string) {
	t := typeOf(sample)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		panic("conftree: enum types must have an integer underlying type")
	}
	if t.PkgPath() == "" {
		panic("conftree: enum types must be named types")
	}
	if len(names) == 0 {
		panic("conftree: enums must have at least one member")
	}
	members := &enumMembers{
		names:    append([]string(nil), names...),
		ordinals: make(map[string]int64, len(names)),
	}
	for i, name := range names {
		members.ordinals[name] = int64(i)
	}
	enumRegistry.mu.Lock()
	defer enumRegistry.mu.Unlock()
	enumRegistry.types[t] = members
}

// isEnumType reports whether t was registered as an enum.
func isEnumType(t reflect.Type) bool {
	enumRegistry.mu.RLock()
	defer enumRegistry.mu.RUnlock()
	_, ok := enumRegistry.types[t]
	return ok
}

func enumMembersOf(t reflect.Type) *enumMembers {
	enumRegistry.mu.RLock()
	defer enumRegistry.mu.RUnlock()
	return enumRegistry.types[t]
}

// enumSerializer converts enum values to their member names and back,
// bound to one enum type's member set at selection time.
type enumSerializer struct {
	type_   reflect.Type
	members *enumMembers
}

func newEnumSerializer(t reflect.Type) *enumSerializer {
	return &enumSerializer{type_: t, members: enumMembersOf(t)}
}

func (s *enumSerializer) Serialize(value reflect.Value) (any, error) {
	var ordinal int64
	switch value.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ordinal = int64(value.Uint())
	default:
		ordinal = value.Int()
	}
	if ordinal < 0 || ordinal >= int64(len(s.members.names)) {
		return nil, UnknownEnumValueError(s.type_, ordinal, s.members.names)
	}
	return s.members.names[ordinal], nil
}

func (s *enumSerializer) Deserialize(node any) (reflect.Value, error) {
	name, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	ordinal, ok := s.members.ordinals[name]
	if !ok {
		return reflect.Value{}, UnknownEnumValueError(s.type_, name, s.members.names)
	}
	out := reflect.New(s.type_).Elem()
	switch s.type_.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out.SetUint(uint64(ordinal))
	default:
		out.SetInt(ordinal)
	}
	return out, nil
}
