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
	"math"
	"reflect"
)

// boolSerializer handles bool
type boolSerializer struct{}

func (s boolSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Bool(), nil
}

func (s boolSerializer) Deserialize(node any) (reflect.Value, error) {
	b, ok := node.(bool)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(boolType, node)
	}
	return reflect.ValueOf(b), nil
}

// intSerializer handles the signed integer widths; range checks come from
// the target type itself.
type intSerializer struct {
	type_ reflect.Type
}

func (s intSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Int(), nil
}

func (s intSerializer) Deserialize(node any) (reflect.Value, error) {
	i, ok := intFromNode(node)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	out := reflect.New(s.type_).Elem()
	if out.OverflowInt(i) {
		return reflect.Value{}, ValueOutOfRangeError(s.type_, node)
	}
	out.SetInt(i)
	return out, nil
}

// uintSerializer handles the unsigned integer widths.
type uintSerializer struct {
	type_ reflect.Type
}

func (s uintSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Uint(), nil
}

func (s uintSerializer) Deserialize(node any) (reflect.Value, error) {
	u, ok := uintFromNode(node)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	out := reflect.New(s.type_).Elem()
	if out.OverflowUint(u) {
		return reflect.Value{}, ValueOutOfRangeError(s.type_, node)
	}
	out.SetUint(u)
	return out, nil
}

// floatSerializer handles float32 and float64. Integer nodes are admitted;
// a float64 node that overflows float32 is a lossy conversion and fails.
type floatSerializer struct {
	type_ reflect.Type
}

func (s floatSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Float(), nil
}

func (s floatSerializer) Deserialize(node any) (reflect.Value, error) {
	f, ok := floatFromNode(node)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(s.type_, node)
	}
	out := reflect.New(s.type_).Elem()
	if out.OverflowFloat(f) {
		return reflect.Value{}, ValueOutOfRangeError(s.type_, node)
	}
	out.SetFloat(f)
	return out, nil
}

// stringSerializer handles string
type stringSerializer struct{}

func (s stringSerializer) Serialize(value reflect.Value) (any, error) {
	return value.String(), nil
}

func (s stringSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(stringType, node)
	}
	return reflect.ValueOf(str), nil
}

// intFromNode extracts a signed integer from any integer node
// representation a document model may produce. Floats are rejected:
// assigning a fractional value to an integer target is lossy.
func intFromNode(node any) (int64, bool) {
	switch v := node.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// uintFromNode extracts an unsigned integer from any integer node
// representation; negative values are rejected.
func uintFromNode(node any) (uint64, bool) {
	switch v := node.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	if i, ok := intFromNode(node); ok && i >= 0 {
		return uint64(i), true
	}
	return 0, false
}

// floatFromNode extracts a float from a float or integer node.
func floatFromNode(node any) (float64, bool) {
	switch v := node.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := intFromNode(node); ok {
		return float64(i), true
	}
	if u, ok := uintFromNode(node); ok {
		return float64(u), true
	}
	return 0, false
}
