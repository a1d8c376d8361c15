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

// Dedicated fixed-shape serializers for arrays of the eight primitive scalar
// kinds. They never recurse and carry no null policy: primitive elements
// cannot hold null.

type primitiveArrayMaker func(arrayType reflect.Type) Serializer

func (m primitiveArrayMaker) forArray(t reflect.Type) Serializer { return m(t) }

var primitiveArraySerializers = map[reflect.Type]primitiveArrayMaker{
	boolType:    func(t reflect.Type) Serializer { return boolArraySerializer{type_: t} },
	uint8Type:   func(t reflect.Type) Serializer { return byteArraySerializer{type_: t} },
	int16Type:   func(t reflect.Type) Serializer { return intArraySerializer{type_: t} },
	int32Type:   func(t reflect.Type) Serializer { return intArraySerializer{type_: t} },
	int64Type:   func(t reflect.Type) Serializer { return intArraySerializer{type_: t} },
	intType:     func(t reflect.Type) Serializer { return intArraySerializer{type_: t} },
	float32Type: func(t reflect.Type) Serializer { return floatArraySerializer{type_: t} },
	float64Type: func(t reflect.Type) Serializer { return floatArraySerializer{type_: t} },
}

func checkArrayFit(t reflect.Type, node any) ([]any, error) {
	seq, ok := node.([]any)
	if !ok {
		return nil, ShapeMismatchError(t, node)
	}
	if len(seq) > t.Len() {
		return nil, ShapeMismatchErrorf("sequence of length %d does not fit array type %v", len(seq), t)
	}
	return seq, nil
}

// boolArraySerializer handles [N]bool
type boolArraySerializer struct {
	type_ reflect.Type
}

func (s boolArraySerializer) Serialize(value reflect.Value) (any, error) {
	out := make([]any, value.Len())
	for i := range out {
		out[i] = value.Index(i).Bool()
	}
	return out, nil
}

func (s boolArraySerializer) Deserialize(node any) (reflect.Value, error) {
	seq, err := checkArrayFit(s.type_, node)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(s.type_).Elem()
	for i, item := range seq {
		b, ok := item.(bool)
		if !ok {
			return reflect.Value{}, ShapeMismatchError(boolType, item)
		}
		out.Index(i).SetBool(b)
	}
	return out, nil
}

// byteArraySerializer handles [N]byte
type byteArraySerializer struct {
	type_ reflect.Type
}

func (s byteArraySerializer) Serialize(value reflect.Value) (any, error) {
	out := make([]any, value.Len())
	for i := range out {
		out[i] = value.Index(i).Uint()
	}
	return out, nil
}

func (s byteArraySerializer) Deserialize(node any) (reflect.Value, error) {
	seq, err := checkArrayFit(s.type_, node)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(s.type_).Elem()
	for i, item := range seq {
		u, ok := uintFromNode(item)
		if !ok {
			return reflect.Value{}, ShapeMismatchError(uint8Type, item)
		}
		if u > math.MaxUint8 {
			return reflect.Value{}, ValueOutOfRangeError(uint8Type, item)
		}
		out.Index(i).SetUint(u)
	}
	return out, nil
}

// intArraySerializer handles arrays of the signed integer kinds (int16,
// int32, int64, int); width checks come from the array's element type.
type intArraySerializer struct {
	type_ reflect.Type
}

func (s intArraySerializer) Serialize(value reflect.Value) (any, error) {
	out := make([]any, value.Len())
	for i := range out {
		out[i] = value.Index(i).Int()
	}
	return out, nil
}

func (s intArraySerializer) Deserialize(node any) (reflect.Value, error) {
	seq, err := checkArrayFit(s.type_, node)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(s.type_).Elem()
	for i, item := range seq {
		v, ok := intFromNode(item)
		if !ok {
			return reflect.Value{}, ShapeMismatchError(s.type_.Elem(), item)
		}
		element := out.Index(i)
		if element.OverflowInt(v) {
			return reflect.Value{}, ValueOutOfRangeError(s.type_.Elem(), item)
		}
		element.SetInt(v)
	}
	return out, nil
}

// floatArraySerializer handles arrays of float32 and float64.
type floatArraySerializer struct {
	type_ reflect.Type
}

func (s floatArraySerializer) Serialize(value reflect.Value) (any, error) {
	out := make([]any, value.Len())
	for i := range out {
		out[i] = value.Index(i).Float()
	}
	return out, nil
}

func (s floatArraySerializer) Deserialize(node any) (reflect.Value, error) {
	seq, err := checkArrayFit(s.type_, node)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(s.type_).Elem()
	for i, item := range seq {
		f, ok := floatFromNode(item)
		if !ok {
			return reflect.Value{}, ShapeMismatchError(s.type_.Elem(), item)
		}
		element := out.Index(i)
		if element.OverflowFloat(f) {
			return reflect.Value{}, ValueOutOfRangeError(s.type_.Elem(), item)
		}
		element.SetFloat(f)
	}
	return out, nil
}
