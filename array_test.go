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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveIntArray(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [4]int }{}, "A")
	assert.IsType(t, intArraySerializer{}, ser)

	node, err := ser.Serialize(reflect.ValueOf([4]int{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4)}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 2, 3, 4}, out.Interface())
}

func TestPrimitiveBoolArray(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [2]bool }{}, "A")
	assert.IsType(t, boolArraySerializer{}, ser)

	node, err := ser.Serialize(reflect.ValueOf([2]bool{true, false}))
	require.NoError(t, err)
	assert.Equal(t, []any{true, false}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, [2]bool{true, false}, out.Interface())
}

func TestPrimitiveByteArray(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [3]byte }{}, "A")
	assert.IsType(t, byteArraySerializer{}, ser)

	out, err := ser.Deserialize([]any{uint64(0), uint64(127), uint64(255)})
	require.NoError(t, err)
	assert.Equal(t, [3]byte{0, 127, 255}, out.Interface())

	_, err = ser.Deserialize([]any{uint64(256)})
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())
}

func TestPrimitiveFloatArray(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [2]float64 }{}, "A")
	assert.IsType(t, floatArraySerializer{}, ser)

	node, err := ser.Serialize(reflect.ValueOf([2]float64{0.5, -2}))
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, float64(-2)}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0.5, -2}, out.Interface())
}

func TestPrimitiveInt16ArrayRange(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [1]int16 }{}, "A")

	_, err := ser.Deserialize([]any{int64(40000)})
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())
}

func TestGenericStringArray(t *testing.T) {
	// Strings are not in the primitive array table; the recursive array
	// serializer handles them.
	ser := selectFor(t, NewProperties(), struct{ A [2]string }{}, "A")
	assert.IsType(t, &arraySerializer{}, ser)

	node, err := ser.Serialize(reflect.ValueOf([2]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, [2]string{"a", "b"}, out.Interface())
}

func TestPointerElementArray(t *testing.T) {
	one := 1
	props := NewProperties(WithInputNulls(true))
	ser := selectFor(t, props, struct{ A [3]*int }{}, "A")
	assert.IsType(t, &arraySerializer{}, ser)

	out, err := ser.Deserialize([]any{int64(1), nil})
	require.NoError(t, err)
	a := out.Interface().([3]*int)
	require.NotNil(t, a[0])
	assert.Equal(t, one, *a[0])
	assert.Nil(t, a[1])
	assert.Nil(t, a[2])
}

func TestArrayTailZeroFill(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [4]int }{}, "A")

	out, err := ser.Deserialize([]any{int64(9)})
	require.NoError(t, err)
	assert.Equal(t, [4]int{9, 0, 0, 0}, out.Interface())
}

func TestArrayOverflowSequence(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ A [2]int }{}, "A")

	_, err := ser.Deserialize([]any{int64(1), int64(2), int64(3)})
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindShapeMismatch, convErr.Kind())
}

func TestArrayOfParameterizedRejected(t *testing.T) {
	element := fieldElementOf(t, struct{ A [2][]string }{}, "A")

	_, err := NewSelector(NewProperties()).Select(element)
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindUnsupportedType, convErr.Kind())
	assert.Contains(t, convErr.Error(), "arrays of parameterized types")
}
