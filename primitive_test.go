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
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip pushes value through the built-in serializer for its exact type
// and returns the deserialized result.
func roundTrip(t *testing.T, value any) any {
	t.Helper()
	ser, ok := builtinSerializers[reflect.TypeOf(value)]
	require.True(t, ok, "no built-in serializer for %T", value)
	node, err := ser.Serialize(reflect.ValueOf(value))
	require.NoError(t, err)
	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	return out.Interface()
}

func TestPrimitiveRoundTrips(t *testing.T) {
	for _, value := range []any{
		true, false,
		int(42), int(-1),
		int8(math.MinInt8), int8(math.MaxInt8),
		int16(-300), int32(1 << 20),
		int64(math.MinInt64), int64(math.MaxInt64),
		uint(7), uint8(255), uint16(65535), uint32(1 << 30), uint64(math.MaxUint64),
		float32(1.5), float64(math.MaxFloat64), float64(-0.25),
		"", "hello", "with spaces and ünïcode",
	} {
		assert.Equal(t, value, roundTrip(t, value), "round trip of %T %v", value, value)
	}
}

func TestIntDeserializeAcceptsAnyIntegerWidth(t *testing.T) {
	ser := builtinSerializers[intType]
	for _, node := range []any{int(5), int8(5), int32(5), int64(5), uint8(5), uint64(5)} {
		out, err := ser.Deserialize(node)
		require.NoError(t, err, "node %T", node)
		assert.Equal(t, 5, out.Interface())
	}
}

func TestIntDeserializeRejectsFloats(t *testing.T) {
	ser := builtinSerializers[intType]
	_, err := ser.Deserialize(float64(5.0))
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindShapeMismatch, convErr.Kind())
}

func TestIntDeserializeOutOfRange(t *testing.T) {
	ser := builtinSerializers[int8Type]
	_, err := ser.Deserialize(int64(128))
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())

	_, err = ser.Deserialize(int64(-129))
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())
}

func TestUintDeserializeRejectsNegative(t *testing.T) {
	ser := builtinSerializers[uintType]
	_, err := ser.Deserialize(int64(-1))
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindShapeMismatch, convErr.Kind())
}

func TestFloatDeserializeAcceptsIntegers(t *testing.T) {
	ser := builtinSerializers[float64Type]
	out, err := ser.Deserialize(int64(3))
	require.NoError(t, err)
	assert.Equal(t, float64(3), out.Interface())
}

func TestFloat32DeserializeOverflow(t *testing.T) {
	ser := builtinSerializers[float32Type]
	_, err := ser.Deserialize(math.MaxFloat64)
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())
}

func TestBoolDeserializeRejectsOtherShapes(t *testing.T) {
	ser := builtinSerializers[boolType]
	for _, node := range []any{"true", 1, nil} {
		_, err := ser.Deserialize(node)
		assert.Error(t, err, "node %T %v", node, node)
	}
}
