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

func selectFor(t *testing.T, props *Properties, sample any, field string) Serializer {
	t.Helper()
	ser, err := NewSelector(props).Select(fieldElementOf(t, sample, field))
	require.NoError(t, err)
	return ser
}

func TestListRoundTrip(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ Xs []int }{}, "Xs")

	node, err := ser.Serialize(reflect.ValueOf([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out.Interface())
}

func TestNestedListRoundTrip(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ Xs [][]string }{}, "Xs")

	value := [][]string{{"a"}, {}, {"b", "c"}}
	node, err := ser.Serialize(reflect.ValueOf(value))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"a"}, []any{}, []any{"b", "c"}}, node)

	out, err := ser.Deserialize(node)
	require.NoError(t, err)
	assert.Equal(t, value, out.Interface())
}

func TestListDropsNilElementsByDefault(t *testing.T) {
	one, two := 1, 2
	ser := selectFor(t, NewProperties(), struct{ Xs []*int }{}, "Xs")

	node, err := ser.Serialize(reflect.ValueOf([]*int{&one, nil, &two}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, node)
}

func TestListEmitsNilElementsWithOutputNulls(t *testing.T) {
	one, two := 1, 2
	props := NewProperties(WithOutputNulls(true))
	ser := selectFor(t, props, struct{ Xs []*int }{}, "Xs")

	node, err := ser.Serialize(reflect.ValueOf([]*int{&one, nil, &two}))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), nil, int64(2)}, node)
}

func TestListRejectsNullNodeByDefault(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ Xs []*int }{}, "Xs")

	_, err := ser.Deserialize([]any{int64(1), nil})
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindNullDisallowed, convErr.Kind())
	assert.False(t, convErr.IsSelectionError())
}

func TestListAdmitsNullNodeWithInputNulls(t *testing.T) {
	props := NewProperties(WithInputNulls(true))
	ser := selectFor(t, props, struct{ Xs []*int }{}, "Xs")

	out, err := ser.Deserialize([]any{int64(1), nil, int64(3)})
	require.NoError(t, err)
	xs := out.Interface().([]*int)
	require.Len(t, xs, 3)
	assert.Equal(t, 1, *xs[0])
	assert.Nil(t, xs[1])
	assert.Equal(t, 3, *xs[2])
}

func TestListDeserializeRejectsNonSequence(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ Xs []int }{}, "Xs")

	_, err := ser.Deserialize("not a sequence")
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindShapeMismatch, convErr.Kind())
}

func TestListElementErrorPropagates(t *testing.T) {
	ser := selectFor(t, NewProperties(), struct{ Xs []int8 }{}, "Xs")

	_, err := ser.Deserialize([]any{int64(1), int64(400)})
	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, ErrKindValueOutOfRange, convErr.Kind())
}
