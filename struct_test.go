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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowValue int

func TestConcurrentCompositeResolutionSeesAllFields(t *testing.T) {
	type payload struct {
		A string
		B slowValue
	}

	// The factory stalls the first init mid-flight; resolutions racing in
	// from other goroutines must wait for the fully built serializer rather
	// than observe one with fields still missing.
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	props := NewProperties(WithSerializerFactory(slowValue(0), func(SerializerContext) Serializer {
		once.Do(func() { close(entered) })
		<-release
		return markerSerializer{tag: "slow"}
	}))

	payloadType := reflect.TypeOf(payload{})
	type result struct {
		node any
		err  error
	}
	results := make(chan result, 4)
	convert := func() {
		ser, err := newStructSerializer(payloadType, props, nil)
		if err != nil {
			results <- result{err: err}
			return
		}
		node, err := ser.Serialize(reflect.ValueOf(payload{A: "x", B: 7}))
		results <- result{node: node, err: err}
	}

	go convert()
	<-entered
	for i := 0; i < 3; i++ {
		go convert()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < 4; i++ {
		r := <-results
		require.NoError(t, r.err)
		assert.Equal(t, map[string]any{"A": "x", "B": "slow"}, r.node)
	}
}

func TestConcurrentCompositeSelectShareSerializer(t *testing.T) {
	type pair struct {
		A int
		B string
	}
	props := NewProperties()
	pairType := reflect.TypeOf(pair{})

	serializers := make(chan Serializer, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ser, err := newStructSerializer(pairType, props, nil)
			assert.NoError(t, err)
			serializers <- ser
		}()
	}
	wg.Wait()
	close(serializers)

	first := <-serializers
	for ser := range serializers {
		assert.Same(t, first, ser)
	}
}

type slowNilValue int

func TestConcurrentCompositeInitFailurePropagates(t *testing.T) {
	type broken struct {
		B slowNilValue
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	props := NewProperties(WithSerializerFactory(slowNilValue(0), func(SerializerContext) Serializer {
		once.Do(func() { close(entered) })
		<-release
		return nil
	}))

	brokenType := reflect.TypeOf(broken{})
	errs := make(chan error, 2)
	go func() {
		_, err := newStructSerializer(brokenType, props, nil)
		errs <- err
	}()
	<-entered
	go func() {
		_, err := newStructSerializer(brokenType, props, nil)
		errs <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		err := <-errs
		var convErr *Error
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, ErrKindNilFactoryResult, convErr.Kind())
	}
}

func TestCompositeInitFailureNotRetained(t *testing.T) {
	type bad struct {
		A string
		W any
	}
	props := NewProperties()
	badType := reflect.TypeOf(bad{})

	_, err := newStructSerializer(badType, props, nil)
	require.Error(t, err)

	// The failed construction leaves no memo entry behind.
	_, ok := props.structSerializers.Load(badType)
	assert.False(t, ok)

	_, err = newStructSerializer(badType, props, nil)
	assert.Error(t, err)
}

type chainHead struct {
	Name string
	Next *chainLink
}

type chainLink struct {
	N    int
	Head *chainHead
}

func TestMutuallyRecursiveComposites(t *testing.T) {
	value := chainHead{
		Name: "root",
		Next: &chainLink{N: 1, Head: &chainHead{Name: "inner"}},
	}

	tree, err := ToTree(value)
	require.NoError(t, err)

	var got chainHead
	require.NoError(t, FromTree(tree, &got))
	assert.Equal(t, value, got)
}
