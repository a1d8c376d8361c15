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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldTag(t *testing.T) {
	for _, tc := range []struct {
		tag  string
		want fieldTagOptions
	}{
		{"", fieldTagOptions{}},
		{"-", fieldTagOptions{skip: true}},
		{"renamed", fieldTagOptions{name: "renamed"}},
		{"renamed,serializeWith=x", fieldTagOptions{name: "renamed", serializeWith: "x"}},
		{"serializeWith=x,nesting=2", fieldTagOptions{serializeWith: "x", nesting: 2}},
		{"serializeWith=x", fieldTagOptions{serializeWith: "x"}},
		{" renamed , nesting=1 ", fieldTagOptions{name: "renamed", nesting: 1}},
	} {
		assert.Equal(t, tc.want, parseFieldTag(tc.tag), "tag %q", tc.tag)
	}
}

func TestSnakeCaseFormatterCases(t *testing.T) {
	for input, want := range map[string]string{
		"Host":        "host",
		"MaxRetries":  "max_retries",
		"A":           "a",
		"HTTPTimeout": "h_t_t_p_timeout",
	} {
		assert.Equal(t, want, SnakeCaseFormatter(input), "input %q", input)
	}
}

func TestFieldElementMetadata(t *testing.T) {
	type holder struct {
		Port int `conftree:"port,serializeWith=x,nesting=1"`
	}
	ht := reflect.TypeOf(holder{})
	field, _ := ht.FieldByName("Port")
	element := NewFieldElement(ht, field, SnakeCaseFormatter)

	assert.Equal(t, "port", element.Name())
	assert.Equal(t, intType, element.Type())
	assert.Equal(t, ht, element.DeclaringType())
	assert.Equal(t, KindSimple, element.TypeDescriptor().Kind)

	sw, ok := directSerializeWith(element.Annotations())
	require.True(t, ok)
	assert.Equal(t, SerializeWith{Serializer: "x", Nesting: 1}, sw)
}

func TestFieldElementValue(t *testing.T) {
	type holder struct {
		Port int
	}
	ht := reflect.TypeOf(holder{})
	field, _ := ht.FieldByName("Port")
	element := NewFieldElement(ht, field, IdentityFormatter)

	assert.Equal(t, int64(8080), element.Value(reflect.ValueOf(holder{Port: 8080})).Int())
}
