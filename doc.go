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

// Package conftree maps structured Go values to and from generic document
// trees: the nested map[string]any, []any, and scalar nodes that YAML and
// JSON document models produce and consume.
//
// For every declared field type the library deterministically selects
// exactly one bidirectional Serializer, recursively for arbitrarily nested
// container types. Built-in serializers cover the primitive scalars,
// strings, big numbers, dates and timestamps, durations, UUIDs, URLs,
// slices, fixed arrays, sets (map[T]struct{}), maps with simple or enum
// keys, registered enums, and nested structs.
//
// Simple usage:
//
//	type Server struct {
//		Host    string
//		Port    int
//		Timeout time.Duration
//	}
//
//	tree, err := conftree.ToTree(Server{Host: "example.com", Port: 443, Timeout: 5 * time.Second})
//	// tree is a map[string]any ready for yaml.Marshal
//
//	var server Server
//	err = conftree.FromTree(tree, &server)
//
// Selection can be customized in several ways, tried in strict precedence
// order: a serializeWith struct tag targeting a specific nesting depth, a
// serializer factory registered for a type, a serializer instance registered
// for a type, a SerializeWith declared by the type itself, a meta-annotation
// carrying a SerializeWith, and predicate-guarded serializers. See Selector
// for the exact rules.
//
// All policies live in an immutable Properties value built from functional
// options; one Properties value is safe to share across concurrent
// resolutions and conversions.
package conftree
