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

// Annotation is a marker attached to a structural member or a type.
// SerializeWith is the annotation the selector acts on; any other annotation
// value that implements SerializeWithProvider acts as a meta-annotation
// carrying a SerializeWith.
type Annotation any

// SerializeWith names a registered custom serializer and the nesting depth
// it applies at. On a member, the override fires only when the selector's
// current nesting equals Nesting; attached to a type, it applies at any
// depth.
type SerializeWith struct {
	// Serializer is the name the factory was registered under via
	// RegisterCustomSerializer.
	Serializer string
	// Nesting is the type-tree depth the override targets. The member's own
	// declared type is depth 0; each descent into a type argument, array
	// element, or map value adds one. Map keys are depth-invariant and
	// cannot be targeted.
	Nesting int
}

// SerializeWithProvider is implemented by types that declare their own
// serializer, and by meta-annotations that carry a SerializeWith.
type SerializeWithProvider interface {
	SerializeWith() SerializeWith
}

var serializeWithProviderType = reflect.TypeOf((*SerializeWithProvider)(nil)).Elem()

// Registry of annotations attached to types. Go has no type-level
// annotations, so callers attach them explicitly; types may alternatively
// implement SerializeWithProvider themselves.
var typeAnnotationRegistry = struct {
	mu          sync.RWMutex
	annotations map[reflect.Type][]Annotation
}{
	annotations: make(map[reflect.Type][]Annotation),
}

// RegisterTypeAnnotation attaches an annotation to a type. Annotations are
// reported by DescribeType in registration order.
func RegisterTypeAnnotation(sample any, ann Annotation) {
	if ann == nil {
		panic("conftree: type annotation must not be nil")
	}
	t := typeOf(sample)
	typeAnnotationRegistry.mu.Lock()
	defer typeAnnotationRegistry.mu.Unlock()
	typeAnnotationRegistry.annotations[t] = append(typeAnnotationRegistry.annotations[t], ann)
}

// typeAnnotations collects the annotations attached to t: registered ones
// first, then a SerializeWith declared by the type itself through
// SerializeWithProvider.
func typeAnnotations(t reflect.Type) []Annotation {
	typeAnnotationRegistry.mu.RLock()
	registered := typeAnnotationRegistry.annotations[t]
	typeAnnotationRegistry.mu.RUnlock()

	anns := make([]Annotation, 0, len(registered)+1)
	anns = append(anns, registered...)

	if t.Implements(serializeWithProviderType) {
		zero := reflect.New(t).Elem()
		anns = append(anns, zero.Interface().(SerializeWithProvider).SerializeWith())
	} else if reflect.PtrTo(t).Implements(serializeWithProviderType) {
		zero := reflect.New(t)
		anns = append(anns, zero.Interface().(SerializeWithProvider).SerializeWith())
	}
	if len(anns) == 0 {
		return nil
	}
	return anns
}

// directSerializeWith returns the first annotation that is a SerializeWith.
func directSerializeWith(anns []Annotation) (SerializeWith, bool) {
	for _, ann := range anns {
		if sw, ok := ann.(SerializeWith); ok {
			return sw, true
		}
	}
	return SerializeWith{}, false
}

// metaSerializeWith returns the SerializeWith carried by the first
// meta-annotation, skipping direct SerializeWith values. First match wins;
// later matches are never consulted.
func metaSerializeWith(anns []Annotation) (SerializeWith, bool) {
	for _, ann := range anns {
		if _, ok := ann.(SerializeWith); ok {
			continue
		}
		if p, ok := ann.(SerializeWithProvider); ok {
			return p.SerializeWith(), true
		}
	}
	return SerializeWith{}, false
}

// typeOf normalizes a sample value or reflect.Type into a reflect.Type,
// unwrapping one pointer level so &T{} registers T.
func typeOf(sample any) reflect.Type {
	if t, ok := sample.(reflect.Type); ok {
		return t
	}
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
