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
	"strconv"
	"strings"
	"unicode"
)

// TagKey is the struct tag key this library reads:
//
//	Field T `conftree:"[name][,serializeWith=<name>][,nesting=N]"`
//
// A tag of "-" excludes the field. The name part, when present, overrides
// the formatted field name.
const TagKey = "conftree"

// Element is a named, typed slot on a composite type. The selector consumes
// elements as its input context and never mutates them.
type Element interface {
	// Name returns the serialized name of the slot.
	Name() string
	// Type returns the slot's declared type.
	Type() reflect.Type
	// TypeDescriptor returns the full descriptor tree for the declared type.
	TypeDescriptor() *TypeDescriptor
	// DeclaringType returns the composite type the slot belongs to.
	DeclaringType() reflect.Type
	// Value reads the slot's value from a holder instance.
	Value(holder reflect.Value) reflect.Value
	// Annotations returns the markers attached to the slot.
	Annotations() []Annotation
}

// FieldElement adapts a struct field to the Element interface. Instances are
// built once per participating field of a composite type and cached with the
// composite serializer.
type FieldElement struct {
	name       string
	field      reflect.StructField
	descriptor *TypeDescriptor
	declaring  reflect.Type
	anns       []Annotation
}

// NewFieldElement builds an element for field of declaring type t, applying
// the given name formatter. The tag name, when present, wins over the
// formatted field name.
func NewFieldElement(t reflect.Type, field reflect.StructField, formatter FieldFormatter) *FieldElement {
	opts := parseFieldTag(field.Tag.Get(TagKey))
	name := opts.name
	if name == "" {
		name = formatter(field.Name)
	}
	var anns []Annotation
	if opts.serializeWith != "" {
		anns = []Annotation{SerializeWith{Serializer: opts.serializeWith, Nesting: opts.nesting}}
	}
	return &FieldElement{
		name:       name,
		field:      field,
		descriptor: DescribeType(field.Type),
		declaring:  t,
		anns:       anns,
	}
}

func (e *FieldElement) Name() string                    { return e.name }
func (e *FieldElement) Type() reflect.Type              { return e.field.Type }
func (e *FieldElement) TypeDescriptor() *TypeDescriptor { return e.descriptor }
func (e *FieldElement) DeclaringType() reflect.Type     { return e.declaring }
func (e *FieldElement) Annotations() []Annotation       { return e.anns }

func (e *FieldElement) Value(holder reflect.Value) reflect.Value {
	return holder.FieldByIndex(e.field.Index)
}

type fieldTagOptions struct {
	name          string
	serializeWith string
	nesting       int
	skip          bool
}

func parseFieldTag(tag string) fieldTagOptions {
	var opts fieldTagOptions
	if tag == "-" {
		opts.skip = true
		return opts
	}
	for i, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case strings.HasPrefix(part, "serializeWith="):
			opts.serializeWith = strings.TrimPrefix(part, "serializeWith=")
		case strings.HasPrefix(part, "nesting="):
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "nesting=")); err == nil {
				opts.nesting = n
			}
		case i == 0 && !strings.Contains(part, "="):
			opts.name = part
		}
	}
	return opts
}

// FieldFormatter maps a Go field name to its serialized name.
type FieldFormatter func(fieldName string) string

// IdentityFormatter keeps field names unchanged.
func IdentityFormatter(fieldName string) string { return fieldName }

// SnakeCaseFormatter converts CamelCase field names to lower snake_case.
func SnakeCaseFormatter(fieldName string) string {
	var b strings.Builder
	for i, r := range fieldName {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FieldFilter decides whether a struct field participates in serialization.
// The default filter is applied first; a configured filter narrows further.
type FieldFilter func(field reflect.StructField) bool

// defaultFieldFilter admits exported, non-anonymous fields that are not
// tagged "-".
func defaultFieldFilter(field reflect.StructField) bool {
	if field.PkgPath != "" || field.Anonymous {
		return false
	}
	return !parseFieldTag(field.Tag.Get(TagKey)).skip
}

// elementsOf introspects the participating fields of struct type t.
func elementsOf(t reflect.Type, props *Properties) []*FieldElement {
	elements := make([]*FieldElement, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !defaultFieldFilter(field) {
			continue
		}
		if props.fieldFilter != nil && !props.fieldFilter(field) {
			continue
		}
		elements = append(elements, NewFieldElement(t, field, props.fieldFormatter))
	}
	return elements
}
