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
	"time"
)

// Date represents an imprecise calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

const dateLayout = "2006-01-02"

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

type dateSerializer struct{}

func (s dateSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Interface().(Date).String(), nil
}

func (s dateSerializer) Deserialize(node any) (reflect.Value, error) {
	// Some document models resolve date-like scalars into time.Time on
	// their own; admit both representations.
	if t, ok := node.(time.Time); ok {
		return reflect.ValueOf(DateOf(t)), nil
	}
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(dateType, node)
	}
	t, err := time.Parse(dateLayout, str)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a date of form YYYY-MM-DD", str)
	}
	return reflect.ValueOf(DateOf(t)), nil
}

// timestampSerializer handles time.Time as an RFC 3339 instant.
type timestampSerializer struct{}

func (s timestampSerializer) Serialize(value reflect.Value) (any, error) {
	return value.Interface().(time.Time).Format(time.RFC3339Nano), nil
}

func (s timestampSerializer) Deserialize(node any) (reflect.Value, error) {
	if t, ok := node.(time.Time); ok {
		return reflect.ValueOf(t), nil
	}
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(timeType, node)
	}
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not an RFC 3339 timestamp", str)
	}
	return reflect.ValueOf(t), nil
}

// durationSerializer handles time.Duration in Go's duration string form
// ("1h30m", "250ms").
type durationSerializer struct{}

func (s durationSerializer) Serialize(value reflect.Value) (any, error) {
	return time.Duration(value.Int()).String(), nil
}

func (s durationSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(durationType, node)
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a duration", str)
	}
	return reflect.ValueOf(d), nil
}
