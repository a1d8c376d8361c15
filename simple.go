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
	"math/big"
	"net/url"
	"reflect"

	"github.com/google/uuid"
)

// Serializers for the remaining built-in leaf types. All of them use a
// string node representation, which survives every document model
// unchanged.

type bigIntSerializer struct{}

func (s bigIntSerializer) Serialize(value reflect.Value) (any, error) {
	i := value.Interface().(big.Int)
	return i.String(), nil
}

func (s bigIntSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(bigIntType, node)
	}
	i, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a base-10 integer", str)
	}
	return reflect.ValueOf(*i), nil
}

type bigFloatSerializer struct{}

func (s bigFloatSerializer) Serialize(value reflect.Value) (any, error) {
	f := value.Interface().(big.Float)
	return f.Text('g', -1), nil
}

func (s bigFloatSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(bigFloatType, node)
	}
	f, _, err := big.ParseFloat(str, 10, big.MaxPrec, big.ToNearestEven)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a decimal number", str)
	}
	return reflect.ValueOf(*f), nil
}

type uuidSerializer struct{}

func (s uuidSerializer) Serialize(value reflect.Value) (any, error) {
	id := value.Interface().(uuid.UUID)
	return id.String(), nil
}

func (s uuidSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(uuidType, node)
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a UUID", str)
	}
	return reflect.ValueOf(id), nil
}

type urlSerializer struct{}

func (s urlSerializer) Serialize(value reflect.Value) (any, error) {
	u := value.Interface().(url.URL)
	return u.String(), nil
}

func (s urlSerializer) Deserialize(node any) (reflect.Value, error) {
	str, ok := node.(string)
	if !ok {
		return reflect.Value{}, ShapeMismatchError(urlType, node)
	}
	u, err := url.Parse(str)
	if err != nil {
		return reflect.Value{}, ShapeMismatchErrorf("%q is not a URL", str)
	}
	return reflect.ValueOf(*u), nil
}
