// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned when a missing or rejected value is passed
	// to Insert, Upsert or Modify. The index is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey is returned by the integrity index when an id is
	// inserted twice.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyNotFound is never returned by the indexes themselves, which report
	// misses through booleans. Collaborators use it when they need an error.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIntegrityViolation marks a stored value that no longer matches the
	// digest recorded when it was hashed.
	ErrIntegrityViolation = errors.New("integrity violation")
)

// isMissing reports whether v is nil or a nil reference of any kind.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func checkValue[V any](o *options[V], key int, value V) error {
	if isMissing(value) {
		return fmt.Errorf("%w: missing value for key %d", ErrInvalidArgument, key)
	}
	if o.validate != nil {
		if err := o.validate(value); err != nil {
			return fmt.Errorf("%w: key %d: %v", ErrInvalidArgument, key, err)
		}
	}
	return nil
}
