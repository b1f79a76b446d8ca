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
	"fmt"

	"go.uber.org/zap"
)

// ValidateFunc rejects values that must not enter an index.
type ValidateFunc[V any] func(V) error

// EncodeFunc turns a value into the string that is hashed for it.
type EncodeFunc[V any] func(V) string

// Option configures an AVLTree or a MerkleTree.
type Option[V any] func(*options[V])

type options[V any] struct {
	name          string
	logger        *zap.Logger
	validate      ValidateFunc[V]
	encode        EncodeFunc[V]
	sortedRebuild bool
}

func newOptions[V any](defaultName string, opts []Option[V]) *options[V] {
	o := &options[V]{
		name:   defaultName,
		logger: zap.NewNop(),
		encode: func(v V) string { return fmt.Sprint(v) },
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(zap.String("index", o.name))
	return o
}

// WithName labels the index in logs and metrics.
func WithName[V any](name string) Option[V] {
	return func(o *options[V]) { o.name = name }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger[V any](logger *zap.Logger) Option[V] {
	return func(o *options[V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidator installs an extra check run before every insert or modify.
func WithValidator[V any](fn ValidateFunc[V]) Option[V] {
	return func(o *options[V]) { o.validate = fn }
}

// WithEncoder overrides how values are rendered for hashing. Only the
// integrity index uses it.
func WithEncoder[V any](fn EncodeFunc[V]) Option[V] {
	return func(o *options[V]) {
		if fn != nil {
			o.encode = fn
		}
	}
}

// WithSortedRebuild makes MerkleTree.Remove re-insert the surviving ids in
// ascending order, so the rebuilt shape only depends on the membership set.
// Without it the order follows map iteration and is not reproducible.
func WithSortedRebuild[V any]() Option[V] {
	return func(o *options[V]) { o.sortedRebuild = true }
}
