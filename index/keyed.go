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

// KeyFunc extracts the index key from a value.
type KeyFunc[V any] func(V) int

// KeyedTree is an AVLTree whose keys are derived from the stored values by a
// caller supplied KeyFunc.
type KeyedTree[V any] struct {
	*AVLTree[V]
	keyOf KeyFunc[V]
}

func NewKeyedTree[V any](keyOf KeyFunc[V], opts ...Option[V]) *KeyedTree[V] {
	return &KeyedTree[V]{AVLTree: NewAVLTree(opts...), keyOf: keyOf}
}

// KeyOf returns the key value would be stored under.
func (t *KeyedTree[V]) KeyOf(value V) int {
	return t.keyOf(value)
}

// Add inserts value if its key is absent.
func (t *KeyedTree[V]) Add(value V) (bool, error) {
	if isMissing(value) {
		return false, checkValue(t.opts, 0, value)
	}
	return t.InsertIfAbsent(t.keyOf(value), value)
}

// Put inserts value or replaces the value stored under its key.
func (t *KeyedTree[V]) Put(value V) (bool, error) {
	if isMissing(value) {
		return false, checkValue(t.opts, 0, value)
	}
	return t.Upsert(t.keyOf(value), value)
}

// Replace modifies the value stored under value's key.
func (t *KeyedTree[V]) Replace(value V) (bool, error) {
	if isMissing(value) {
		return false, checkValue(t.opts, 0, value)
	}
	return t.Modify(t.keyOf(value), value)
}
