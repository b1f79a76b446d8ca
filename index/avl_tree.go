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
	"iter"

	"go.uber.org/zap"
)

// Visitor is called once per entry during a traversal.
type Visitor[V any] func(key int, value V)

// AVLTree is an ordered index keyed by int that keeps the AVL balance
// invariant on every structural change. It is not safe for concurrent use.
type AVLTree[V any] struct {
	Root  *AVLNode[V]
	count int
	opts  *options[V]
}

func NewAVLTree[V any](opts ...Option[V]) *AVLTree[V] {
	return &AVLTree[V]{opts: newOptions("avl", opts)}
}

func (tree *AVLTree[V]) Name() string {
	return tree.opts.name
}

// Count returns the number of live keys.
func (tree *AVLTree[V]) Count() int {
	return tree.count
}

// Height returns the height of the root, 0 for an empty tree.
func (tree *AVLTree[V]) Height() int {
	return tree.Root.height()
}

func (tree *AVLTree[V]) rotateLeft(node *AVLNode[V]) *AVLNode[V] {
	if node == nil || node.Right == nil {
		return node
	}

	pivot := node.Right
	node.Right = pivot.Left
	pivot.Left = node

	node.updateHeight()
	pivot.updateHeight()

	return pivot
}

func (tree *AVLTree[V]) rotateRight(node *AVLNode[V]) *AVLNode[V] {
	if node == nil || node.Left == nil {
		return node
	}

	pivot := node.Left
	node.Left = pivot.Right
	pivot.Right = node

	node.updateHeight()
	pivot.updateHeight()

	return pivot
}

func (tree *AVLTree[V]) rebalance(node *AVLNode[V]) *AVLNode[V] {
	node.updateHeight()
	balanceFactor := node.balanceFactor()

	// Left-heavy
	if balanceFactor > 1 {
		if node.Left.balanceFactor() >= 0 {
			return tree.rotateRight(node)
		}
		node.Left = tree.rotateLeft(node.Left)
		return tree.rotateRight(node)
	}

	// Right-heavy
	if balanceFactor < -1 {
		if node.Right.balanceFactor() <= 0 {
			return tree.rotateLeft(node)
		}
		node.Right = tree.rotateRight(node.Right)
		return tree.rotateLeft(node)
	}

	return node
}

// Insert adds key with value when key is absent. An existing key keeps its
// stored value and the call is a no-op.
func (tree *AVLTree[V]) Insert(key int, value V) error {
	_, err := tree.InsertIfAbsent(key, value)
	return err
}

// InsertIfAbsent is Insert that also reports whether a node was created.
func (tree *AVLTree[V]) InsertIfAbsent(key int, value V) (bool, error) {
	if err := checkValue(tree.opts, key, value); err != nil {
		observe(tree.opts.name, "insert", statusInvalid)
		return false, err
	}

	var inserted bool
	tree.Root, inserted = tree.insertRecursive(tree.Root, key, value)
	if !inserted {
		tree.opts.logger.Debug("insert ignored, key exists", zap.Int("key", key))
		observe(tree.opts.name, "insert", statusDuplicate)
		return false, nil
	}

	tree.count++
	observe(tree.opts.name, "insert", statusOK)
	Entries.WithLabelValues(tree.opts.name).Set(float64(tree.count))
	return true, nil
}

// Upsert inserts key or overwrites the value of an existing key. It reports
// whether an existing value was replaced.
func (tree *AVLTree[V]) Upsert(key int, value V) (bool, error) {
	if err := checkValue(tree.opts, key, value); err != nil {
		observe(tree.opts.name, "upsert", statusInvalid)
		return false, err
	}
	if node := tree.find(key); node != nil {
		node.Value = value
		observe(tree.opts.name, "upsert", statusOK)
		return true, nil
	}
	_, err := tree.InsertIfAbsent(key, value)
	return false, err
}

func (tree *AVLTree[V]) insertRecursive(node *AVLNode[V], key int, value V) (*AVLNode[V], bool) {
	if node == nil {
		return &AVLNode[V]{Key: key, Value: value, Height: 1}, true
	}

	var inserted bool
	switch {
	case key < node.Key:
		node.Left, inserted = tree.insertRecursive(node.Left, key, value)
	case key > node.Key:
		node.Right, inserted = tree.insertRecursive(node.Right, key, value)
	default:
		return node, false
	}

	if !inserted {
		return node, false
	}
	return tree.rebalance(node), true
}

// Remove deletes key and reports whether it was present.
func (tree *AVLTree[V]) Remove(key int) bool {
	var removed bool
	tree.Root, removed = tree.deleteRecursive(tree.Root, key)
	if !removed {
		observe(tree.opts.name, "remove", statusMiss)
		return false
	}

	tree.count--
	observe(tree.opts.name, "remove", statusOK)
	Entries.WithLabelValues(tree.opts.name).Set(float64(tree.count))
	return true
}

func (tree *AVLTree[V]) deleteRecursive(node *AVLNode[V], key int) (*AVLNode[V], bool) {
	if node == nil {
		return nil, false
	}

	var removed bool
	switch {
	case key < node.Key:
		node.Left, removed = tree.deleteRecursive(node.Left, key)
	case key > node.Key:
		node.Right, removed = tree.deleteRecursive(node.Right, key)
	default:
		if node.Left == nil {
			return node.Right, true
		}
		if node.Right == nil {
			return node.Left, true
		}
		// Two children: take over the in-order successor and remove it from
		// the right subtree.
		successor := findMin(node.Right)
		node.Key = successor.Key
		node.Value = successor.Value
		node.Right, _ = tree.deleteRecursive(node.Right, successor.Key)
		removed = true
	}

	if !removed {
		return node, false
	}
	return tree.rebalance(node), true
}

func findMin[V any](node *AVLNode[V]) *AVLNode[V] {
	for node.Left != nil {
		node = node.Left
	}
	return node
}

func findMax[V any](node *AVLNode[V]) *AVLNode[V] {
	for node.Right != nil {
		node = node.Right
	}
	return node
}

func (tree *AVLTree[V]) find(key int) *AVLNode[V] {
	node := tree.Root
	for node != nil {
		switch {
		case key < node.Key:
			node = node.Left
		case key > node.Key:
			node = node.Right
		default:
			return node
		}
	}
	return nil
}

// Search returns the value stored under key and whether it was found.
func (tree *AVLTree[V]) Search(key int) (V, bool) {
	if node := tree.find(key); node != nil {
		return node.Value, true
	}
	var zero V
	return zero, false
}

func (tree *AVLTree[V]) ContainsKey(key int) bool {
	return tree.find(key) != nil
}

// Modify replaces the value under key. Structure and heights are untouched.
func (tree *AVLTree[V]) Modify(key int, value V) (bool, error) {
	if err := checkValue(tree.opts, key, value); err != nil {
		observe(tree.opts.name, "modify", statusInvalid)
		return false, err
	}
	node := tree.find(key)
	if node == nil {
		observe(tree.opts.name, "modify", statusMiss)
		return false, nil
	}
	node.Value = value
	observe(tree.opts.name, "modify", statusOK)
	return true, nil
}

// Min returns the smallest key and its value.
func (tree *AVLTree[V]) Min() (int, V, bool) {
	if tree.Root == nil {
		var zero V
		return 0, zero, false
	}
	node := findMin(tree.Root)
	return node.Key, node.Value, true
}

// Max returns the largest key and its value.
func (tree *AVLTree[V]) Max() (int, V, bool) {
	if tree.Root == nil {
		var zero V
		return 0, zero, false
	}
	node := findMax(tree.Root)
	return node.Key, node.Value, true
}

// Clear drops every node.
func (tree *AVLTree[V]) Clear() {
	tree.Root = nil
	tree.count = 0
	Entries.WithLabelValues(tree.opts.name).Set(0)
}

func (tree *AVLTree[V]) InOrder(visit Visitor[V]) {
	inOrder(tree.Root, visit)
}

func (tree *AVLTree[V]) PreOrder(visit Visitor[V]) {
	preOrder(tree.Root, visit)
}

func (tree *AVLTree[V]) PostOrder(visit Visitor[V]) {
	postOrder(tree.Root, visit)
}

func inOrder[V any](node *AVLNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	inOrder(node.Left, visit)
	visit(node.Key, node.Value)
	inOrder(node.Right, visit)
}

func preOrder[V any](node *AVLNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	visit(node.Key, node.Value)
	preOrder(node.Left, visit)
	preOrder(node.Right, visit)
}

func postOrder[V any](node *AVLNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	postOrder(node.Left, visit)
	postOrder(node.Right, visit)
	visit(node.Key, node.Value)
}

// All yields entries in ascending key order and stops early when the
// consumer breaks out of the loop.
func (tree *AVLTree[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		ascend(tree.Root, yield)
	}
}

func ascend[V any](node *AVLNode[V], yield func(int, V) bool) bool {
	if node == nil {
		return true
	}
	return ascend(node.Left, yield) && yield(node.Key, node.Value) && ascend(node.Right, yield)
}

// rangeSearch appends every node whose Key satisfies low <= Key < high, in
// ascending order.
func rangeSearch[V any](node *AVLNode[V], low, high int, results *[]*AVLNode[V]) {
	if node == nil {
		return
	}

	if node.Key >= low {
		rangeSearch(node.Left, low, high, results)
	}

	if node.Key >= low && node.Key < high {
		*results = append(*results, node)
	}

	if node.Key < high {
		rangeSearch(node.Right, low, high, results)
	}
}

// Range returns the nodes with low <= key < high in ascending order.
func (tree *AVLTree[V]) Range(low, high int) []*AVLNode[V] {
	var results []*AVLNode[V]
	rangeSearch(tree.Root, low, high, &results)
	return results
}

func (tree *AVLTree[V]) Keys() []int {
	keys := make([]int, 0, tree.count)
	tree.InOrder(func(key int, _ V) {
		keys = append(keys, key)
	})
	return keys
}

// ToList returns the values in ascending key order.
func (tree *AVLTree[V]) ToList() []V {
	values := make([]V, 0, tree.count)
	tree.InOrder(func(_ int, value V) {
		values = append(values, value)
	})
	return values
}

func (tree *AVLTree[V]) ToDictionary() map[int]V {
	dict := make(map[int]V, tree.count)
	tree.InOrder(func(key int, value V) {
		dict[key] = value
	})
	return dict
}

// CheckInvariants walks the whole tree and reports the first broken
// ordering, height, balance or count invariant.
func (tree *AVLTree[V]) CheckInvariants() error {
	seen := 0
	if _, err := checkNode(tree.Root, nil, nil, &seen); err != nil {
		return err
	}
	if seen != tree.count {
		return fmt.Errorf("count is %d but tree holds %d nodes", tree.count, seen)
	}
	return nil
}

func checkNode[V any](node *AVLNode[V], low, high *int, seen *int) (int, error) {
	if node == nil {
		return 0, nil
	}
	*seen++
	if low != nil && node.Key <= *low {
		return 0, fmt.Errorf("key %d is not greater than %d", node.Key, *low)
	}
	if high != nil && node.Key >= *high {
		return 0, fmt.Errorf("key %d is not less than %d", node.Key, *high)
	}
	lh, err := checkNode(node.Left, low, &node.Key, seen)
	if err != nil {
		return 0, err
	}
	rh, err := checkNode(node.Right, &node.Key, high, seen)
	if err != nil {
		return 0, err
	}
	if node.Height != max(lh, rh)+1 {
		return 0, fmt.Errorf("key %d caches height %d, want %d", node.Key, node.Height, max(lh, rh)+1)
	}
	if bf := lh - rh; bf > 1 || bf < -1 {
		return 0, fmt.Errorf("key %d has balance factor %d", node.Key, bf)
	}
	return node.Height, nil
}
