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
	"maps"
	"slices"

	"go.uber.org/zap"
)

// MerkleTree is an ordered index keyed by id in which every node carries a
// digest over its record and its subtrees, so that any change to a stored
// value shows up in the root hash. Nodes are placed by plain BST insertion
// without rebalancing. Lookups go through a direct id map.
type MerkleTree[V any] struct {
	Root  *MerkleNode[V]
	nodes map[int]*MerkleNode[V]
	opts  *options[V]
}

func NewMerkleTree[V any](opts ...Option[V]) *MerkleTree[V] {
	return &MerkleTree[V]{
		nodes: make(map[int]*MerkleNode[V]),
		opts:  newOptions("merkle", opts),
	}
}

func (tree *MerkleTree[V]) Name() string {
	return tree.opts.name
}

func (tree *MerkleTree[V]) Count() int {
	return len(tree.nodes)
}

// Height is whatever insertion order produced; there is no rebalancing.
func (tree *MerkleTree[V]) Height() int {
	return tree.Root.height()
}

// GetRootHash returns the digest of the whole tree, "" when it is empty.
func (tree *MerkleTree[V]) GetRootHash() string {
	return tree.Root.hash()
}

// Insert adds id with value. An existing id is rejected with ErrDuplicateKey
// and nothing changes.
func (tree *MerkleTree[V]) Insert(id int, value V) error {
	if err := checkValue(tree.opts, id, value); err != nil {
		observe(tree.opts.name, "insert", statusInvalid)
		return err
	}
	if _, ok := tree.nodes[id]; ok {
		tree.opts.logger.Debug("insert rejected, id exists", zap.Int("id", id))
		observe(tree.opts.name, "insert", statusDuplicate)
		return fmt.Errorf("%w: id %d", ErrDuplicateKey, id)
	}

	tree.Root = tree.insertRecursive(tree.Root, id, value)
	observe(tree.opts.name, "insert", statusOK)
	Entries.WithLabelValues(tree.opts.name).Set(float64(len(tree.nodes)))
	return nil
}

// InsertIfAbsent inserts id unless it exists and reports whether it did.
func (tree *MerkleTree[V]) InsertIfAbsent(id int, value V) (bool, error) {
	if err := checkValue(tree.opts, id, value); err != nil {
		observe(tree.opts.name, "insert", statusInvalid)
		return false, err
	}
	if _, ok := tree.nodes[id]; ok {
		observe(tree.opts.name, "insert", statusDuplicate)
		return false, nil
	}
	return true, tree.Insert(id, value)
}

// Upsert inserts id or modifies its value, reporting whether a value was
// replaced.
func (tree *MerkleTree[V]) Upsert(id int, value V) (bool, error) {
	if _, ok := tree.nodes[id]; ok {
		return tree.Modify(id, value)
	}
	return false, tree.Insert(id, value)
}

// insertRecursive hashes a new record and places it.
func (tree *MerkleTree[V]) insertRecursive(node *MerkleNode[V], id int, value V) *MerkleNode[V] {
	leaf := &MerkleNode[V]{ID: id, Value: value}
	leaf.rehash(tree.opts.encode)
	return tree.place(node, leaf)
}

// place links leaf below node by id and relinks every node on the way back
// up to the root. The leaf's DataHash is taken as given.
func (tree *MerkleTree[V]) place(node, leaf *MerkleNode[V]) *MerkleNode[V] {
	if node == nil {
		tree.nodes[leaf.ID] = leaf
		return leaf
	}

	if leaf.ID < node.ID {
		node.Left = tree.place(node.Left, leaf)
	} else {
		node.Right = tree.place(node.Right, leaf)
	}
	node.relink()
	return node
}

// Search looks id up in the direct map without walking the tree.
func (tree *MerkleTree[V]) Search(id int) (V, bool) {
	if node, ok := tree.nodes[id]; ok {
		return node.Value, true
	}
	var zero V
	return zero, false
}

func (tree *MerkleTree[V]) ContainsKey(id int) bool {
	_, ok := tree.nodes[id]
	return ok
}

// Modify replaces the value stored under id and rehashes the path from that
// node to the root.
func (tree *MerkleTree[V]) Modify(id int, value V) (bool, error) {
	if err := checkValue(tree.opts, id, value); err != nil {
		observe(tree.opts.name, "modify", statusInvalid)
		return false, err
	}
	node, ok := tree.nodes[id]
	if !ok {
		observe(tree.opts.name, "modify", statusMiss)
		return false, nil
	}

	node.Value = value
	node.rehash(tree.opts.encode)
	tree.relinkPath(tree.Root, id)
	observe(tree.opts.name, "modify", statusOK)
	return true, nil
}

func (tree *MerkleTree[V]) relinkPath(node *MerkleNode[V], id int) {
	if node == nil || node.ID == id {
		return
	}
	if id < node.ID {
		tree.relinkPath(node.Left, id)
	} else {
		tree.relinkPath(node.Right, id)
	}
	node.relink()
}

// Rehash recomputes every digest bottom-up from the stored values.
func (tree *MerkleTree[V]) Rehash() {
	rehashAll(tree.Root, tree.opts.encode)
}

func rehashAll[V any](node *MerkleNode[V], encode EncodeFunc[V]) {
	if node == nil {
		return
	}
	rehashAll(node.Left, encode)
	rehashAll(node.Right, encode)
	node.rehash(encode)
}

// VerifyData reports whether (id, value) hashes to the record digest stored
// for id. A false result means the value differs from what was hashed at
// insert or modify time; the index never repairs it.
func (tree *MerkleTree[V]) VerifyData(id int, value V) bool {
	node, ok := tree.nodes[id]
	if !ok || isMissing(value) {
		return false
	}
	return LeafDigest(id, tree.opts.encode(value)) == node.DataHash
}

// Audit re-encodes every stored value and returns, in ascending order, the
// ids whose record digest no longer matches.
func (tree *MerkleTree[V]) Audit() []int {
	var tampered []int
	tree.InOrder(func(id int, value V) {
		if !tree.VerifyData(id, value) {
			tampered = append(tampered, id)
		}
	})
	if len(tampered) > 0 {
		tree.opts.logger.Warn("integrity audit found mismatches", zap.Ints("ids", tampered))
	}
	return tampered
}

// Remove drops id and rebuilds the tree from the remaining records. Each
// survivor keeps the record digest it was stored with, so a value changed
// outside Modify still fails VerifyData afterwards. The re-insertion order
// follows map iteration unless WithSortedRebuild is set, so the resulting
// shape and intermediate hashes are not reproducible by default.
func (tree *MerkleTree[V]) Remove(id int) bool {
	if _, ok := tree.nodes[id]; !ok {
		observe(tree.opts.name, "remove", statusMiss)
		return false
	}
	delete(tree.nodes, id)
	tree.rebuild()
	observe(tree.opts.name, "remove", statusOK)
	Entries.WithLabelValues(tree.opts.name).Set(float64(len(tree.nodes)))
	return true
}

func (tree *MerkleTree[V]) rebuild() {
	survivors := tree.nodes
	tree.Root = nil
	tree.nodes = make(map[int]*MerkleNode[V], len(survivors))

	replant := func(old *MerkleNode[V]) {
		leaf := &MerkleNode[V]{ID: old.ID, Value: old.Value, DataHash: old.DataHash}
		leaf.relink()
		tree.Root = tree.place(tree.Root, leaf)
	}
	if tree.opts.sortedRebuild {
		for _, id := range slices.Sorted(maps.Keys(survivors)) {
			replant(survivors[id])
		}
	} else {
		for _, node := range survivors {
			replant(node)
		}
	}

	Rebuilds.WithLabelValues(tree.opts.name).Inc()
	tree.opts.logger.Debug("rebuilt integrity tree",
		zap.Int("entries", len(tree.nodes)),
		zap.Bool("sorted", tree.opts.sortedRebuild),
	)
}

// Clear drops every record.
func (tree *MerkleTree[V]) Clear() {
	tree.Root = nil
	tree.nodes = make(map[int]*MerkleNode[V])
	Entries.WithLabelValues(tree.opts.name).Set(0)
}

func (tree *MerkleTree[V]) InOrder(visit Visitor[V]) {
	merkleInOrder(tree.Root, visit)
}

func (tree *MerkleTree[V]) PreOrder(visit Visitor[V]) {
	merklePreOrder(tree.Root, visit)
}

func (tree *MerkleTree[V]) PostOrder(visit Visitor[V]) {
	merklePostOrder(tree.Root, visit)
}

func merkleInOrder[V any](node *MerkleNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	merkleInOrder(node.Left, visit)
	visit(node.ID, node.Value)
	merkleInOrder(node.Right, visit)
}

func merklePreOrder[V any](node *MerkleNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	visit(node.ID, node.Value)
	merklePreOrder(node.Left, visit)
	merklePreOrder(node.Right, visit)
}

func merklePostOrder[V any](node *MerkleNode[V], visit Visitor[V]) {
	if node == nil {
		return
	}
	merklePostOrder(node.Left, visit)
	merklePostOrder(node.Right, visit)
	visit(node.ID, node.Value)
}

// ToList returns the values in ascending id order.
func (tree *MerkleTree[V]) ToList() []V {
	values := make([]V, 0, len(tree.nodes))
	tree.InOrder(func(_ int, value V) {
		values = append(values, value)
	})
	return values
}
