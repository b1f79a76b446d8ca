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

	"github.com/xlab/treeprint"
)

// LabelFunc renders a single entry for tree printing.
type LabelFunc[V any] func(key int, value V) string

const shortHashLen = 12

func defaultLabel[V any](key int, value V) string {
	return fmt.Sprintf("%d: %v", key, value)
}

// RenderAVL draws the balanced index as an ASCII tree, left child first.
// A nil label prints "key: value".
func RenderAVL[V any](tree *AVLTree[V], label LabelFunc[V]) string {
	if label == nil {
		label = defaultLabel[V]
	}
	if tree.Root == nil {
		return treeprint.NewWithRoot(tree.Name() + " (empty)").String()
	}
	out := treeprint.NewWithRoot(fmt.Sprintf("%s (%d entries, height %d)", tree.Name(), tree.Count(), tree.Height()))
	addAVLBranch(out, tree.Root, label)
	return out.String()
}

func addAVLBranch[V any](parent treeprint.Tree, node *AVLNode[V], label LabelFunc[V]) {
	text := fmt.Sprintf("%s [h=%d]", label(node.Key, node.Value), node.Height)
	if node.Left == nil && node.Right == nil {
		parent.AddNode(text)
		return
	}
	branch := parent.AddBranch(text)
	for _, child := range []*AVLNode[V]{node.Left, node.Right} {
		if child == nil {
			branch.AddNode("-")
			continue
		}
		addAVLBranch(branch, child, label)
	}
}

// RenderMerkle draws the integrity index with shortened node digests.
func RenderMerkle[V any](tree *MerkleTree[V], label LabelFunc[V]) string {
	if label == nil {
		label = defaultLabel[V]
	}
	if tree.Root == nil {
		return treeprint.NewWithRoot(tree.Name() + " (empty)").String()
	}
	out := treeprint.NewWithRoot(fmt.Sprintf("%s root=%s", tree.Name(), shortHash(tree.GetRootHash())))
	addMerkleBranch(out, tree.Root, label)
	return out.String()
}

func addMerkleBranch[V any](parent treeprint.Tree, node *MerkleNode[V], label LabelFunc[V]) {
	text := fmt.Sprintf("%s #%s", label(node.ID, node.Value), shortHash(node.Hash))
	if node.Left == nil && node.Right == nil {
		parent.AddNode(text)
		return
	}
	branch := parent.AddBranch(text)
	for _, child := range []*MerkleNode[V]{node.Left, node.Right} {
		if child == nil {
			branch.AddNode("-")
			continue
		}
		addMerkleBranch(branch, child, label)
	}
}

func shortHash(h string) string {
	if len(h) <= shortHashLen {
		return h
	}
	return h[:shortHashLen]
}
