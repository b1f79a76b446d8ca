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

// MerkleNode is a node of the integrity index. DataHash covers the node's own
// record; Hash additionally covers both subtrees.
type MerkleNode[V any] struct {
	ID       int
	Value    V
	DataHash string
	Hash     string
	Left     *MerkleNode[V]
	Right    *MerkleNode[V]
}

func (n *MerkleNode[V]) hash() string {
	if n == nil {
		return ""
	}
	return n.Hash
}

func (n *MerkleNode[V]) height() int {
	if n == nil {
		return 0
	}
	return max(n.Left.height(), n.Right.height()) + 1
}

func (n *MerkleNode[V]) rehash(encode EncodeFunc[V]) {
	n.DataHash = LeafDigest(n.ID, encode(n.Value))
	n.relink()
}

// relink recomputes Hash from the current DataHash and child hashes.
func (n *MerkleNode[V]) relink() {
	n.Hash = NodeDigest(n.Left.hash(), n.DataHash, n.Right.hash())
}
