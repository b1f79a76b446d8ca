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

// AVLNode is a node of the balanced index. A node owns its children.
type AVLNode[V any] struct {
	Key    int
	Value  V
	Height int
	Left   *AVLNode[V]
	Right  *AVLNode[V]
}

func (n *AVLNode[V]) height() int {
	if n == nil {
		return 0
	}
	return n.Height
}

func (n *AVLNode[V]) updateHeight() {
	n.Height = max(n.Left.height(), n.Right.height()) + 1
}

func (n *AVLNode[V]) balanceFactor() int {
	if n == nil {
		return 0
	}
	return n.Left.height() - n.Right.height()
}
