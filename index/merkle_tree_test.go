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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Customer string
	Amount   int
}

func (r *record) String() string {
	return fmt.Sprintf("%s/%d", r.Customer, r.Amount)
}

func TestLeafDigestEncoding(t *testing.T) {
	sum := sha256.Sum256([]byte("\x002:101:a"))
	assert.Equal(t, hex.EncodeToString(sum[:]), LeafDigest(10, "a"))
	assert.Len(t, LeafDigest(10, "a"), 64)

	// Without a delimiter these two records would serialize identically.
	assert.NotEqual(t, LeafDigest(1, "23"), LeafDigest(12, "3"))

	data := LeafDigest(1, "x")
	assert.Equal(t, data, NodeDigest("", data, ""))
	assert.NotEqual(t, NodeDigest(data, data, ""), NodeDigest("", data, data))
}

// Every node folds its own record digest between its children's digests, so
// the three-node root is a single NodeDigest over the two leaves and the root
// record rather than a hash nested inside another.
func TestMerkleTreeRootFoldsRecordAndChildren(t *testing.T) {
	tree := NewMerkleTree[string]()
	require.NoError(t, tree.Insert(10, "a"))
	require.NoError(t, tree.Insert(5, "b"))
	require.NoError(t, tree.Insert(15, "c"))

	require.NotNil(t, tree.Root)
	assert.Equal(t, 10, tree.Root.ID)
	assert.Equal(t, 5, tree.Root.Left.ID)
	assert.Equal(t, 15, tree.Root.Right.ID)

	want := NodeDigest(LeafDigest(5, "b"), LeafDigest(10, "a"), LeafDigest(15, "c"))
	assert.Equal(t, want, tree.GetRootHash())
}

func TestMerkleTreeEmptyRootHash(t *testing.T) {
	tree := NewMerkleTree[string]()
	assert.Equal(t, "", tree.GetRootHash())

	require.NoError(t, tree.Insert(1, "a"))
	assert.NotEmpty(t, tree.GetRootHash())
	assert.Equal(t, LeafDigest(1, "a"), tree.GetRootHash())
}

func TestMerkleTreeInsertDuplicate(t *testing.T) {
	tree := NewMerkleTree[string]()
	require.NoError(t, tree.Insert(1, "a"))
	root := tree.GetRootHash()

	err := tree.Insert(1, "b")
	require.ErrorIs(t, err, ErrDuplicateKey)
	v, _ := tree.Search(1)
	assert.Equal(t, "a", v)
	assert.Equal(t, root, tree.GetRootHash())

	inserted, err := tree.InsertIfAbsent(1, "c")
	require.NoError(t, err)
	assert.False(t, inserted)

	replaced, err := tree.Upsert(1, "d")
	require.NoError(t, err)
	assert.True(t, replaced)
	v, _ = tree.Search(1)
	assert.Equal(t, "d", v)
	assert.NotEqual(t, root, tree.GetRootHash())
}

func TestMerkleTreeRejectsMissingValue(t *testing.T) {
	tree := NewMerkleTree[*record]()
	require.ErrorIs(t, tree.Insert(1, nil), ErrInvalidArgument)
	assert.Equal(t, 0, tree.Count())

	require.NoError(t, tree.Insert(1, &record{Customer: "x"}))
	_, err := tree.Modify(1, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, tree.VerifyData(1, nil))
}

func TestMerkleTreeVerifyData(t *testing.T) {
	tree := NewMerkleTree[*record]()
	ids := []int{50, 20, 80, 10, 30}
	stored := map[int]*record{}
	for _, id := range ids {
		r := &record{Customer: gofakeit.Name(), Amount: gofakeit.Number(1, 1000)}
		require.NoError(t, tree.Insert(id, r))
		assert.True(t, tree.VerifyData(id, r), "fresh insert %d", id)
		stored[id] = r
	}

	// Records that became internal nodes still verify.
	for id, r := range stored {
		assert.True(t, tree.VerifyData(id, r), "id %d", id)
	}
	assert.False(t, tree.VerifyData(99, stored[50]))
	assert.False(t, tree.VerifyData(50, &record{Customer: "someone else"}))
	assert.Empty(t, tree.Audit())

	// Mutating the stored value behind the index's back.
	root := tree.GetRootHash()
	stored[20].Amount++
	assert.False(t, tree.VerifyData(20, stored[20]))
	assert.Equal(t, []int{20}, tree.Audit())
	assert.Equal(t, root, tree.GetRootHash())

	tree.Rehash()
	assert.Empty(t, tree.Audit())
	assert.NotEqual(t, root, tree.GetRootHash())
}

func TestMerkleTreeModify(t *testing.T) {
	tree := NewMerkleTree[string]()
	for _, id := range []int{10, 5, 15, 3, 7} {
		require.NoError(t, tree.Insert(id, fmt.Sprint("v", id)))
	}

	for _, id := range []int{10, 3, 15} {
		before := tree.GetRootHash()
		ok, err := tree.Modify(id, "changed")
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEqual(t, before, tree.GetRootHash(), "modify %d", id)
		assert.True(t, tree.VerifyData(id, "changed"))
	}

	// The path-only rehash must agree with a full recompute.
	root := tree.GetRootHash()
	tree.Rehash()
	assert.Equal(t, root, tree.GetRootHash())

	ok, err := tree.Modify(42, "x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, tree.ContainsKey(42))
}

func TestMerkleTreeRemove(t *testing.T) {
	tree := NewMerkleTree[string]()
	for _, id := range []int{10, 5, 15, 3} {
		require.NoError(t, tree.Insert(id, "v"))
	}

	assert.True(t, tree.Remove(5))
	assert.False(t, tree.ContainsKey(5))
	assert.Equal(t, 3, tree.Count())
	assert.False(t, tree.Remove(5))

	var ids []int
	tree.InOrder(func(id int, _ string) { ids = append(ids, id) })
	assert.Equal(t, []int{3, 10, 15}, ids)
	for _, id := range ids {
		assert.True(t, tree.VerifyData(id, "v"))
	}
}

func TestMerkleTreeRemoveKeepsTamperEvidence(t *testing.T) {
	for _, sorted := range []bool{false, true} {
		t.Run(fmt.Sprintf("sorted=%v", sorted), func(t *testing.T) {
			var opts []Option[*record]
			if sorted {
				opts = append(opts, WithSortedRebuild[*record]())
			}
			tree := NewMerkleTree(opts...)
			stored := map[int]*record{}
			for _, id := range []int{10, 5, 15, 3, 7} {
				stored[id] = &record{Customer: gofakeit.Name(), Amount: id}
				require.NoError(t, tree.Insert(id, stored[id]))
			}

			stored[5].Amount = 500
			require.Equal(t, []int{5}, tree.Audit())

			require.True(t, tree.Remove(15))
			assert.Equal(t, []int{5}, tree.Audit())
			assert.False(t, tree.VerifyData(5, stored[5]))
			assert.True(t, tree.VerifyData(7, stored[7]))

			// Removing the tampered record itself clears the finding.
			require.True(t, tree.Remove(5))
			assert.Empty(t, tree.Audit())
		})
	}
}

func TestMerkleTreeRemoveAllLeavesEmpty(t *testing.T) {
	tree := NewMerkleTree[string]()
	ids := []int{8, 4, 12, 2, 6, 10, 14}
	for _, id := range ids {
		require.NoError(t, tree.Insert(id, gofakeit.Word()))
	}
	for _, id := range ids {
		require.True(t, tree.Remove(id))
	}
	assert.Nil(t, tree.Root)
	assert.Equal(t, "", tree.GetRootHash())
	assert.Equal(t, 0, tree.Count())
}

func TestMerkleTreeSortedRebuildIsReproducible(t *testing.T) {
	build := func() *MerkleTree[string] {
		tree := NewMerkleTree(WithSortedRebuild[string]())
		for _, id := range []int{5, 9, 1, 7, 3, 11} {
			require.NoError(t, tree.Insert(id, fmt.Sprint("v", id)))
		}
		require.True(t, tree.Remove(9))
		return tree
	}

	a, b := build(), build()
	assert.Equal(t, a.GetRootHash(), b.GetRootHash())
	// Ascending re-insertion degenerates into a right spine.
	assert.Equal(t, 1, a.Root.ID)
	assert.Equal(t, a.Count(), a.Height())
}

func TestMerkleTreeTraversals(t *testing.T) {
	tree := NewMerkleTree[string]()
	for _, id := range []int{2, 1, 3} {
		require.NoError(t, tree.Insert(id, "v"))
	}
	collect := func(walk func(Visitor[string])) []int {
		var ids []int
		walk(func(id int, _ string) { ids = append(ids, id) })
		return ids
	}
	assert.Equal(t, []int{1, 2, 3}, collect(tree.InOrder))
	assert.Equal(t, []int{2, 1, 3}, collect(tree.PreOrder))
	assert.Equal(t, []int{1, 3, 2}, collect(tree.PostOrder))
	assert.Equal(t, []string{"v", "v", "v"}, tree.ToList())

	tree.Clear()
	assert.Equal(t, "", tree.GetRootHash())
	assert.Equal(t, 0, tree.Height())
}

func TestRender(t *testing.T) {
	avl := NewAVLTree[string](WithName[string]("parts"))
	assert.Contains(t, RenderAVL(avl, nil), "parts (empty)")
	for _, k := range []int{2, 1} {
		require.NoError(t, avl.Insert(k, "p"))
	}
	out := RenderAVL(avl, nil)
	assert.Contains(t, out, "2: p [h=2]")
	assert.Contains(t, out, "1: p [h=1]")

	m := NewMerkleTree[string](WithName[string]("ledger"))
	require.NoError(t, m.Insert(1, "a"))
	out = RenderMerkle(m, func(id int, v string) string { return fmt.Sprintf("#%d=%s", id, v) })
	assert.Contains(t, out, "ledger root="+m.GetRootHash()[:shortHashLen])
	assert.Contains(t, out, "#1=a")
}
