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
package workshop

import (
	"fmt"

	"github.com/cybrota/garage/index"
	"github.com/willf/bloom"
	"go.uber.org/zap"
)

// CatalogConfig sizes the label filter of a catalog.
type CatalogConfig struct {
	BloomFilterSize   uint
	BloomFilterHashes uint
}

var DefaultCatalogConfig = CatalogConfig{
	BloomFilterSize:   1 << 16,
	BloomFilterHashes: 5,
}

// Catalog keeps one entity type ordered by id in a balanced index. Labels
// (part codes, service names) go through a bloom filter so that lookups for
// unknown labels never walk the tree.
type Catalog[T any] struct {
	name    string
	tree    *index.KeyedTree[T]
	labelOf func(T) string
	labels  *bloom.BloomFilter
	logger  *zap.Logger
}

func NewCatalog[T any](name string, keyOf index.KeyFunc[T], labelOf func(T) string, config CatalogConfig, logger *zap.Logger) *Catalog[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BloomFilterSize == 0 || config.BloomFilterHashes == 0 {
		config = DefaultCatalogConfig
	}
	logger = logger.Named(name)

	return &Catalog[T]{
		name: name,
		tree: index.NewKeyedTree(keyOf,
			index.WithName[T](name),
			index.WithLogger[T](logger),
			index.WithValidator[T](func(v T) error { return Validate(v) }),
		),
		labelOf: labelOf,
		labels:  bloom.New(config.BloomFilterSize, config.BloomFilterHashes),
		logger:  logger,
	}
}

func (c *Catalog[T]) Name() string {
	return c.name
}

// Tree exposes the underlying index for traversal and rendering.
func (c *Catalog[T]) Tree() *index.AVLTree[T] {
	return c.tree.AVLTree
}

func (c *Catalog[T]) Len() int {
	return c.tree.Count()
}

// Add stores entity unless its id is taken. It reports whether it was added.
func (c *Catalog[T]) Add(entity T) (bool, error) {
	added, err := c.tree.Add(entity)
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.name, err)
	}
	if added {
		c.labels.AddString(c.labelOf(entity))
	} else {
		c.logger.Debug("entity exists, keeping stored value", zap.Int("id", c.tree.KeyOf(entity)))
	}
	return added, nil
}

// Put stores entity, replacing any entity with the same id.
func (c *Catalog[T]) Put(entity T) (bool, error) {
	replaced, err := c.tree.Put(entity)
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.name, err)
	}
	c.labels.AddString(c.labelOf(entity))
	return replaced, nil
}

// Update replaces an existing entity. Unknown ids yield index.ErrKeyNotFound.
func (c *Catalog[T]) Update(entity T) error {
	ok, err := c.tree.Replace(entity)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w: id %d", c.name, index.ErrKeyNotFound, c.tree.KeyOf(entity))
	}
	c.labels.AddString(c.labelOf(entity))
	return nil
}

func (c *Catalog[T]) Get(id int) (T, bool) {
	return c.tree.Search(id)
}

func (c *Catalog[T]) Contains(id int) bool {
	return c.tree.ContainsKey(id)
}

func (c *Catalog[T]) Remove(id int) bool {
	return c.tree.Remove(id)
}

// List returns every entity in ascending id order.
func (c *Catalog[T]) List() []T {
	return c.tree.ToList()
}

// Between returns the entities with low <= id < high in ascending order.
func (c *Catalog[T]) Between(low, high int) []T {
	nodes := c.tree.Range(low, high)
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value)
	}
	return out
}

// FindByLabel returns the first entity, by id, whose label equals label.
// The filter never forgets a label, so removed or relabelled entities only
// cost a scan, never a wrong answer.
func (c *Catalog[T]) FindByLabel(label string) (T, bool) {
	var zero T
	if !c.labels.TestString(label) {
		return zero, false
	}
	for _, entity := range c.tree.All() {
		if c.labelOf(entity) == label {
			return entity, true
		}
	}
	return zero, false
}
