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
	"time"

	"github.com/cybrota/garage/index"
	"go.uber.org/zap"
)

// LedgerConfig controls how the invoice ledger rebuilds after a void.
type LedgerConfig struct {
	SortedRebuild bool
}

// Ledger holds issued invoices in an integrity index so that an invoice
// altered outside Amend is detected by Verify and Audit.
type Ledger struct {
	tree   *index.MerkleTree[*Invoice]
	logger *zap.Logger
}

// AuditReport is the outcome of re-checking every invoice.
type AuditReport struct {
	RootHash string
	Checked  int
	Tampered []int
	At       time.Time
}

func (r AuditReport) Clean() bool {
	return len(r.Tampered) == 0
}

func NewLedger(config LedgerConfig, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ledger")

	opts := []index.Option[*Invoice]{
		index.WithName[*Invoice]("ledger"),
		index.WithLogger[*Invoice](logger),
		index.WithEncoder[*Invoice](EncodeInvoice),
		index.WithValidator[*Invoice](func(i *Invoice) error { return Validate(i) }),
	}
	if config.SortedRebuild {
		opts = append(opts, index.WithSortedRebuild[*Invoice]())
	}

	return &Ledger{
		tree:   index.NewMerkleTree(opts...),
		logger: logger,
	}
}

// Tree exposes the underlying index for traversal and rendering.
func (l *Ledger) Tree() *index.MerkleTree[*Invoice] {
	return l.tree
}

func (l *Ledger) Len() int {
	return l.tree.Count()
}

// Record adds a new invoice. Reusing an id fails with index.ErrDuplicateKey.
func (l *Ledger) Record(inv *Invoice) error {
	if inv == nil {
		return fmt.Errorf("ledger: %w: nil invoice", index.ErrInvalidArgument)
	}
	if err := l.tree.Insert(inv.ID, inv); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	l.logger.Debug("invoice recorded", zap.Int("id", inv.ID), zap.String("root", l.tree.GetRootHash()))
	return nil
}

// Amend replaces a recorded invoice and rehashes it.
func (l *Ledger) Amend(inv *Invoice) error {
	if inv == nil {
		return fmt.Errorf("ledger: %w: nil invoice", index.ErrInvalidArgument)
	}
	ok, err := l.tree.Modify(inv.ID, inv)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if !ok {
		return fmt.Errorf("ledger: %w: invoice %d", index.ErrKeyNotFound, inv.ID)
	}
	return nil
}

// Void removes an invoice, reporting whether it existed. Other invoices keep
// the digests they were recorded with, so earlier tampering stays visible.
func (l *Ledger) Void(id int) bool {
	return l.tree.Remove(id)
}

func (l *Ledger) Get(id int) (*Invoice, bool) {
	return l.tree.Search(id)
}

// Verify reports whether inv matches the recorded digest for its id.
func (l *Ledger) Verify(inv *Invoice) bool {
	if inv == nil {
		return false
	}
	return l.tree.VerifyData(inv.ID, inv)
}

// Check is Verify returning index.ErrIntegrityViolation on mismatch.
func (l *Ledger) Check(inv *Invoice) error {
	if !l.Verify(inv) {
		id := 0
		if inv != nil {
			id = inv.ID
		}
		return fmt.Errorf("ledger: %w: invoice %d", index.ErrIntegrityViolation, id)
	}
	return nil
}

func (l *Ledger) RootHash() string {
	return l.tree.GetRootHash()
}

// Invoices returns every invoice in ascending id order.
func (l *Ledger) Invoices() []*Invoice {
	return l.tree.ToList()
}

// Audit re-verifies every stored invoice against its recorded digest.
func (l *Ledger) Audit() AuditReport {
	return AuditReport{
		RootHash: l.tree.GetRootHash(),
		Checked:  l.tree.Count(),
		Tampered: l.tree.Audit(),
		At:       time.Now(),
	}
}
