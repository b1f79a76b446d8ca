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
	"testing"
	"time"

	"github.com/cybrota/garage/index"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoice(id int, customer string, total string) *Invoice {
	return &Invoice{
		ID:        id,
		ServiceID: 1,
		Customer:  customer,
		Total:     decimal.RequireFromString(total),
		IssuedAt:  time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestLedgerRecordAndVerify(t *testing.T) {
	l := NewLedger(LedgerConfig{}, nil)
	inv := newInvoice(10, "Ada", "99.90")
	require.NoError(t, l.Record(inv))
	assert.True(t, l.Verify(inv))
	require.NoError(t, l.Check(inv))
	assert.Len(t, l.RootHash(), 64)

	err := l.Record(newInvoice(10, "Bob", "1.00"))
	require.ErrorIs(t, err, index.ErrDuplicateKey)
	got, _ := l.Get(10)
	assert.Equal(t, "Ada", got.Customer)

	forged := newInvoice(10, "Ada", "9.90")
	assert.False(t, l.Verify(forged))
	require.ErrorIs(t, l.Check(forged), index.ErrIntegrityViolation)
	assert.False(t, l.Verify(nil))
}

func TestLedgerDetectsTampering(t *testing.T) {
	l := NewLedger(LedgerConfig{SortedRebuild: true}, nil)
	invoices := []*Invoice{
		newInvoice(10, "Ada", "10.00"),
		newInvoice(5, "Bob", "20.00"),
		newInvoice(15, "Cy", "30.00"),
	}
	for _, inv := range invoices {
		require.NoError(t, l.Record(inv))
	}
	report := l.Audit()
	assert.True(t, report.Clean())
	assert.Equal(t, 3, report.Checked)

	invoices[1].Total = decimal.RequireFromString("2.00")
	report = l.Audit()
	assert.False(t, report.Clean())
	assert.Equal(t, []int{5}, report.Tampered)

	// Amending through the ledger re-seals the invoice.
	before := l.RootHash()
	require.NoError(t, l.Amend(invoices[1]))
	assert.True(t, l.Audit().Clean())
	assert.NotEqual(t, before, l.RootHash())

	require.ErrorIs(t, l.Amend(newInvoice(77, "X", "1")), index.ErrKeyNotFound)
	require.ErrorIs(t, l.Amend(nil), index.ErrInvalidArgument)
}

func TestLedgerVoid(t *testing.T) {
	l := NewLedger(LedgerConfig{}, nil)
	for _, id := range []int{3, 1, 2} {
		require.NoError(t, l.Record(newInvoice(id, "C", "5.00")))
	}
	assert.True(t, l.Void(1))
	assert.False(t, l.Void(1))
	assert.Equal(t, 2, l.Len())

	assert.True(t, l.Void(2))
	assert.True(t, l.Void(3))
	assert.Equal(t, "", l.RootHash())
	assert.Empty(t, l.Invoices())
}

func TestLedgerRejectsInvalidInvoice(t *testing.T) {
	l := NewLedger(LedgerConfig{}, nil)
	require.ErrorIs(t, l.Record(nil), index.ErrInvalidArgument)
	require.ErrorIs(t, l.Record(newInvoice(1, "", "5.00")), index.ErrInvalidArgument)
	assert.Equal(t, 0, l.Len())
}

func TestLedgerVoidKeepsTamperedInvoiceFlagged(t *testing.T) {
	l := NewLedger(LedgerConfig{}, nil)
	invoices := map[int]*Invoice{
		10: newInvoice(10, "Ada", "10.00"),
		5:  newInvoice(5, "Bob", "20.00"),
		15: newInvoice(15, "Cy", "30.00"),
	}
	for _, id := range []int{10, 5, 15} {
		require.NoError(t, l.Record(invoices[id]))
	}

	invoices[5].Total = decimal.RequireFromString("2.00")
	require.Equal(t, []int{5}, l.Audit().Tampered)

	require.True(t, l.Void(15))
	report := l.Audit()
	assert.Equal(t, []int{5}, report.Tampered)
	assert.Equal(t, 2, report.Checked)
	assert.False(t, l.Verify(invoices[5]))
	require.ErrorIs(t, l.Check(invoices[5]), index.ErrIntegrityViolation)
}
