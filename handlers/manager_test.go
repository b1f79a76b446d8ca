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
package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cybrota/garage/index"
	"github.com/cybrota/garage/snapshot"
	"github.com/cybrota/garage/workshop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*HandlerManager, *workshop.Workshop, *string) {
	t.Helper()
	w := workshop.New(workshop.Config{}, nil)
	copied := new(string)
	manager := NewHandlerManager(w, func(text string) error {
		*copied = text
		return nil
	})
	return manager, w, copied
}

func run(t *testing.T, m *HandlerManager, line string) string {
	t.Helper()
	out, err := m.Dispatch(strings.Fields(line))
	require.NoError(t, err, line)
	return out
}

func TestHandlerManagerWorkflow(t *testing.T) {
	manager, w, copied := newTestManager(t)

	assert.Equal(t, "part 2 added", run(t, manager, "part add 2 OIL-1 oil 4 25.50"))
	assert.Equal(t, "part 1 added", run(t, manager, "part add 1 FLT-1 filter 2 7.25"))
	assert.Equal(t, "part 1 already exists, unchanged", run(t, manager, "part add 1 XXX other 9 1"))
	assert.Contains(t, run(t, manager, "part get 1"), "FLT-1")
	assert.Contains(t, run(t, manager, "part find OIL-1"), "oil")

	out := run(t, manager, "part ls")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "FLT-1")

	assert.Equal(t, "service 1 added", run(t, manager, "service add 1 oil-change 40 1 2"))
	assert.Equal(t, "service 1 quote: 72.75", run(t, manager, "service quote 1"))

	assert.Contains(t, run(t, manager, "invoice issue 10 1 Ada"), "total 72.75")
	assert.Equal(t, "invoice 10 verified", run(t, manager, "invoice verify 10"))
	assert.Contains(t, run(t, manager, "ledger audit"), "1 invoices verified")

	root := run(t, manager, "ledger root")
	assert.Equal(t, w.Ledger.RootHash(), root)
	assert.Equal(t, "root hash copied to clipboard", run(t, manager, "ledger copy"))
	assert.Equal(t, root, *copied)

	assert.Contains(t, run(t, manager, "invoice amend 10 Ada 70"), "amended")
	assert.NotEqual(t, root, w.Ledger.RootHash())

	assert.Contains(t, run(t, manager, "tree parts"), "1 FLT-1")
	assert.Contains(t, run(t, manager, "tree ledger"), "10 70.00")

	assert.Contains(t, run(t, manager, "invoice void 10"), "voided")
	assert.Equal(t, "ledger is empty", run(t, manager, "ledger root"))
}

func TestHandlerManagerErrors(t *testing.T) {
	manager, w, _ := newTestManager(t)

	_, err := manager.Dispatch([]string{"launch", "rocket"})
	require.ErrorIs(t, err, ErrUnknownCommand)

	_, err = manager.Dispatch(nil)
	require.Error(t, err)

	_, err = manager.Dispatch([]string{"part", "add", "1"})
	require.ErrorIs(t, err, ErrUsage)

	_, err = manager.Dispatch([]string{"part", "add", "x", "C", "n", "1", "1"})
	require.Error(t, err)

	_, err = manager.Dispatch([]string{"service", "add", "1", "s", "10", "99"})
	require.ErrorIs(t, err, index.ErrKeyNotFound)

	assert.Equal(t, "part 5 not found", run(t, manager, "part rm 5"))
	assert.Equal(t, "invoice 5 not found", run(t, manager, "invoice verify 5"))

	run(t, manager, "part add 1 C name 1 2")
	run(t, manager, "service add 1 s 10")
	run(t, manager, "invoice issue 3 1 Bob")
	inv, _ := w.Ledger.Get(3)
	inv.Customer = "Mallory"

	_, err = manager.Dispatch([]string{"invoice", "verify", "3"})
	require.ErrorIs(t, err, index.ErrIntegrityViolation)
	_, err = manager.Dispatch([]string{"ledger", "audit"})
	require.ErrorIs(t, err, index.ErrIntegrityViolation)
	assert.Contains(t, err.Error(), "1 of 1 invoices")
}

func TestLedgerCopyFailure(t *testing.T) {
	w := workshop.New(workshop.Config{}, nil)
	manager := NewHandlerManager(w, func(string) error { return errors.New("no clipboard") })
	run(t, manager, "part add 1 C name 1 2")
	run(t, manager, "service add 1 s 10 1")
	run(t, manager, "invoice issue 3 1 Bob")

	_, err := manager.Dispatch([]string{"ledger", "copy"})
	require.Error(t, err)
}

func TestSnapshotHandler(t *testing.T) {
	manager, w, _ := newTestManager(t)
	run(t, manager, "part add 1 C name 1 2")
	run(t, manager, "service add 1 s 10 1")
	run(t, manager, "invoice issue 3 1 Bob")

	path := filepath.Join(t.TempDir(), "backup.yaml")
	assert.Contains(t, run(t, manager, "save "+path), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	doc, err := snapshot.Read(file)
	require.NoError(t, err)
	assert.Equal(t, w.Ledger.RootHash(), doc.RootHash)
}

func TestCommand(t *testing.T) {
	cmd := NewCommand([]string{"part", "add", "1"})

	assert.Equal(t, "part", cmd.BaseCmd)
	assert.True(t, cmd.HasSubCommand(2))
	assert.Equal(t, "add", cmd.GetSubCommand(0))
	assert.Equal(t, "", cmd.GetSubCommand(5))
	assert.Equal(t, []string{"1"}, cmd.Args())
	assert.Equal(t, "part add 1", cmd.FullName)

	m, _, _ := newTestManager(t)
	assert.Len(t, m.Usage(), 23)
}

func TestPartSetUpserts(t *testing.T) {
	manager, w, _ := newTestManager(t)

	assert.Equal(t, "part 4 added", run(t, manager, "part set 4 BLT-4 belt 1 12"))
	assert.Equal(t, "part 4 updated", run(t, manager, "part set 4 BLT-4 belt 3 11.50"))
	p, ok := w.Parts.Get(4)
	require.True(t, ok)
	assert.Equal(t, 3, p.Quantity)
	assert.Contains(t, run(t, manager, "part find BLT-4"), "belt")
}

func TestMetricsHandler(t *testing.T) {
	manager, _, _ := newTestManager(t)
	run(t, manager, "part add 1 C name 1 2")
	run(t, manager, "service add 1 s 10 1")
	run(t, manager, "invoice issue 3 1 Bob")
	run(t, manager, "invoice void 3")

	out := run(t, manager, "metrics")
	assert.Contains(t, out, "# TYPE garage_index_operations_total counter")
	assert.Contains(t, out, `garage_index_operations_total{index="parts",op="insert",status="ok"}`)
	assert.Contains(t, out, `garage_index_rebuilds_total{index="ledger"}`)
	assert.Contains(t, out, `garage_index_entries{index="services"}`)
	assert.NotContains(t, out, "go_goroutines")

	_, err := manager.Dispatch([]string{"metrics", "now"})
	require.ErrorIs(t, err, ErrUsage)
}
