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
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cybrota/garage/handlers"
	"github.com/cybrota/garage/workshop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, script string) (string, int, *workshop.Workshop) {
	t.Helper()
	w := workshop.New(workshop.Config{}, nil)
	manager := handlers.NewHandlerManager(w, func(string) error { return nil })

	var out bytes.Buffer
	shell := NewShell(manager, strings.NewReader(script), &out, PlainStyles(), nil)
	shell.prompt = false
	failures, err := shell.Run()
	require.NoError(t, err)
	return out.String(), failures, w
}

func TestShellRunsScript(t *testing.T) {
	script := `
# parts first
part add 1 FLT-1 "Oil filter" 3 8.25
part add 2 OIL-1 "Engine oil 5W30" 3 30
service add 1 "Oil change" 40 1 2
invoice issue 10 1 "Ada Lovelace"
invoice verify 10
ledger audit
quit
part add 3 NEVER reached 1 1
`
	out, failures, w := runScript(t, script)

	assert.Equal(t, 0, failures)
	assert.Contains(t, out, "part 2 added")
	assert.Contains(t, out, "invoice 10 verified")
	assert.Contains(t, out, "1 invoices verified")
	assert.False(t, w.Parts.Contains(3))

	p, ok := w.Parts.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Engine oil 5W30", p.Name)
	inv, ok := w.Ledger.Get(10)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", inv.Customer)
}

func TestShellReportsFailures(t *testing.T) {
	script := `
bogus command
part add 1
part add 1 "unterminated
help
`
	out, failures, _ := runScript(t, script)

	assert.Equal(t, 3, failures)
	assert.Contains(t, out, "error: unknown command")
	assert.Contains(t, out, "error: usage")
	assert.Contains(t, out, "part add <id> <code> <name> <qty> <price>")
}

func TestShellWarnsOnTampering(t *testing.T) {
	w := workshop.New(workshop.Config{}, nil)
	manager := handlers.NewHandlerManager(w, func(string) error { return nil })
	for _, line := range [][]string{
		{"part", "add", "1", "C", "name", "2", "2"},
		{"service", "add", "1", "s", "10", "1"},
		{"invoice", "issue", "3", "1", "Bob"},
		{"invoice", "issue", "4", "1", "Eve"},
	} {
		_, err := manager.Dispatch(line)
		require.NoError(t, err)
	}
	inv, _ := w.Ledger.Get(3)
	inv.Customer = "Mallory"

	var out bytes.Buffer
	shell := NewShell(manager, strings.NewReader("invoice void 4\nledger audit\nbogus\n"), &out, PlainStyles(), nil)
	shell.prompt = false
	failures, err := shell.Run()
	require.NoError(t, err)

	assert.Equal(t, 2, failures)
	assert.Contains(t, out.String(), "invoice 4 voided")
	assert.Contains(t, out.String(), "warning: integrity violation: 1 of 1 invoices fail verification: [3]")
	assert.Contains(t, out.String(), "error: unknown command")
}

func TestSplitLine(t *testing.T) {
	args, err := splitLine(`invoice issue 1 2 "Grace Hopper"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice", "issue", "1", "2", "Grace Hopper"}, args)

	_, err = splitLine(`part add "open`)
	require.Error(t, err)
}
