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
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/cybrota/garage/index"
	"github.com/cybrota/garage/workshop"
)

// CopyFunc places text on the system clipboard.
type CopyFunc func(text string) error

// LedgerHandler serves "ledger" commands: root hash, audit and clipboard copy
type LedgerHandler struct {
	w      *workshop.Workshop
	copyFn CopyFunc
}

// NewLedgerHandler uses the system clipboard when copyFn is nil.
func NewLedgerHandler(w *workshop.Workshop, copyFn CopyFunc) *LedgerHandler {
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return &LedgerHandler{w: w, copyFn: copyFn}
}

func (h *LedgerHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "ledger"
}

func (h *LedgerHandler) Usage() []string {
	return []string{
		"ledger root",
		"ledger audit",
		"ledger copy",
	}
}

func (h *LedgerHandler) Handle(cmd *Command) (string, error) {
	switch cmd.GetSubCommand(0) {
	case "root", "":
		root := h.w.Ledger.RootHash()
		if root == "" {
			return "ledger is empty", nil
		}
		return root, nil

	case "audit":
		report := h.w.Ledger.Audit()
		if report.Clean() {
			return fmt.Sprintf("%d invoices verified, root %s", report.Checked, report.RootHash), nil
		}
		return "", fmt.Errorf("%w: %d of %d invoices fail verification: %v",
			index.ErrIntegrityViolation, len(report.Tampered), report.Checked, report.Tampered)

	case "copy":
		root := h.w.Ledger.RootHash()
		if root == "" {
			return "ledger is empty", nil
		}
		if err := h.copyFn(root); err != nil {
			return "", fmt.Errorf("failed to copy root hash: %w", err)
		}
		return "root hash copied to clipboard", nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.FullName)
}
