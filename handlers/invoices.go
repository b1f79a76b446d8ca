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
	"strings"

	"github.com/cybrota/garage/workshop"
)

// InvoicesHandler serves "invoice" commands against the ledger
type InvoicesHandler struct {
	w *workshop.Workshop
}

func NewInvoicesHandler(w *workshop.Workshop) *InvoicesHandler {
	return &InvoicesHandler{w: w}
}

func (h *InvoicesHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "invoice" || baseCmd == "invoices"
}

func (h *InvoicesHandler) Usage() []string {
	return []string{
		"invoice issue <id> <service id> <customer>",
		"invoice amend <id> <customer> <total>",
		"invoice get <id>",
		"invoice verify <id>",
		"invoice void <id>",
		"invoice ls",
	}
}

func (h *InvoicesHandler) Handle(cmd *Command) (string, error) {
	args := cmd.Args()
	switch cmd.GetSubCommand(0) {
	case "issue":
		if len(args) != 3 {
			return "", usageError(h.Usage()[0])
		}
		ids, err := parseIDs(args[:2])
		if err != nil {
			return "", err
		}
		inv, err := h.w.IssueInvoice(ids[0], ids[1], args[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("invoice %d issued: %s", inv.ID, inv), nil

	case "amend":
		if len(args) != 3 {
			return "", usageError(h.Usage()[1])
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		total, err := parseAmount(args[2])
		if err != nil {
			return "", err
		}
		stored, ok := h.w.Ledger.Get(id)
		if !ok {
			return fmt.Sprintf("invoice %d not found", id), nil
		}
		amended := *stored
		amended.Customer = args[1]
		amended.Total = total
		if err := h.w.Ledger.Amend(&amended); err != nil {
			return "", err
		}
		return fmt.Sprintf("invoice %d amended, root %s", id, h.w.Ledger.RootHash()), nil

	case "get", "verify", "void":
		if len(args) != 1 {
			return "", usageError("invoice " + cmd.GetSubCommand(0) + " <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		if cmd.GetSubCommand(0) == "void" {
			if !h.w.Ledger.Void(id) {
				return fmt.Sprintf("invoice %d not found", id), nil
			}
			return fmt.Sprintf("invoice %d voided, root %s", id, h.w.Ledger.RootHash()), nil
		}
		inv, ok := h.w.Ledger.Get(id)
		if !ok {
			return fmt.Sprintf("invoice %d not found", id), nil
		}
		if cmd.GetSubCommand(0) == "get" {
			return formatInvoice(inv), nil
		}
		if err := h.w.Ledger.Check(inv); err != nil {
			return "", err
		}
		return fmt.Sprintf("invoice %d verified", id), nil

	case "ls", "":
		invoices := h.w.Ledger.Invoices()
		lines := make([]string, 0, len(invoices))
		for _, inv := range invoices {
			lines = append(lines, formatInvoice(inv))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.FullName)
}

func formatInvoice(inv *workshop.Invoice) string {
	return fmt.Sprintf("%4d  %s  %s", inv.ID, inv.IssuedAt.Format("2006-01-02 15:04"), inv)
}
