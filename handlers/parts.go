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
	"strconv"
	"strings"

	"github.com/cybrota/garage/workshop"
)

// PartsHandler serves "part" commands against the parts catalog
type PartsHandler struct {
	w *workshop.Workshop
}

func NewPartsHandler(w *workshop.Workshop) *PartsHandler {
	return &PartsHandler{w: w}
}

func (h *PartsHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "part" || baseCmd == "parts"
}

func (h *PartsHandler) Usage() []string {
	return []string{
		"part add <id> <code> <name> <qty> <price>",
		"part set <id> <code> <name> <qty> <price>",
		"part get <id>",
		"part find <code>",
		"part rm <id>",
		"part ls [<from> <to>]",
	}
}

func (h *PartsHandler) Handle(cmd *Command) (string, error) {
	args := cmd.Args()
	switch cmd.GetSubCommand(0) {
	case "add", "set":
		if len(args) != 5 {
			return "", usageError(h.Usage()[0])
		}
		p, err := parsePart(args)
		if err != nil {
			return "", err
		}
		if cmd.GetSubCommand(0) == "set" {
			replaced, err := h.w.SetPart(p)
			if err != nil {
				return "", err
			}
			if !replaced {
				return fmt.Sprintf("part %d added", p.ID), nil
			}
			return fmt.Sprintf("part %d updated", p.ID), nil
		}
		added, err := h.w.AddPart(p)
		if err != nil {
			return "", err
		}
		if !added {
			return fmt.Sprintf("part %d already exists, unchanged", p.ID), nil
		}
		return fmt.Sprintf("part %d added", p.ID), nil

	case "get":
		if len(args) != 1 {
			return "", usageError(h.Usage()[2])
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		p, ok := h.w.Parts.Get(id)
		if !ok {
			return fmt.Sprintf("part %d not found", id), nil
		}
		return formatPart(p), nil

	case "find":
		if len(args) != 1 {
			return "", usageError(h.Usage()[3])
		}
		p, ok := h.w.Parts.FindByLabel(args[0])
		if !ok {
			return fmt.Sprintf("no part with code %q", args[0]), nil
		}
		return formatPart(p), nil

	case "rm":
		if len(args) != 1 {
			return "", usageError(h.Usage()[4])
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		removed, err := h.w.RemovePart(id)
		if err != nil {
			return "", err
		}
		if !removed {
			return fmt.Sprintf("part %d not found", id), nil
		}
		return fmt.Sprintf("part %d removed", id), nil

	case "ls", "":
		parts := h.w.Parts.List()
		if len(args) == 2 {
			ids, err := parseIDs(args)
			if err != nil {
				return "", err
			}
			parts = h.w.Parts.Between(ids[0], ids[1])
		}
		lines := make([]string, 0, len(parts))
		for _, p := range parts {
			lines = append(lines, formatPart(p))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.FullName)
}

func parsePart(args []string) (*workshop.Part, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	qty, err := strconv.Atoi(args[3])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", args[3])
	}
	price, err := parseAmount(args[4])
	if err != nil {
		return nil, err
	}
	return &workshop.Part{ID: id, Code: args[1], Name: args[2], Quantity: qty, UnitPrice: price}, nil
}

func formatPart(p *workshop.Part) string {
	return fmt.Sprintf("%4d  %s", p.ID, p)
}
