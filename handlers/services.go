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

// ServicesHandler serves "service" commands against the services catalog
type ServicesHandler struct {
	w *workshop.Workshop
}

func NewServicesHandler(w *workshop.Workshop) *ServicesHandler {
	return &ServicesHandler{w: w}
}

func (h *ServicesHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "service" || baseCmd == "services"
}

func (h *ServicesHandler) Usage() []string {
	return []string{
		"service add <id> <name> <labor> [<part id>...]",
		"service get <id>",
		"service quote <id>",
		"service rm <id>",
		"service ls",
	}
}

func (h *ServicesHandler) Handle(cmd *Command) (string, error) {
	args := cmd.Args()
	switch cmd.GetSubCommand(0) {
	case "add":
		if len(args) < 3 {
			return "", usageError(h.Usage()[0])
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		labor, err := parseAmount(args[2])
		if err != nil {
			return "", err
		}
		partIDs, err := parseIDs(args[3:])
		if err != nil {
			return "", err
		}
		added, err := h.w.AddService(&workshop.Service{ID: id, Name: args[1], Labor: labor, PartIDs: partIDs})
		if err != nil {
			return "", err
		}
		if !added {
			return fmt.Sprintf("service %d already exists, unchanged", id), nil
		}
		return fmt.Sprintf("service %d added", id), nil

	case "get", "quote", "rm":
		if len(args) != 1 {
			return "", usageError("service " + cmd.GetSubCommand(0) + " <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		switch cmd.GetSubCommand(0) {
		case "get":
			s, ok := h.w.Services.Get(id)
			if !ok {
				return fmt.Sprintf("service %d not found", id), nil
			}
			return fmt.Sprintf("%4d  %s", s.ID, s), nil
		case "quote":
			total, err := h.w.Quote(id)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("service %d quote: %s", id, total.StringFixed(2)), nil
		default:
			if !h.w.RemoveService(id) {
				return fmt.Sprintf("service %d not found", id), nil
			}
			return fmt.Sprintf("service %d removed", id), nil
		}

	case "ls", "":
		services := h.w.Services.List()
		lines := make([]string, 0, len(services))
		for _, s := range services {
			lines = append(lines, fmt.Sprintf("%4d  %s", s.ID, s))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.FullName)
}
