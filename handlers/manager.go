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

	"github.com/cybrota/garage/workshop"
	"github.com/prometheus/client_golang/prometheus"
)

// HandlerManager dispatches shell lines to registered handlers
type HandlerManager struct {
	handlers []Handler
}

// NewHandlerManager creates a manager with every workshop handler
func NewHandlerManager(w *workshop.Workshop, copyFn CopyFunc) *HandlerManager {
	manager := &HandlerManager{}

	// Register handlers in order of preference
	manager.RegisterHandler(NewPartsHandler(w))
	manager.RegisterHandler(NewServicesHandler(w))
	manager.RegisterHandler(NewInvoicesHandler(w))
	manager.RegisterHandler(NewLedgerHandler(w, copyFn))
	manager.RegisterHandler(NewTreeHandler(w))
	manager.RegisterHandler(NewSnapshotHandler(w))
	manager.RegisterHandler(NewMetricsHandler(prometheus.DefaultGatherer))

	return manager
}

// RegisterHandler registers a new handler
func (hm *HandlerManager) RegisterHandler(handler Handler) {
	hm.handlers = append(hm.handlers, handler)
}

// Dispatch runs a parsed line with the first handler that supports it
func (hm *HandlerManager) Dispatch(cmdParts []string) (string, error) {
	if len(cmdParts) == 0 {
		return "", fmt.Errorf("no command provided")
	}

	cmd := NewCommand(cmdParts)
	for _, handler := range hm.handlers {
		if handler.SupportsCommand(cmd.BaseCmd) {
			return handler.Handle(cmd)
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.BaseCmd)
}

// Usage lists the usage lines of every handler
func (hm *HandlerManager) Usage() []string {
	var lines []string
	for _, handler := range hm.handlers {
		lines = append(lines, handler.Usage()...)
	}
	return lines
}
