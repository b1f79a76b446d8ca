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
	"os"

	"github.com/cybrota/garage/snapshot"
	"github.com/cybrota/garage/workshop"
)

// SnapshotHandler saves the workshop to a YAML backup file
type SnapshotHandler struct {
	w *workshop.Workshop
}

func NewSnapshotHandler(w *workshop.Workshop) *SnapshotHandler {
	return &SnapshotHandler{w: w}
}

func (h *SnapshotHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "save"
}

func (h *SnapshotHandler) Usage() []string {
	return []string{"save <path>"}
}

func (h *SnapshotHandler) Handle(cmd *Command) (string, error) {
	path := cmd.GetSubCommand(0)
	if path == "" {
		return "", usageError(h.Usage()[0])
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := snapshot.Write(file, h.w); err != nil {
		return "", err
	}
	return fmt.Sprintf("snapshot written to %s", path), nil
}
