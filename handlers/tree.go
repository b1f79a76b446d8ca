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

	"github.com/cybrota/garage/index"
	"github.com/cybrota/garage/workshop"
)

// TreeHandler draws the index behind a catalog or the ledger
type TreeHandler struct {
	w *workshop.Workshop
}

func NewTreeHandler(w *workshop.Workshop) *TreeHandler {
	return &TreeHandler{w: w}
}

func (h *TreeHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "tree"
}

func (h *TreeHandler) Usage() []string {
	return []string{"tree parts|services|ledger"}
}

func (h *TreeHandler) Handle(cmd *Command) (string, error) {
	switch cmd.GetSubCommand(0) {
	case "parts":
		return index.RenderAVL(h.w.Parts.Tree(), func(id int, p *workshop.Part) string {
			return fmt.Sprintf("%d %s", id, p.Code)
		}), nil
	case "services":
		return index.RenderAVL(h.w.Services.Tree(), func(id int, s *workshop.Service) string {
			return fmt.Sprintf("%d %s", id, s.Name)
		}), nil
	case "ledger":
		return index.RenderMerkle(h.w.Ledger.Tree(), func(id int, inv *workshop.Invoice) string {
			return fmt.Sprintf("%d %s", id, inv.Total.StringFixed(2))
		}), nil
	}
	return "", usageError(h.Usage()[0])
}
