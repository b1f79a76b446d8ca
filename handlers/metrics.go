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

	"github.com/cybrota/garage/index"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHandler serves "metrics": a text dump of the index counters
type MetricsHandler struct {
	gatherer prometheus.Gatherer
}

func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{gatherer: gatherer}
}

func (h *MetricsHandler) SupportsCommand(baseCmd string) bool {
	return baseCmd == "metrics"
}

func (h *MetricsHandler) Usage() []string {
	return []string{"metrics"}
}

func (h *MetricsHandler) Handle(cmd *Command) (string, error) {
	if len(cmd.SubCmds) != 0 {
		return "", usageError(h.Usage()[0])
	}
	var b strings.Builder
	if err := index.WriteMetrics(&b, h.gatherer); err != nil {
		return "", fmt.Errorf("metrics: %w", err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
