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
package index

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	metricsNamespace = "garage"
	subsystem        = "index"
)

const (
	statusOK        = "ok"
	statusMiss      = "miss"
	statusDuplicate = "duplicate"
	statusInvalid   = "invalid"
)

// Series are labelled by index name only. Trees sharing a name (the "avl" and
// "merkle" defaults, or the catalogs of two workshops in one process) report
// into the same series, and Entries then holds the count of whichever tree
// changed last. Give trees distinct names with WithName when that matters.
var (
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Total number of index operations",
		},
		[]string{"index", "op", "status"},
	)

	Entries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "entries",
			Help:      "Number of live entries per index",
		},
		[]string{"index"},
	)

	Rebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "rebuilds_total",
			Help:      "Total number of full integrity tree rebuilds",
		},
		[]string{"index"},
	)
)

func observe(index, op, status string) {
	OperationsTotal.WithLabelValues(index, op, status).Inc()
}

// WriteMetrics writes the index metric families gathered from g in the
// Prometheus text exposition format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	prefix := metricsNamespace + "_" + subsystem + "_"
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
