// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
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

package builder

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File outcomes counted by recipe_index_files_total.
const (
	outcomeIndexed           = "indexed"
	outcomeDeprecated        = "deprecated"
	outcomeParseError        = "parse_error"
	outcomeEmpty             = "empty"
	outcomeMissingIdentifier = "missing_identifier"
)

var (
	buildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_index_build_duration_seconds",
			Help:    "Duration of a full index build in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	filesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_index_files_total",
			Help: "Recipe files processed, by outcome",
		},
		[]string{"outcome"},
	)

	diagnosticsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_index_diagnostics_total",
			Help: "Diagnostics recorded during builds, by category",
		},
		[]string{"category"},
	)

	identifiersIndexed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_index_identifiers",
			Help: "Identifiers in the most recently built index",
		},
	)

	repositoriesIndexed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_index_repositories_total",
			Help: "Repositories scanned for recipes",
		},
	)
)

// WriteMetrics writes the process metrics to path in the Prometheus text
// format, for node_exporter's textfile collector or CI artifacts.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
