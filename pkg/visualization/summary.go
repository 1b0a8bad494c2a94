// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package visualization renders the sweep report for humans: summary lines, a table and a chart.
package visualization

import (
	"fmt"
	"io"
	"strconv"

	"github.com/intelsdi-x/netsweep/pkg/experiment/sweep"
)

// NotMeasured replaces the mean of scenarios without a single valid trial.
const NotMeasured = "n/a (no valid trials)"

// Summary prints one line per scenario in sweep order.
func Summary(w io.Writer, report *sweep.ExperimentReport) {
	for _, record := range report.Scenarios {
		aggregate := record.Aggregate()
		loss := NotMeasured
		if aggregate.Measured {
			loss = strconv.FormatFloat(aggregate.Mean, 'f', 2, 64) + "%"
		}
		fmt.Fprintf(w, "Clients: %d, Average Packet Loss: %s\n", record.Clients, loss)
	}
}
