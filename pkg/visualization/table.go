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

package visualization

import (
	"io"
	"strconv"

	"github.com/intelsdi-x/netsweep/pkg/experiment/sweep"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

var scenarioHeaders = []string{"Clients", "Trials", "Valid", "Mean loss %", "Std dev", "Min", "Max"}

// ScenarioTable creates table with statistics of every scenario in sweep order.
func ScenarioTable(report *sweep.ExperimentReport) *Table {
	data := [][]string{}
	for _, record := range report.Scenarios {
		aggregate := record.Aggregate()
		row := []string{
			strconv.Itoa(record.Clients),
			strconv.Itoa(len(record.Trials())),
			strconv.Itoa(aggregate.Samples),
		}
		if aggregate.Measured {
			row = append(row,
				formatPercentage(aggregate.Mean),
				formatPercentage(aggregate.StdDev),
				formatPercentage(aggregate.Min),
				formatPercentage(aggregate.Max))
		} else {
			row = append(row, "n/a", "-", "-", "-")
		}
		data = append(data, row)
	}

	return NewTable(scenarioHeaders, data)
}

// formatPercentage rounds value to two decimal places, half away from zero.
func formatPercentage(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// DrawTable draws a struct with headers and data rows.
func DrawTable(w io.Writer, table *Table) {
	output := tablewriter.NewWriter(w)
	output.SetHeader(table.headers)
	for _, v := range table.data {
		output.Append(v)
	}
	output.Render()
}
