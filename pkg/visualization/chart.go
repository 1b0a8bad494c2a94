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
	"image/color"
	"strconv"

	"github.com/intelsdi-x/netsweep/pkg/experiment/sweep"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	chartTitle  = "Average Packet Loss vs Number of Clients"
	chartXLabel = "Number of Clients"
	chartYLabel = "Average Packet Loss (%)"

	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var (
	measuredColor    = color.RGBA{B: 255, A: 255}
	notMeasuredColor = color.RGBA{R: 220, G: 53, B: 69, A: 255}
)

// NewChart plots mean loss against client count. Measured scenarios are joined by a line in
// sweep order; scenarios without valid trials break the line and are marked with a cross at zero.
func NewChart(report *sweep.ExperimentReport) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chartTitle
	p.X.Label.Text = chartXLabel
	p.Y.Label.Text = chartYLabel
	p.Add(plotter.NewGrid())

	var (
		ticks       []plot.Tick
		measured    plotter.XYs
		notMeasured plotter.XYs
		segment     plotter.XYs
		segments    []plotter.XYs
	)
	for _, record := range report.Scenarios {
		x := float64(record.Clients)
		ticks = append(ticks, plot.Tick{Value: x, Label: strconv.Itoa(record.Clients)})

		aggregate := record.Aggregate()
		if !aggregate.Measured {
			notMeasured = append(notMeasured, plotter.XY{X: x, Y: 0})
			if len(segment) > 0 {
				segments = append(segments, segment)
				segment = nil
			}
			continue
		}
		point := plotter.XY{X: x, Y: aggregate.Mean}
		measured = append(measured, point)
		segment = append(segment, point)
	}
	if len(segment) > 0 {
		segments = append(segments, segment)
	}

	for _, points := range segments {
		if len(points) < 2 {
			continue
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create line")
		}
		line.Color = measuredColor
		line.Width = vg.Points(2)
		p.Add(line)
	}

	if len(measured) > 0 {
		scatter, err := plotter.NewScatter(measured)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create measured points")
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = measuredColor
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add("mean packet loss", scatter)
	}

	if len(notMeasured) > 0 {
		scatter, err := plotter.NewScatter(notMeasured)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create not measured points")
		}
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Color = notMeasuredColor
		scatter.GlyphStyle.Radius = vg.Points(6)
		p.Add(scatter)
		p.Legend.Add("not measured", scatter)
	}

	p.Legend.Top = true
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = 1
	}

	return p, nil
}

// Chart renders the report chart into PNG file at path, overwriting existing file.
func Chart(report *sweep.ExperimentReport, path string) error {
	p, err := NewChart(report)
	if err != nil {
		return err
	}

	err = p.Save(chartWidth, chartHeight, path)
	if err != nil {
		return errors.Wrapf(err, "cannot save chart to %q", path)
	}
	return nil
}
