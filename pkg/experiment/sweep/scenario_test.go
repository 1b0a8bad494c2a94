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

package sweep

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScenarioRecord(t *testing.T) {
	Convey("While aggregating scenario results", t, func() {
		record := NewScenarioRecord(5)

		Convey("Mean should be computed from present results only", func() {
			So(record.Add(TrialResult{Trial: 2, Loss: 30.0, Present: true}), ShouldBeNil)
			So(record.Add(TrialResult{Trial: 0, Loss: 10.0, Present: true}), ShouldBeNil)
			So(record.Add(TrialResult{Trial: 3, Err: errors.New("no result")}), ShouldBeNil)
			So(record.Add(TrialResult{Trial: 1, Loss: 20.0, Present: true}), ShouldBeNil)

			So(record.Finalize(), ShouldBeNil)

			aggregate := record.Aggregate()
			So(aggregate.Measured, ShouldBeTrue)
			So(aggregate.Mean, ShouldEqual, 20.0)
			So(aggregate.Samples, ShouldEqual, 3)
			So(aggregate.Min, ShouldEqual, 10.0)
			So(aggregate.Max, ShouldEqual, 30.0)
			So(aggregate.StdDev, ShouldAlmostEqual, 8.164965, 0.000001)

			Convey("Trials should be kept in trial order including absent ones", func() {
				trials := record.Trials()
				So(trials, ShouldHaveLength, 4)
				for i, trial := range trials {
					So(trial.Trial, ShouldEqual, i)
				}
				So(trials[3].Present, ShouldBeFalse)
				So(record.Losses(), ShouldResemble, []float64{10.0, 20.0, 30.0})
			})
		})

		Convey("Zero present results should give zero fallback marked as not measured", func() {
			So(record.Add(TrialResult{Trial: 0, Err: errors.New("no result")}), ShouldBeNil)
			So(record.Finalize(), ShouldBeNil)

			aggregate := record.Aggregate()
			So(aggregate.Mean, ShouldEqual, 0.0)
			So(aggregate.Measured, ShouldBeFalse)
			So(aggregate.Samples, ShouldEqual, 0)
		})

		Convey("Measured zero loss should differ from not measured scenario", func() {
			So(record.Add(TrialResult{Trial: 0, Loss: 0.0, Present: true}), ShouldBeNil)
			So(record.Finalize(), ShouldBeNil)

			aggregate := record.Aggregate()
			So(aggregate.Mean, ShouldEqual, 0.0)
			So(aggregate.Measured, ShouldBeTrue)
		})

		Convey("Single result should have zero deviation", func() {
			So(record.Add(TrialResult{Trial: 0, Loss: 4.5, Present: true}), ShouldBeNil)
			So(record.Finalize(), ShouldBeNil)
			So(record.Aggregate().StdDev, ShouldEqual, 0.0)
		})

		Convey("Finalized record should be immutable", func() {
			So(record.Finalized(), ShouldBeFalse)
			So(record.Finalize(), ShouldBeNil)
			So(record.Finalized(), ShouldBeTrue)

			So(record.Finalize(), ShouldNotBeNil)
			So(record.Add(TrialResult{Trial: 0, Loss: 1.0, Present: true}), ShouldNotBeNil)
			So(record.Trials(), ShouldBeEmpty)
		})
	})
}
