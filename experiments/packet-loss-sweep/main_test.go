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

package main

import (
	"testing"

	"github.com/intelsdi-x/netsweep/pkg/conf"
	"github.com/intelsdi-x/netsweep/pkg/experiment/sweep"
	"github.com/intelsdi-x/netsweep/pkg/simulator/result"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSweepConfigFromFlags(t *testing.T) {
	Convey("While building sweep configuration from flags", t, func() {
		Convey("Default flags should give the default sweep", func() {
			So(conf.ParseArgs([]string{}), ShouldBeNil)

			config, err := sweepConfigFromFlags()
			So(err, ShouldBeNil)
			So(config, ShouldResemble, sweep.DefaultConfig())
		})

		Convey("Provided flags should be used", func() {
			So(conf.ParseArgs([]string{
				"--scenarios", "50,60",
				"--trials", "3",
				"--parallelism", "2",
				"--extraction_strategy", "first_well_formed",
				"--chart_path", "out.png",
			}), ShouldBeNil)

			config, err := sweepConfigFromFlags()
			So(err, ShouldBeNil)
			So(config.Scenarios, ShouldResemble, []int{50, 60})
			So(config.TrialsPerScenario, ShouldEqual, 3)
			So(config.Parallelism, ShouldEqual, 2)
			So(config.Strategy, ShouldEqual, result.FirstWellFormed)
			So(config.ChartPath, ShouldEqual, "out.png")
		})

		Convey("Invalid values should be rejected", func() {
			So(conf.ParseArgs([]string{"--scenarios", "5,5"}), ShouldBeNil)
			_, err := sweepConfigFromFlags()
			So(err, ShouldNotBeNil)

			So(conf.ParseArgs([]string{"--extraction_strategy", "last"}), ShouldBeNil)
			_, err = sweepConfigFromFlags()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestResults(t *testing.T) {
	Convey("Results metadata should distinguish not measured scenarios", t, func() {
		measured := sweep.NewScenarioRecord(5)
		So(measured.Add(sweep.TrialResult{Trial: 0, Loss: 2.5, Present: true}), ShouldBeNil)
		So(measured.Finalize(), ShouldBeNil)
		empty := sweep.NewScenarioRecord(10)
		So(empty.Finalize(), ShouldBeNil)

		metadata := results(&sweep.ExperimentReport{Scenarios: []*sweep.ScenarioRecord{measured, empty}})
		So(metadata["clients_5_mean_loss"], ShouldEqual, "2.5")
		So(metadata["clients_5_valid_trials"], ShouldEqual, "1")
		So(metadata["clients_10_mean_loss"], ShouldEqual, "")
		So(metadata["clients_10_valid_trials"], ShouldEqual, "0")
	})
}
