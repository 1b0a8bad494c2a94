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
	"bytes"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConsoleObserver(t *testing.T) {
	Convey("Console observer should print the trial protocol", t, func() {
		buffer := &bytes.Buffer{}
		observer := NewConsoleObserver(buffer)

		observer.ScenarioStarted(5)
		observer.TrialSucceeded(5, 0, 1.0)
		observer.TrialFailed(5, 1, errors.New("boom"))
		observer.TrialSucceeded(5, 2, 1.0)
		observer.ScenarioFinished(NewScenarioRecord(5))

		So(buffer.String(), ShouldEqual,
			"\n-- Simulating scenario with 5 clients --."+
				"\n[Warning] No valid result found for clients=5, run=2 (boom)\n.")
	})
}

func TestProgressObserver(t *testing.T) {
	Convey("Progress observer should tick once per trial", t, func() {
		buffer := &bytes.Buffer{}
		config := DefaultConfig()
		config.Scenarios = []int{5, 10}
		config.TrialsPerScenario = 2

		observer := NewProgressObserver(config, buffer)
		observer.ScenarioStarted(5)
		observer.TrialSucceeded(5, 0, 1.0)
		observer.TrialFailed(5, 1, errors.New("boom"))
		observer.Finish()

		So(observer.bar.Get(), ShouldEqual, int64(2))
		So(observer.bar.Total, ShouldEqual, int64(4))

		observer.output.mutex.Lock()
		output := buffer.String()
		observer.output.mutex.Unlock()
		So(output, ShouldContainSubstring, "\n[Warning] No valid result found for clients=5, run=2 (boom)\n")
	})
}
