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

package result

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("While extracting results with first match strategy", t, func() {
		extractor := NewExtractor(FirstMatch)

		Convey("Well formed line should provide loss value", func() {
			line, err := extractor.Extract([]string{
				"Simulation started",
				"CSV_RESULT,1,2,12.5",
				"Simulation finished",
			})

			So(err, ShouldBeNil)
			So(line.Loss, ShouldEqual, 12.5)
			So(line.Clients, ShouldEqual, "1")
			So(line.Run, ShouldEqual, "2")
		})

		Convey("Line with only 3 fields should give no result", func() {
			_, err := extractor.Extract([]string{"CSV_RESULT,1,12.5"})

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "expected 4 fields but got 3")
		})

		Convey("Line with 5 fields should give no result", func() {
			_, err := extractor.Extract([]string{"CSV_RESULT,1,2,3,12.5"})
			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
		})

		Convey("Non numeric loss should give no result", func() {
			_, err := extractor.Extract([]string{"CSV_RESULT,1,2,lots"})

			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "must be a float")
		})

		Convey("Non finite loss should give no result", func() {
			_, err := extractor.Extract([]string{"CSV_RESULT,1,2,NaN"})
			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
		})

		Convey("Output without marker should give no result line error", func() {
			_, err := extractor.Extract([]string{"nothing", "to see", " CSV_RESULT,1,2,3"})
			So(err, ShouldEqual, ErrNoResultLine)
		})

		Convey("Empty output should give no result line error", func() {
			_, err := extractor.Extract(nil)
			So(err, ShouldEqual, ErrNoResultLine)
		})

		Convey("Malformed first marker line should mask well formed second one", func() {
			_, err := extractor.Extract([]string{
				"CSV_RESULT,1,2",
				"CSV_RESULT,1,2,7.25",
			})
			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
		})

		Convey("Only the first well formed line should be used", func() {
			line, err := extractor.Extract([]string{
				"CSV_RESULT,5,1,1.0",
				"CSV_RESULT,5,1,99.0",
			})
			So(err, ShouldBeNil)
			So(line.Loss, ShouldEqual, 1.0)
		})

		Convey("Whitespace around loss value should be tolerated", func() {
			line, err := extractor.Extract([]string{"CSV_RESULT,5,1, 3.5 "})
			So(err, ShouldBeNil)
			So(line.Loss, ShouldEqual, 3.5)
		})
	})

	Convey("While extracting results with first well formed strategy", t, func() {
		extractor := NewExtractor(FirstWellFormed)

		Convey("Malformed first marker line should be skipped", func() {
			line, err := extractor.Extract([]string{
				"CSV_RESULT,1,2",
				"CSV_RESULT,1,2,7.25",
			})
			So(err, ShouldBeNil)
			So(line.Loss, ShouldEqual, 7.25)
		})

		Convey("Only malformed lines should report the first malformation", func() {
			_, err := extractor.Extract([]string{
				"CSV_RESULT,1,2",
				"CSV_RESULT,1,2,x",
			})
			So(errors.Is(err, ErrMalformedResultLine), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "expected 4 fields but got 3")
		})

		Convey("Output without marker should give no result line error", func() {
			_, err := extractor.Extract([]string{"done"})
			So(err, ShouldEqual, ErrNoResultLine)
		})
	})
}

func TestStrategy(t *testing.T) {
	Convey("Strategies should round trip through their names", t, func() {
		for _, strategy := range []Strategy{FirstMatch, FirstWellFormed} {
			parsed, err := ParseStrategy(strategy.String())
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, strategy)
		}

		parsed, err := ParseStrategy(" First_Match ")
		So(err, ShouldBeNil)
		So(parsed, ShouldEqual, FirstMatch)

		_, err = ParseStrategy("last_match")
		So(err, ShouldNotBeNil)
		So(Strategy(7).String(), ShouldEqual, "unknown(7)")
	})
}
