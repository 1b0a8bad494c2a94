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

package executor

import (
	"io"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// TestLocal tests the execution of process on local machine.
func TestLocal(t *testing.T) {
	Convey("While using Local Shell", t, func() {
		outputDir, err := os.MkdirTemp("", "local_executor_test_")
		So(err, ShouldBeNil)
		defer os.RemoveAll(outputDir)

		l := NewLocalIn(outputDir)
		So(l.Name(), ShouldEqual, "Local")

		Convey("When blocking infinitively sleep command is executed", func() {
			task, err := l.Execute("sleep inf")
			So(err, ShouldBeNil)
			defer task.EraseOutput()
			defer task.Clean()

			Convey("Task should be still running", func() {
				So(task.Status(), ShouldEqual, RUNNING)

				_, err := task.ExitCode()
				So(err, ShouldNotBeNil)

				So(task.Stop(), ShouldBeNil)
			})

			Convey("When we wait for task termination with the 1ms timeout", func() {
				isTaskTerminated := task.Wait(1 * time.Millisecond)

				Convey("The timeout should exceed and the task not terminated ", func() {
					So(isTaskTerminated, ShouldBeFalse)
					So(task.Status(), ShouldEqual, RUNNING)
				})

				So(task.Stop(), ShouldBeNil)
			})

			Convey("When we stop the task", func() {
				So(task.Stop(), ShouldBeNil)

				Convey("The task should be terminated by a signal", func() {
					So(task.Status(), ShouldEqual, TERMINATED)

					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldBeLessThan, 0)
				})

				Convey("Stopping it again should be no-op", func() {
					So(task.Stop(), ShouldBeNil)
				})
			})
		})

		Convey("When command `echo output` is executed", func() {
			task, err := l.Execute("echo output; echo problem >&2")
			So(err, ShouldBeNil)
			defer task.EraseOutput()
			defer task.Clean()

			Convey("When we wait for the task to terminate", func() {
				So(task.Wait(0), ShouldBeTrue)

				Convey("The task should be terminated with zero exit code", func() {
					So(task.Status(), ShouldEqual, TERMINATED)

					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)
				})

				Convey("Stdout and stderr should be captured separately", func() {
					stdout, err := task.StdoutFile()
					So(err, ShouldBeNil)
					defer stdout.Close()
					data, err := io.ReadAll(stdout)
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, "output\n")

					stderr, err := task.StderrFile()
					So(err, ShouldBeNil)
					defer stderr.Close()
					data, err = io.ReadAll(stderr)
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, "problem\n")
				})

				Convey("Output files should be removed after erase", func() {
					stdout, err := task.StdoutFile()
					So(err, ShouldBeNil)
					name := stdout.Name()
					stdout.Close()

					So(task.Clean(), ShouldBeNil)
					So(task.EraseOutput(), ShouldBeNil)

					_, err = os.Stat(name)
					So(os.IsNotExist(err), ShouldBeTrue)
				})
			})
		})

		Convey("When command exits with non-zero code", func() {
			task, err := l.Execute("exit 3")
			So(err, ShouldBeNil)
			defer task.EraseOutput()
			defer task.Clean()

			So(task.Wait(0), ShouldBeTrue)
			exitCode, err := task.ExitCode()
			So(err, ShouldBeNil)
			So(exitCode, ShouldEqual, 3)
		})

		Convey("When empty command is executed it should fail", func() {
			task, err := l.Execute("")
			So(err, ShouldNotBeNil)
			So(task, ShouldBeNil)
		})
	})
}

func TestBinaryNameFromCommand(t *testing.T) {
	Convey("Binary name should be taken from the first word of a command", t, func() {
		name, err := getBinaryNameFromCommand("./ns3 run 'scratch/simulation.cc --nClients=5'")
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "ns3")

		_, err = getBinaryNameFromCommand("   ")
		So(err, ShouldNotBeNil)
	})
}
