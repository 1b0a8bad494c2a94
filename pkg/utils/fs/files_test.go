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

package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFiles(t *testing.T) {
	Convey("While reading a file", t, func() {
		dir, err := os.MkdirTemp("", "fs_test_")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "output")
		So(os.WriteFile(path, []byte("first\nsecond\r\nthird\nfourth\n"), 0644), ShouldBeNil)

		Convey("ReadTail should return last lines", func() {
			tail, err := ReadTail(path, 2)
			So(err, ShouldBeNil)
			So(tail, ShouldEqual, "third\nfourth")
		})

		Convey("ReadTail with more lines than file has should return everything", func() {
			tail, err := ReadTail(path, 10)
			So(err, ShouldBeNil)
			So(tail, ShouldEqual, "first\nsecond\nthird\nfourth")
		})

		Convey("ScanLines should return all lines without terminators", func() {
			file, err := os.Open(path)
			So(err, ShouldBeNil)
			defer file.Close()

			lines, err := ScanLines(file)
			So(err, ShouldBeNil)
			So(lines, ShouldResemble, []string{"first", "second", "third", "fourth"})
		})

		Convey("ScanLines should keep empty lines", func() {
			lines, err := ScanLines(strings.NewReader("a\n\nb"))
			So(err, ShouldBeNil)
			So(lines, ShouldResemble, []string{"a", "", "b"})
		})

		Convey("ScanLines should skip overlong lines and keep reading", func() {
			input := "before\n" + strings.Repeat("x", MaxLineLength+1) + "\nafter\n"
			lines, err := ScanLines(strings.NewReader(input))
			So(err, ShouldBeNil)
			So(lines, ShouldResemble, []string{"before", "after"})
		})

		Convey("ScanLines should keep a line of exactly maximal length", func() {
			long := strings.Repeat("y", MaxLineLength)
			lines, err := ScanLines(strings.NewReader(long + "\nlast"))
			So(err, ShouldBeNil)
			So(lines, ShouldHaveLength, 2)
			So(len(lines[0]), ShouldEqual, MaxLineLength)
			So(lines[1], ShouldEqual, "last")
		})

		Convey("Reading non-existing file should fail", func() {
			_, err := ReadTail(filepath.Join(dir, "missing"), 3)
			So(err, ShouldNotBeNil)
		})
	})
}
