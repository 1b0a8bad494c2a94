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

package errutil

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	Convey("While checking errors", t, func() {
		var messages []string
		originalFatalf := fatalf
		fatalf = func(format string, args ...interface{}) {
			messages = append(messages, fmt.Sprintf(format, args...))
		}
		defer func() { fatalf = originalFatalf }()

		Convey("Nil error should be ignored", func() {
			Check(nil)
			CheckWithContext(nil, "context")
			CheckWithContextf(nil, "context %d", 1)
			So(messages, ShouldBeEmpty)
		})

		Convey("Error should be reported as fatal", func() {
			Check(errors.New("boom"))
			So(messages, ShouldResemble, []string{"boom"})
		})

		Convey("Error should be reported with context", func() {
			CheckWithContext(errors.New("boom"), "cannot run")
			CheckWithContextf(errors.New("bang"), "cannot run scenario %d", 5)
			So(messages, ShouldResemble, []string{"cannot run: boom", "cannot run scenario 5: bang"})
		})
	})
}
