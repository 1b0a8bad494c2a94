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

// Package errutil holds helpers for main packages which cannot continue after an error.
package errutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// fatalf logs and exits; replaced in tests.
var fatalf = logrus.Fatalf

// Check the supplied error, log and exit if non-nil.
func Check(err error) {
	if err != nil {
		logrus.Debugf("%+v", err)
		fatalf("%v", err)
	}
}

// CheckWithContext checks the error and exit if it is not nil. Logs additional context information.
func CheckWithContext(err error, context string) {
	if err != nil {
		logrus.Debugf("%s: %+v", context, err)
		fatalf("%s: %v", context, err)
	}
}

// CheckWithContextf is CheckWithContext with a formatted context.
func CheckWithContextf(err error, format string, args ...interface{}) {
	if err != nil {
		CheckWithContext(err, fmt.Sprintf(format, args...))
	}
}
