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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/intelsdi-x/netsweep/pkg/utils/fs"
	"github.com/sirupsen/logrus"
)

// tailLineCount is number of output lines logged for unsuccessful executions.
const tailLineCount = 3

// LogSuccessfulExecution is helper function for logging standard output and standard error
// file names.
func LogSuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle) {
	logger := logrus.WithFields(logrus.Fields{"command": whatWasExecuted, "executor": whereWasExecuted})

	logger.Debugf("Process on %q has ended", handle.Address())
	logger.Debugf("Stdout stored in %q", outputFileName(handle.StdoutFile))
	logger.Debugf("Stderr stored in %q", outputFileName(handle.StderrFile))

	exitCode, err := handle.ExitCode()
	if err != nil {
		logger.Debugf("Could not read exit code: %v", err)
	} else {
		logger.Debugf("Exit code: %d", exitCode)
	}
}

// LogUnsuccessfulExecution is helper function for logging the tail of standard output and
// standard error of task handles at given level.
func LogUnsuccessfulExecution(whatWasExecuted string, whereWasExecuted string, handle TaskHandle, level logrus.Level) {
	logger := logrus.WithFields(logrus.Fields{"command": whatWasExecuted, "executor": whereWasExecuted})
	if !logrus.IsLevelEnabled(level) {
		return
	}

	stdoutFileName := outputFileName(handle.StdoutFile)
	stderrFileName := outputFileName(handle.StderrFile)

	stdoutTail, err := fs.ReadTail(stdoutFileName, tailLineCount)
	if err != nil {
		stdoutTail = fmt.Sprintf("%v", err)
	}
	stderrTail, err := fs.ReadTail(stderrFileName, tailLineCount)
	if err != nil {
		stderrTail = fmt.Sprintf("%v", err)
	}

	logger.Logf(level, "Command might have ended prematurely on address %q", handle.Address())
	logger.Logf(level, "Last %d lines of stdout (%s)", tailLineCount, stdoutFileName)
	LogLines(logger, level, strings.NewReader(stdoutTail))
	logger.Logf(level, "Last %d lines of stderr (%s)", tailLineCount, stderrFileName)
	LogLines(logger, level, strings.NewReader(stderrTail))

	exitCode, err := handle.ExitCode()
	if err != nil {
		logger.Logf(level, "Could not read exit code: %v", err)
	} else {
		logger.Logf(level, "Exit code: %d", exitCode)
	}
}

// LogLines takes reader and prints each line from reader in a separate log entry.
// Rationale behind this function is fact, that logrus does not support multi-line logs.
func LogLines(logger *logrus.Entry, level logrus.Level, r *strings.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logger.Logf(level, "> %s", scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("Printing from reader failed: %q", err.Error())
	}
}

func outputFileName(open func() (*os.File, error)) string {
	file, err := open()
	if err != nil {
		return fmt.Sprintf("%v", err)
	}
	defer file.Close()
	return file.Name()
}
