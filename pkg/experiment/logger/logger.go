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

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/intelsdi-x/netsweep/pkg/experiment"
	"github.com/intelsdi-x/netsweep/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

// Initialize creates experiment directory and sends logs both to its master log file and stderr.
// It returns the experiment directory.
func Initialize(appName, uuid string) string {
	// Create experiment directory
	experimentDirectory, logFile, err := experiment.CreateExperimentDir(experiment.WorkDirFlag.Value(), appName, uuid)
	errutil.CheckWithContext(err, "Cannot create experiment logs directory")

	// Setup logging set to both output and logFile.
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.Infof("Working directory %q", experimentDirectory)
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))

	// Logging and outputting experiment ID.
	logrus.Info("Starting Experiment ", appName, " with uid ", uuid)
	fmt.Println(uuid)

	return experimentDirectory
}
