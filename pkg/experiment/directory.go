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

package experiment

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MasterLogFileName is the name of the log file in experiment directory.
const MasterLogFileName = "master.log"

// ExperimentDirectory returns path of the directory holding logs and metadata of given experiment.
func ExperimentDirectory(workDir, appName, experimentID string) string {
	return filepath.Join(workDir, appName+"_"+experimentID)
}

// CreateExperimentDir creates directory for experiment logs and metadata and opens master log file in it.
// Caller is responsible for closing the file.
func CreateExperimentDir(workDir, appName, experimentID string) (experimentDirectory string, logFile *os.File, err error) {
	experimentDirectory, err = filepath.Abs(ExperimentDirectory(workDir, appName, experimentID))
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot resolve experiment directory in %q", workDir)
	}

	err = os.MkdirAll(experimentDirectory, 0755)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot create experiment directory %q", experimentDirectory)
	}

	logFile, err = os.OpenFile(filepath.Join(experimentDirectory, MasterLogFileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot create master log file in %q", experimentDirectory)
	}

	return experimentDirectory, logFile, nil
}
