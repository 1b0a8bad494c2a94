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
	"fmt"
	"os"
	"path/filepath"

	"github.com/intelsdi-x/netsweep/pkg/conf"
	"github.com/intelsdi-x/netsweep/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

var (
	// WorkDirFlag is a directory where experiment directories are created.
	WorkDirFlag = conf.NewStringFlag("work_dir", "Directory where experiment logs and metadata are stored", ".")

	dumpConfigFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)

	// DumpConfigExperimentIDFlag name includes dash to excluded it from dumping.
	dumpConfigExperimentIDFlag = conf.NewStringFlag("config-dump-experiment-id", "Dump configuration recorded by experiment with given ID.", "")
)

// Configure handles configuration parsing, generation and restoration based on config-* flags.
// It returns true when log level is error, which means that progress is shown on console.
// Note: exits if configuration generation was requested.
func Configure() bool {
	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		previousExperimentID := dumpConfigExperimentIDFlag.Value()
		if previousExperimentID != "" {
			directory := ExperimentDirectory(WorkDirFlag.Value(), AppName(), previousExperimentID)
			metadata, err := OpenMetadata(directory)
			errutil.CheckWithContext(err, "Cannot read metadata of experiment "+previousExperimentID)
			flags, err := metadata.GetGroup(MetadataKindFlags)
			errutil.Check(err)
			fmt.Println(conf.DumpConfigMap(flags))
		} else {
			fmt.Println(conf.DumpConfig())
		}
		os.Exit(0)
	}

	return conf.LogLevel() == logrus.ErrorLevel
}

// AppName returns application name used for naming experiment directories.
func AppName() string {
	return filepath.Base(conf.AppName())
}
