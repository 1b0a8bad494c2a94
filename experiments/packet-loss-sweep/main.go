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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/intelsdi-x/netsweep/pkg/conf"
	"github.com/intelsdi-x/netsweep/pkg/executor"
	"github.com/intelsdi-x/netsweep/pkg/experiment"
	"github.com/intelsdi-x/netsweep/pkg/experiment/logger"
	"github.com/intelsdi-x/netsweep/pkg/experiment/sweep"
	"github.com/intelsdi-x/netsweep/pkg/simulator"
	"github.com/intelsdi-x/netsweep/pkg/simulator/result"
	"github.com/intelsdi-x/netsweep/pkg/utils/errutil"
	"github.com/intelsdi-x/netsweep/pkg/utils/uuid"
	"github.com/intelsdi-x/netsweep/pkg/visualization"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	scenariosFlag    = conf.NewStringFlag("scenarios", "Comma-separated list of client counts to sweep", sweep.DefaultScenarios)
	trialsFlag       = conf.NewIntFlag("trials", "Number of simulator runs per client count", sweep.DefaultTrialsPerScenario)
	parallelismFlag  = conf.NewIntFlag("parallelism", "Number of concurrent simulator runs of a single client count", 1)
	trialTimeoutFlag = conf.NewDurationFlag("trial_timeout", "Time limit of a single simulator run (0 means no limit)", 0)
	strategyFlag     = conf.NewStringFlag("extraction_strategy",
		"Malformed CSV_RESULT line handling: first_match (first marker line decides) or first_well_formed (malformed lines are skipped)",
		result.FirstMatch.String())

	binaryFlag          = conf.NewStringFlag("ns3_binary", "Path to ns3 launcher", simulator.DefaultBinary)
	scriptFlag          = conf.NewStringFlag("simulation_script", "Simulation program run by ns3", simulator.DefaultScript)
	commandTemplateFlag = conf.NewStringFlag("command_template",
		"Shell command of a single run; fields: .Binary, .Script, .Clients, .Trial", simulator.DefaultCommandTemplate)

	chartPathFlag   = conf.NewStringFlag("chart_path", "Path of the chart image (overwritten)", sweep.DefaultChartPath)
	progressBarFlag = conf.NewBoolFlag("progress_bar", "Show progress bar instead of per run markers, warnings are still printed", false)

	appName = filepath.Base(os.Args[0])
)

func main() {
	experimentStart := time.Now()
	conf.SetAppName(appName)
	conf.SetHelp("Sweeps number of clients of the in-flight entertainment ns-3 simulation and plots average packet loss.")
	experiment.Configure()

	config, err := sweepConfigFromFlags()
	if err != nil {
		logrus.Errorf("Invalid configuration: %v", err)
		os.Exit(experiment.ExUsage)
	}

	// Generate an experiment ID and start the log.
	uid := uuid.New()
	experimentDirectory := logger.Initialize(appName, uid)

	// Write configuration as metadata.
	metadata := experiment.NewMetadata(uid, experimentDirectory)
	errutil.CheckWithContext(metadata.RecordFlags(), "Cannot save flags to metadata")
	errutil.CheckWithContext(metadata.RecordEnv(conf.EnvPrefix), "Cannot save environment metadata")
	errutil.CheckWithContext(metadata.RecordPlatformMetrics(), "Cannot save platform metrics")
	err = metadata.RecordMap(experiment.MetadataMap{
		"command_arguments": strings.Join(os.Args, ","),
		"experiment_name":   appName,
		"start_time":        experimentStart.Format(time.RFC3339),
	})
	errutil.CheckWithContext(err, "Cannot save metadata")

	runner, err := simulator.NewProcessRunner(executor.NewLocalIn(experimentDirectory), simulator.Config{
		Binary:          binaryFlag.Value(),
		Script:          scriptFlag.Value(),
		CommandTemplate: commandTemplateFlag.Value(),
	})
	errutil.CheckWithContext(err, "Cannot create simulator runner")

	// Initialize progress bar when requested, otherwise print markers per run.
	var observer sweep.Observer = sweep.NewConsoleObserver(os.Stdout)
	var progress *sweep.ProgressObserver
	if progressBarFlag.Value() {
		progress = sweep.NewProgressObserver(config, os.Stdout)
		observer = progress
	}

	experimentSweep, err := sweep.NewSweep(uid, config, runner, observer)
	errutil.CheckWithContext(err, "Cannot create sweep")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("-- Starting Simulation --")
	fmt.Printf("Scenarios: %v,\nRuns per scenario: %d\n", config.Scenarios, config.TrialsPerScenario)

	report, err := experimentSweep.Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		logrus.Errorf("Experiment %s failed: %v", uid, err)
		os.Exit(experiment.ExSoftware)
	}
	fmt.Println("\n-- Simulation Complete --")

	visualization.Summary(os.Stdout, report)
	visualization.DrawTable(os.Stdout, visualization.ScenarioTable(report))
	errutil.CheckWithContext(metadata.RecordKindMap(experiment.MetadataKindResults, results(report)), "Cannot save results metadata")

	err = visualization.Chart(report, config.ChartPath)
	if err != nil {
		logrus.Errorf("Cannot render chart: %v", err)
		os.Exit(experiment.ExIOErr)
	}
	fmt.Printf("Plot saved as '%s'\n", config.ChartPath)

	logrus.Infof("Ended experiment %s with uid %s in %s", appName, uid, time.Since(experimentStart).String())
}

func sweepConfigFromFlags() (sweep.Config, error) {
	scenarios, err := sweep.ParseScenarios(scenariosFlag.Value())
	if err != nil {
		return sweep.Config{}, err
	}

	strategy, err := result.ParseStrategy(strategyFlag.Value())
	if err != nil {
		return sweep.Config{}, err
	}

	config := sweep.Config{
		Scenarios:         scenarios,
		TrialsPerScenario: trialsFlag.Value(),
		Parallelism:       parallelismFlag.Value(),
		TrialTimeout:      trialTimeoutFlag.Value(),
		Strategy:          strategy,
		ChartPath:         chartPathFlag.Value(),
	}
	if err := config.Validate(); err != nil {
		return sweep.Config{}, errors.Wrap(err, "invalid sweep flags")
	}

	return config, nil
}

// results converts report into metadata; not measured scenarios get an empty mean.
func results(report *sweep.ExperimentReport) experiment.MetadataMap {
	metadata := experiment.MetadataMap{}
	for _, record := range report.Scenarios {
		aggregate := record.Aggregate()
		prefix := "clients_" + strconv.Itoa(record.Clients) + "_"
		metadata[prefix+"valid_trials"] = strconv.Itoa(aggregate.Samples)
		metadata[prefix+"mean_loss"] = ""
		if aggregate.Measured {
			metadata[prefix+"mean_loss"] = strconv.FormatFloat(aggregate.Mean, 'f', -1, 64)
		}
	}
	return metadata
}
