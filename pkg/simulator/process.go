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

package simulator

import (
	"bytes"
	"context"
	"text/template"

	"github.com/intelsdi-x/netsweep/pkg/executor"
	"github.com/intelsdi-x/netsweep/pkg/utils/err_collection"
	"github.com/intelsdi-x/netsweep/pkg/utils/fs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBinary is the ns-3 launcher script relative to the working directory.
	DefaultBinary = "./ns3"
	// DefaultScript is the simulation program passed to the launcher.
	DefaultScript = "scratch/fleight_entertainment_system_simulation.cc"
	// DefaultCommandTemplate renders the shell command of a single trial.
	DefaultCommandTemplate = "{{.Binary}} run '{{.Script}} --nClients={{.Clients}}'"
)

// Config is a configuration of ProcessRunner.
type Config struct {
	Binary          string
	Script          string
	CommandTemplate string
}

// DefaultConfig is a constructor for Config with default parameters.
func DefaultConfig() Config {
	return Config{
		Binary:          DefaultBinary,
		Script:          DefaultScript,
		CommandTemplate: DefaultCommandTemplate,
	}
}

// commandParameters are the fields available to the command template.
type commandParameters struct {
	Binary  string
	Script  string
	Clients int
	Trial   int
}

// ProcessRunner runs the simulator as a child process.
type ProcessRunner struct {
	executor executor.Executor
	config   Config
	command  *template.Template
}

// NewProcessRunner returns ProcessRunner launching trials with given executor.
func NewProcessRunner(exec executor.Executor, config Config) (*ProcessRunner, error) {
	command, err := template.New("command").Option("missingkey=error").Parse(config.CommandTemplate)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse command template %q", config.CommandTemplate)
	}

	return &ProcessRunner{
		executor: exec,
		config:   config,
		command:  command,
	}, nil
}

// Command returns the shell command for given client count and trial.
func (r *ProcessRunner) Command(clients, trial int) (string, error) {
	buffer := &bytes.Buffer{}
	err := r.command.Execute(buffer, commandParameters{
		Binary:  r.config.Binary,
		Script:  r.config.Script,
		Clients: clients,
		Trial:   trial,
	})
	if err != nil {
		return "", errors.Wrapf(err, "cannot render command for %d clients", clients)
	}
	return buffer.String(), nil
}

// Run implements Runner.
func (r *ProcessRunner) Run(ctx context.Context, clients, trial int) (lines []string, err error) {
	command, err := r.Command(clients, trial)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{"clients": clients, "trial": trial})
	logger.Debugf("Launching %q on %s executor", command, r.executor.Name())

	handle, err := r.executor.Execute(command)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot launch trial %d for %d clients", trial, clients)
	}
	defer func() {
		cleanupErr := cleanup(handle)
		if cleanupErr != nil {
			logger.Warnf("Cleaning up after %q failed: %v", command, cleanupErr)
		}
	}()

	err = r.wait(ctx, handle)
	if err != nil {
		return nil, errors.Wrapf(err, "trial %d for %d clients", trial, clients)
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read exit code of trial %d for %d clients", trial, clients)
	}
	if exitCode != 0 {
		executor.LogUnsuccessfulExecution(command, r.executor.Name(), handle, logrus.DebugLevel)
	} else {
		executor.LogSuccessfulExecution(command, r.executor.Name(), handle)
	}

	stdout, err := handle.StdoutFile()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open output of trial %d for %d clients", trial, clients)
	}
	defer stdout.Close()

	lines, err = fs.ScanLines(stdout)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read output of trial %d for %d clients", trial, clients)
	}

	return lines, nil
}

// wait blocks until the task ends or the context is done. In the latter case the task is stopped.
func (r *ProcessRunner) wait(ctx context.Context, handle executor.TaskHandle) error {
	terminated := make(chan struct{})
	go func() {
		defer close(terminated)
		handle.Wait(0)
	}()

	select {
	case <-terminated:
		return nil
	case <-ctx.Done():
		if err := handle.Stop(); err != nil {
			logrus.Warnf("Cannot stop task: %v", err)
		}
		<-terminated
		return ctx.Err()
	}
}

func cleanup(handle executor.TaskHandle) error {
	var errCollection errcollection.ErrorCollection
	errCollection.Add(handle.Stop())
	errCollection.Add(handle.Clean())
	errCollection.Add(handle.EraseOutput())
	return errCollection.GetErrIfAny()
}
