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

package sweep

import (
	"fmt"
	"io"
	"sync"

	"gopkg.in/cheggaaa/pb.v1"
)

// Observer is notified about sweep progress. Calls are serialized by the sweep.
type Observer interface {
	ScenarioStarted(clients int)
	TrialSucceeded(clients, trial int, loss float64)
	TrialFailed(clients, trial int, err error)
	ScenarioFinished(record *ScenarioRecord)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

// ScenarioStarted implements Observer.
func (NopObserver) ScenarioStarted(int) {}

// TrialSucceeded implements Observer.
func (NopObserver) TrialSucceeded(int, int, float64) {}

// TrialFailed implements Observer.
func (NopObserver) TrialFailed(int, int, error) {}

// ScenarioFinished implements Observer.
func (NopObserver) ScenarioFinished(*ScenarioRecord) {}

const warningFormat = "\n[Warning] No valid result found for clients=%d, run=%d (%v)\n"

// ConsoleObserver prints a dot per successful trial and a warning per failed one.
// Trials are numbered from one.
type ConsoleObserver struct {
	w io.Writer
}

// NewConsoleObserver returns ConsoleObserver writing to w.
func NewConsoleObserver(w io.Writer) ConsoleObserver {
	return ConsoleObserver{w: w}
}

// ScenarioStarted implements Observer.
func (c ConsoleObserver) ScenarioStarted(clients int) {
	fmt.Fprintf(c.w, "\n-- Simulating scenario with %d clients --", clients)
}

// TrialSucceeded implements Observer.
func (c ConsoleObserver) TrialSucceeded(int, int, float64) {
	fmt.Fprint(c.w, ".")
}

// TrialFailed implements Observer.
func (c ConsoleObserver) TrialFailed(clients, trial int, err error) {
	fmt.Fprintf(c.w, warningFormat, clients, trial+1, err)
}

// ScenarioFinished implements Observer.
func (c ConsoleObserver) ScenarioFinished(*ScenarioRecord) {}

// lockedWriter serializes writes of the progress bar refresher and warnings.
type lockedWriter struct {
	mutex sync.Mutex
	w     io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.w.Write(p)
}

// ProgressObserver ticks a progress bar once per trial.
// Warnings about failed trials are printed above the bar.
type ProgressObserver struct {
	bar    *pb.ProgressBar
	output *lockedWriter
}

// NewProgressObserver starts a progress bar for all trials of the sweep.
// Finish must be called when the sweep ends.
func NewProgressObserver(config Config, w io.Writer) *ProgressObserver {
	output := &lockedWriter{w: w}
	bar := pb.New(len(config.Scenarios) * config.TrialsPerScenario)
	bar.Output = output
	bar.ShowCounters = true
	bar.ShowTimeLeft = true
	bar.Start()
	return &ProgressObserver{bar: bar, output: output}
}

// ScenarioStarted implements Observer.
func (p *ProgressObserver) ScenarioStarted(clients int) {
	p.bar.Prefix(fmt.Sprintf("%d clients ", clients))
	// Changes to progress bar should be applied immediately.
	p.bar.AlwaysUpdate = true
	p.bar.Update()
	p.bar.AlwaysUpdate = false
}

// TrialSucceeded implements Observer.
func (p *ProgressObserver) TrialSucceeded(int, int, float64) {
	p.bar.Increment()
}

// TrialFailed implements Observer.
func (p *ProgressObserver) TrialFailed(clients, trial int, err error) {
	fmt.Fprintf(p.output, warningFormat, clients, trial+1, err)
	p.bar.Increment()
}

// ScenarioFinished implements Observer.
func (p *ProgressObserver) ScenarioFinished(*ScenarioRecord) {}

// Finish stops the progress bar.
func (p *ProgressObserver) Finish() {
	p.bar.Finish()
}

// synchronizedObserver serializes calls of concurrent trials.
type synchronizedObserver struct {
	mutex    sync.Mutex
	observer Observer
}

func (s *synchronizedObserver) ScenarioStarted(clients int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.observer.ScenarioStarted(clients)
}

func (s *synchronizedObserver) TrialSucceeded(clients, trial int, loss float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.observer.TrialSucceeded(clients, trial, loss)
}

func (s *synchronizedObserver) TrialFailed(clients, trial int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.observer.TrialFailed(clients, trial, err)
}

func (s *synchronizedObserver) ScenarioFinished(record *ScenarioRecord) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.observer.ScenarioFinished(record)
}
