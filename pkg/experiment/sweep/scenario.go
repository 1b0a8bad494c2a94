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
	"sort"
	"sync"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// TrialResult is the outcome of a single trial. Absent results keep the failure in Err.
type TrialResult struct {
	Trial   int
	Loss    float64
	Present bool
	Err     error
}

// Aggregate summarizes present results of a scenario.
// When no result is present, Measured is false and all values are zero.
type Aggregate struct {
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Samples  int
	Measured bool
}

// ScenarioRecord collects trial results of one client count.
// It is safe for concurrent use.
type ScenarioRecord struct {
	Clients int

	mutex     sync.Mutex
	trials    []TrialResult
	aggregate Aggregate
	finalized bool
}

// NewScenarioRecord returns empty record for given client count.
func NewScenarioRecord(clients int) *ScenarioRecord {
	return &ScenarioRecord{Clients: clients}
}

// Add appends trial result. It fails once record is finalized.
func (r *ScenarioRecord) Add(trial TrialResult) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.finalized {
		return errors.Errorf("record of %d clients is already finalized, cannot add trial %d", r.Clients, trial.Trial)
	}
	r.trials = append(r.trials, trial)
	return nil
}

// Finalize orders trials by index and computes the aggregate from present results.
// Record is immutable afterwards; finalizing twice is an error.
func (r *ScenarioRecord) Finalize() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.finalized {
		return errors.Errorf("record of %d clients is already finalized", r.Clients)
	}

	sort.SliceStable(r.trials, func(i, j int) bool { return r.trials[i].Trial < r.trials[j].Trial })

	aggregate, err := aggregate(r.trials)
	if err != nil {
		return errors.Wrapf(err, "cannot aggregate results of %d clients", r.Clients)
	}
	r.aggregate = aggregate
	r.finalized = true

	return nil
}

// Finalized tells whether Finalize succeeded.
func (r *ScenarioRecord) Finalized() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.finalized
}

// Aggregate returns computed aggregate. It is zero value before finalization.
func (r *ScenarioRecord) Aggregate() Aggregate {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.aggregate
}

// Trials returns copy of collected trial results.
func (r *ScenarioRecord) Trials() []TrialResult {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]TrialResult(nil), r.trials...)
}

// Losses returns present loss values in trial order.
func (r *ScenarioRecord) Losses() []float64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return presentLosses(r.trials)
}

func presentLosses(trials []TrialResult) []float64 {
	losses := []float64{}
	for _, trial := range trials {
		if trial.Present {
			losses = append(losses, trial.Loss)
		}
	}
	return losses
}

func aggregate(trials []TrialResult) (Aggregate, error) {
	losses := stats.Float64Data(presentLosses(trials))
	if len(losses) == 0 {
		// Nothing was measured; zero mean is kept for reports which cannot show a gap.
		return Aggregate{}, nil
	}

	mean, err := losses.Mean()
	if err != nil {
		return Aggregate{}, err
	}
	stdDev, err := losses.StandardDeviationPopulation()
	if err != nil {
		return Aggregate{}, err
	}
	minimum, err := losses.Min()
	if err != nil {
		return Aggregate{}, err
	}
	maximum, err := losses.Max()
	if err != nil {
		return Aggregate{}, err
	}

	return Aggregate{
		Mean:     mean,
		StdDev:   stdDev,
		Min:      minimum,
		Max:      maximum,
		Samples:  len(losses),
		Measured: true,
	}, nil
}
