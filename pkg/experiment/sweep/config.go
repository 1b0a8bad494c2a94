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

/*
Package sweep runs the client count sweep: every configured scenario becomes a phase whose
repetitions are simulator trials. Each trial contributes at most one packet loss value, and a
scenario is finalized into an aggregate before the next one starts.
*/
package sweep

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/intelsdi-x/netsweep/pkg/simulator/result"
	"github.com/pkg/errors"
)

const (
	// DefaultScenarios lists client counts swept when nothing else is configured.
	DefaultScenarios = "5,10,15,20"
	// DefaultTrialsPerScenario is number of simulator runs per client count.
	DefaultTrialsPerScenario = 10
	// DefaultChartPath is where the chart is written.
	DefaultChartPath = "packet_loss_vs_clients.png"
)

// Config is a configuration of the sweep.
type Config struct {
	// Scenarios are client counts in sweep order.
	Scenarios         []int
	TrialsPerScenario int
	// Parallelism bounds concurrent trials of a single scenario. Zero means one.
	Parallelism int
	// TrialTimeout limits a single trial. Zero means no limit.
	TrialTimeout time.Duration
	Strategy     result.Strategy
	ChartPath    string
}

// DefaultConfig is a constructor for Config with default parameters.
func DefaultConfig() Config {
	scenarios, err := ParseScenarios(DefaultScenarios)
	if err != nil {
		panic(err)
	}

	return Config{
		Scenarios:         scenarios,
		TrialsPerScenario: DefaultTrialsPerScenario,
		Parallelism:       1,
		Strategy:          result.FirstMatch,
		ChartPath:         DefaultChartPath,
	}
}

// Validate checks whether configuration describes a runnable sweep.
func (c Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return errors.New("at least one scenario is required")
	}

	seen := map[int]bool{}
	for _, clients := range c.Scenarios {
		if clients <= 0 {
			return errors.Errorf("client count must be positive, got %d", clients)
		}
		if seen[clients] {
			return errors.Errorf("client count %d is listed more than once", clients)
		}
		seen[clients] = true
	}

	if c.TrialsPerScenario <= 0 {
		return errors.Errorf("trials per scenario must be positive, got %d", c.TrialsPerScenario)
	}
	if c.Parallelism < 0 {
		return errors.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	if c.TrialTimeout < 0 {
		return errors.Errorf("trial timeout must not be negative, got %s", c.TrialTimeout)
	}

	return nil
}

// workers returns effective number of concurrent trials.
func (c Config) workers() int {
	if c.Parallelism == 0 {
		return 1
	}
	return c.Parallelism
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("scenarios %v, %d trials each, parallelism %d, timeout %s, %s extraction",
		c.Scenarios, c.TrialsPerScenario, c.workers(), c.TrialTimeout, c.Strategy)
}

// ParseScenarios converts comma-separated list of client counts to integers keeping the order.
func ParseScenarios(list string) ([]int, error) {
	var scenarios []int
	for _, value := range strings.Split(list, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		clients, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed converting %q to integer", value)
		}
		scenarios = append(scenarios, clients)
	}

	return scenarios, nil
}
