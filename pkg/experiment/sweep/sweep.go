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
	"context"
	"time"

	"github.com/intelsdi-x/netsweep/pkg/experiment/phase"
	"github.com/intelsdi-x/netsweep/pkg/simulator"
	"github.com/intelsdi-x/netsweep/pkg/simulator/result"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ExperimentReport holds finalized scenario records in sweep order.
type ExperimentReport struct {
	ExperimentID string
	Scenarios    []*ScenarioRecord
	Started      time.Time
	Duration     time.Duration
}

// Sweep drives trials of all scenarios.
type Sweep struct {
	experimentID string
	config       Config
	runner       simulator.Runner
	observer     Observer
}

// NewSweep validates configuration and returns Sweep. Nil observer means no notifications.
func NewSweep(experimentID string, config Config, runner simulator.Runner, observer Observer) (*Sweep, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sweep configuration")
	}
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if observer == nil {
		observer = NopObserver{}
	}

	return &Sweep{
		experimentID: experimentID,
		config:       config,
		runner:       runner,
		observer:     &synchronizedObserver{observer: observer},
	}, nil
}

// Run executes every scenario in configured order and returns the report.
// Cancelling ctx stops launching trials; the context error is returned wrapped.
func (s *Sweep) Run(ctx context.Context) (*ExperimentReport, error) {
	report := &ExperimentReport{
		ExperimentID: s.experimentID,
		Started:      time.Now(),
	}
	logrus.Infof("Starting sweep %s: %s", s.experimentID, s.config)

	extractor := result.NewExtractor(s.config.Strategy)
	for _, clients := range s.config.Scenarios {
		record := NewScenarioRecord(clients)
		scenario := &scenarioPhase{
			record:      record,
			runner:      s.runner,
			extractor:   extractor,
			observer:    s.observer,
			repetitions: s.config.TrialsPerScenario,
			timeout:     s.config.TrialTimeout,
		}

		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "sweep interrupted before phase %q", scenario.Name())
		}
		s.observer.ScenarioStarted(clients)

		err := s.runPhase(ctx, scenario)
		if err != nil {
			return nil, errors.Wrapf(err, "sweep interrupted in phase %q", scenario.Name())
		}
		report.Scenarios = append(report.Scenarios, record)
	}

	report.Duration = time.Since(report.Started)
	logrus.Infof("Ended sweep %s in %s", s.experimentID, report.Duration)
	return report, nil
}

// runPhase runs all repetitions of the phase on bounded pool and finalizes it.
func (s *Sweep) runPhase(ctx context.Context, p phase.Phase) error {
	logrus.Debugf("Starting %s with %d repetitions", p.Name(), p.Repetitions())

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.config.workers())
	for repetition := 0; repetition < p.Repetitions(); repetition++ {
		session := phase.Session{
			Context:      groupCtx,
			ExperimentID: s.experimentID,
			PhaseID:      p.Name(),
			RepetitionID: repetition,
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return p.Run(session)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.Finalize()
}
