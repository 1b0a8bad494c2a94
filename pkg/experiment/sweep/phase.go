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
	"fmt"
	"time"

	"github.com/intelsdi-x/netsweep/pkg/experiment/phase"
	"github.com/intelsdi-x/netsweep/pkg/simulator"
	"github.com/intelsdi-x/netsweep/pkg/simulator/result"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// scenarioPhase runs trials of a single client count.
type scenarioPhase struct {
	record      *ScenarioRecord
	runner      simulator.Runner
	extractor   result.Extractor
	observer    Observer
	repetitions int
	timeout     time.Duration
}

// Returns Phase name.
func (p *scenarioPhase) Name() string {
	return fmt.Sprintf("Clients_%d", p.record.Clients)
}

// Returns number of repetitions.
func (p *scenarioPhase) Repetitions() int {
	return p.repetitions
}

// Run runs a single trial. Trial failures are recorded, not returned;
// the only error is the one of the sweep context.
func (p *scenarioPhase) Run(session phase.Session) error {
	ctx := session.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logrus.WithFields(session.Fields())
	clients, trial := p.record.Clients, session.RepetitionID

	trialCtx, cancel := ctx, context.CancelFunc(func() {})
	if p.timeout > 0 {
		trialCtx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	loss, err := p.measure(trialCtx, clients, trial)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) && trialCtx.Err() != nil {
			err = errors.Wrapf(simulator.ErrTrialTimeout, "no result within %s", p.timeout)
		}

		logger.Warnf("No valid result for %d clients in trial %d: %v", clients, trial, err)
		p.observer.TrialFailed(clients, trial, err)
		return p.record.Add(TrialResult{Trial: trial, Err: err})
	}

	logger.Debugf("Packet loss for %d clients in trial %d: %.2f%%", clients, trial, loss)
	p.observer.TrialSucceeded(clients, trial, loss)
	return p.record.Add(TrialResult{Trial: trial, Loss: loss, Present: true})
}

func (p *scenarioPhase) measure(ctx context.Context, clients, trial int) (float64, error) {
	lines, err := p.runner.Run(ctx, clients, trial)
	if err != nil {
		return 0, err
	}

	line, err := p.extractor.Extract(lines)
	if err != nil {
		return 0, err
	}
	return line.Loss, nil
}

// Finalize is executed after all repetitions of given measurement.
func (p *scenarioPhase) Finalize() error {
	err := p.record.Finalize()
	if err != nil {
		return err
	}

	aggregate := p.record.Aggregate()
	logrus.Debugf("Calculated packet loss for %d clients: mean %.2f%%, stddev %.2f from %d of %d trials",
		p.record.Clients, aggregate.Mean, aggregate.StdDev, aggregate.Samples, p.repetitions)
	p.observer.ScenarioFinished(p.record)

	return nil
}
