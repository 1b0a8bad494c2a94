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
	"context"
	"sync"
	"time"
)

// CannedOutput is the prepared result of a single trial.
type CannedOutput struct {
	Lines []string
	Err   error
	// Delay postpones the answer; cancelling the context ends the delay early.
	Delay time.Duration
}

// Invocation records a single Run call.
type Invocation struct {
	Clients int
	Trial   int
}

// CannedRunner is a Runner replaying prepared outputs keyed by client count and trial index.
// Trials without prepared output print nothing.
type CannedRunner struct {
	mutex       sync.Mutex
	outputs     map[int][]CannedOutput
	invocations []Invocation
}

// NewCannedRunner returns empty CannedRunner.
func NewCannedRunner() *CannedRunner {
	return &CannedRunner{outputs: map[int][]CannedOutput{}}
}

// Add appends outputs for consecutive trials of given client count.
func (c *CannedRunner) Add(clients int, outputs ...CannedOutput) *CannedRunner {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.outputs[clients] = append(c.outputs[clients], outputs...)
	return c
}

// AddLines is a shortcut for Add with one CannedOutput per line set.
func (c *CannedRunner) AddLines(clients int, lines ...[]string) *CannedRunner {
	for _, l := range lines {
		c.Add(clients, CannedOutput{Lines: l})
	}
	return c
}

// Run implements Runner.
func (c *CannedRunner) Run(ctx context.Context, clients, trial int) ([]string, error) {
	c.mutex.Lock()
	c.invocations = append(c.invocations, Invocation{Clients: clients, Trial: trial})
	var output CannedOutput
	if trial >= 0 && trial < len(c.outputs[clients]) {
		output = c.outputs[clients][trial]
	}
	c.mutex.Unlock()

	if output.Delay > 0 {
		timer := time.NewTimer(output.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return output.Lines, output.Err
}

// Invocations returns Run calls in the order they were made.
func (c *CannedRunner) Invocations() []Invocation {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]Invocation(nil), c.invocations...)
}
