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
Package simulator launches single trials of the network simulation and returns what they printed.

Runner is the only contract the sweep depends on. ProcessRunner starts the simulator via an
executor.Executor; CannedRunner replays prepared output.
*/
package simulator

import (
	"context"

	"github.com/pkg/errors"
)

// ErrTrialTimeout is the failure kind of a trial which did not finish within its time limit.
var ErrTrialTimeout = errors.New("trial timed out")

// Runner executes one trial for given client count and returns its standard output lines in order.
// Non-zero exit status of the simulator alone is not an error. When ctx is done the trial is
// abandoned and ctx.Err() is returned, possibly wrapped.
type Runner interface {
	Run(ctx context.Context, clients, trial int) ([]string, error)
}
