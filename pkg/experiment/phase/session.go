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

package phase

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	// ExperimentKey defines the log field of the experiment id.
	ExperimentKey = "sweep_experiment"
	// PhaseKey defines the log field of the phase name.
	PhaseKey = "sweep_phase"
	// RepetitionKey defines the log field of the repetition index.
	RepetitionKey = "sweep_repetition"
)

// Session identifies a single repetition of a phase.
type Session struct {
	Context context.Context

	ExperimentID string
	PhaseID      string
	RepetitionID int
}

// Fields returns the session identity as log fields.
func (s Session) Fields() logrus.Fields {
	return logrus.Fields{
		ExperimentKey: s.ExperimentID,
		PhaseKey:      s.PhaseID,
		RepetitionKey: s.RepetitionID,
	}
}
