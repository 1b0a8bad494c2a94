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

// Phase defines interface which shall be provided by user for the
// Experiment Driver.
type Phase interface {
	// Name returns measurement name.
	Name() string
	// Repetitions returns desired number of measurement repetitions.
	Repetitions() int
	// Run runs a measurement. It takes phase session to make each phase
	// unique for collected results.
	Run(Session) error
	// Finalize is executed after all repetitions of given measurement.
	Finalize() error
}
