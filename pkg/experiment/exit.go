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

package experiment

// Exit codes follow sysexits.h.
const (
	// ExUsage means the command was used incorrectly.
	ExUsage = 64
	// ExSoftware means an internal software error has been detected.
	ExSoftware = 70
	// ExIOErr means an error occurred while doing I/O on some file.
	ExIOErr = 74
)
