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
Package result extracts the per-trial metric which the simulator reports on its standard output.

The simulator prints one line per run:

	CSV_RESULT,<clients>,<run>,<loss percentage>

All other output is ignored.
*/
package result

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Marker starts every candidate result line.
	Marker = "CSV_RESULT"
	// Separator splits result line fields.
	Separator = ","
	// FieldCount is the expected number of fields including the marker.
	FieldCount = 4
)

var (
	// ErrNoResultLine is returned when output contains no line starting with Marker.
	ErrNoResultLine = errors.New("no " + Marker + " line found")
	// ErrMalformedResultLine is returned (wrapped) when a marker line has wrong arity or a non-numeric loss.
	ErrMalformedResultLine = errors.New("malformed " + Marker + " line")
)

// Strategy decides what happens when a marker line is malformed.
type Strategy int

const (
	// FirstMatch uses only the first marker line; when it is malformed the trial has no result
	// even if a well formed line follows.
	FirstMatch Strategy = iota
	// FirstWellFormed skips malformed marker lines and uses the first well formed one.
	FirstWellFormed
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case FirstMatch:
		return "first_match"
	case FirstWellFormed:
		return "first_well_formed"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStrategy returns Strategy for its String() representation.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FirstMatch.String():
		return FirstMatch, nil
	case FirstWellFormed.String():
		return FirstWellFormed, nil
	}
	return FirstMatch, errors.Errorf("unknown extraction strategy %q (expected %q or %q)",
		name, FirstMatch, FirstWellFormed)
}

// Line is a parsed result line.
type Line struct {
	// Clients and Run are reported by the simulator and kept verbatim for diagnostics.
	Clients string
	Run     string
	// Loss is the packet loss percentage.
	Loss float64
}

// Extractor scans trial output for the result line.
type Extractor struct {
	Strategy Strategy
}

// NewExtractor returns Extractor using given strategy.
func NewExtractor(strategy Strategy) Extractor {
	return Extractor{Strategy: strategy}
}

// Extract scans lines in order and returns the parsed result line.
// Returned error is ErrNoResultLine or wraps ErrMalformedResultLine; use errors.Is to tell them apart.
func (e Extractor) Extract(lines []string) (Line, error) {
	var firstMalformed error
	for _, line := range lines {
		if !strings.HasPrefix(line, Marker) {
			continue
		}

		parsed, err := ParseLine(line)
		if err == nil {
			return parsed, nil
		}

		if e.Strategy == FirstMatch {
			return Line{}, err
		}
		if firstMalformed == nil {
			firstMalformed = err
		}
	}

	if firstMalformed != nil {
		return Line{}, firstMalformed
	}
	return Line{}, ErrNoResultLine
}

// ParseLine parses a single marker line.
func ParseLine(line string) (Line, error) {
	fields := strings.Split(line, Separator)
	if len(fields) != FieldCount {
		return Line{}, errors.Wrapf(ErrMalformedResultLine, "expected %d fields but got %d in %q",
			FieldCount, len(fields), line)
	}

	loss, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return Line{}, errors.Wrapf(ErrMalformedResultLine, "loss value %q must be a float: %v", fields[3], err)
	}
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return Line{}, errors.Wrapf(ErrMalformedResultLine, "loss value %q must be finite", fields[3])
	}

	return Line{
		Clients: strings.TrimSpace(fields[1]),
		Run:     strings.TrimSpace(fields[2]),
		Loss:    loss,
	}, nil
}
