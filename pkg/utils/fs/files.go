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

// Package fs contains file helpers shared by executors and experiments.
package fs

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadTail returns last lineCount lines of the file joined with new lines.
func ReadTail(filePath string, lineCount int) (tail string, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "could not read tail of %q", filePath)
	}
	defer file.Close()

	if lineCount <= 0 {
		return "", nil
	}

	ring := make([]string, 0, lineCount)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(ring) == lineCount {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "could not read tail of %q", filePath)
	}

	return strings.Join(ring, "\n"), nil
}

// MaxLineLength is the longest line ScanLines returns. Longer lines are skipped.
const MaxLineLength = 4 * 1024 * 1024

// ScanLines returns all lines from the reader in order, without line terminators.
// Lines exceeding MaxLineLength are dropped and do not stop the scan.
func ScanLines(r io.Reader) ([]string, error) {
	lines := []string{}
	reader := bufio.NewReaderSize(r, 64*1024)

	var line []byte
	overlong := false
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}

		if !overlong {
			line = append(line, chunk...)
			if len(line) > MaxLineLength {
				overlong = true
				line = nil
			}
		}
		if isPrefix {
			continue
		}

		if !overlong {
			lines = append(lines, strings.TrimRight(string(line), "\r"))
		}
		line = line[:0]
		overlong = false
	}
}
