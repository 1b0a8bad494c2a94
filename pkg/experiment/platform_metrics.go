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

import (
	"bufio"
	"os"
	"os/exec"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// CPUModelNameKey defines a key in the platform metrics map
	CPUModelNameKey = "cpu_model"
	// CPUCountKey defines a key in the platform metrics map
	CPUCountKey = "cpu_count"
	// KernelVersionKey defines a key in the platform metrics map
	KernelVersionKey = "kernel_version"
	// OSReleaseKey defines a key in the platform metrics map
	OSReleaseKey = "os_release"
	// CPUTopologyKey defines a key in the platform metrics map
	CPUTopologyKey = "cpu_topology"
	// PowerGovernorKey defines a key in the platform metrics map
	PowerGovernorKey = "power_governor"
)

var (
	cpuinfoPath   = "/proc/cpuinfo"
	versionPath   = "/proc/version"
	osReleasePath = "/etc/os-release"
	cpuSysfsDir   = "/sys/devices/system/cpu"
)

// GetPlatformMetrics returns map of strings with platform metrics.
// If metric could not be retrieved value for the key is empty string.
func GetPlatformMetrics() (platformMetrics map[string]string) {
	platformMetrics = map[string]string{
		CPUCountKey: strconv.Itoa(runtime.NumCPU()),
	}

	for key, get := range map[string]func() (string, error){
		CPUModelNameKey:  CPUModelName,
		KernelVersionKey: KernelVersion,
		OSReleaseKey:     OSRelease,
		CPUTopologyKey:   CPUTopology,
		PowerGovernorKey: PowerGovernor,
	} {
		item, err := get()
		if err != nil {
			logrus.Warnf("GetPlatformMetrics: Failed to get %s metric. Skipping. Error: %s", key, err.Error())
		}
		platformMetrics[key] = item
	}

	return platformMetrics
}

// CPUModelName reads /proc/cpuinfo and returns line 'model name' line.
// Note that it returns only first occurrence of the model since mixed cpu models
// are not supported.
func CPUModelName() (string, error) {
	file, err := os.Open(cpuinfoPath)
	if err != nil {
		return "", errors.Wrapf(err, "cannot open %s file", cpuinfoPath)
	}
	defer file.Close()

	procScanner := bufio.NewScanner(file)
	for procScanner.Scan() {
		chunks := strings.SplitN(procScanner.Text(), ":", 2)
		if len(chunks) != 2 {
			continue
		}
		if strings.TrimSpace(chunks[0]) == "model name" {
			return strings.TrimSpace(chunks[1]), nil
		}
	}
	// Return error from scanner or newly created one.
	err = procScanner.Err()
	if err == nil {
		err = errors.Errorf("did not find phrase 'model name' in %s", cpuinfoPath)
	}
	return "", err
}

// KernelVersion return kernel version as stated in /proc/version.
func KernelVersion() (string, error) {
	return readContents(versionPath)
}

// OSRelease returns PRETTY_NAME from /etc/os-release.
func OSRelease() (string, error) {
	content, err := readContents(osReleasePath)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(content, "\n") {
		if value, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(value, `"`), nil
		}
	}
	return "", errors.Errorf("did not find PRETTY_NAME in %s", osReleasePath)
}

// CPUTopology returns CPU topology returned by 'lscpu -e' command.
func CPUTopology() (string, error) {
	output, err := exec.Command("lscpu", "-e").Output()
	if err != nil {
		return "", errors.Wrap(err, "failed to get output from lscpu -e")
	}
	return strings.TrimSpace(string(output)), nil
}

// PowerGovernor returns a comma separated list of CPU:power_policy.
// Example (snippet):
//
//	0:performance,1:performance,10:performance
func PowerGovernor() (string, error) {
	files, err := os.ReadDir(cpuSysfsDir)
	if err != nil {
		return "", errors.Wrap(err, "failed to scan sysfs for CPU devices")
	}

	re := regexp.MustCompile("^cpu[0-9]+$")
	output := []string{}
	for _, file := range files {
		if file.IsDir() && re.MatchString(file.Name()) {
			cpufreq := path.Join(cpuSysfsDir, file.Name(), "cpufreq/scaling_governor")

			// Just try to read it. Don't try to be smart here. Failure is OK.
			governor, err := readContents(cpufreq)
			if err != nil {
				return "", err
			}
			output = append(output, strings.TrimPrefix(file.Name(), "cpu")+":"+governor)
		}
	}
	sort.Strings(output)

	return strings.Join(output, ","), nil
}

func readContents(name string) (string, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return strings.TrimSpace(string(content)), nil
}
