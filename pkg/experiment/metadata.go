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
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/intelsdi-x/netsweep/pkg/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MetadataFileName is the name of the metadata file in experiment directory.
const MetadataFileName = "metadata.yaml"

const (
	// MetadataKindEmpty groups metadata recorded by the experiment itself.
	MetadataKindEmpty = "experiment"
	// MetadataKindFlags groups flag values.
	MetadataKindFlags = "flags"
	// MetadataKindEnviron groups environment variables.
	MetadataKindEnviron = "environ"
	// MetadataKindPlatform groups platform metrics.
	MetadataKindPlatform = "platform"
	// MetadataKindResults groups aggregated results.
	MetadataKindResults = "results"
)

// MetadataMap encodes the key value pairs stored in the metadata file.
type MetadataMap map[string]string

type metadataDocument struct {
	ExperimentID string                 `yaml:"experiment_id"`
	Groups       map[string]MetadataMap `yaml:"groups"`
}

// Metadata keeps the experiment metadata grouped by kind and mirrors it into a YAML file
// in the experiment directory after every change.
type Metadata struct {
	path string

	mutex    sync.Mutex
	document metadataDocument
}

// NewMetadata returns empty Metadata of given experiment stored in experimentDirectory.
func NewMetadata(experimentID, experimentDirectory string) *Metadata {
	return &Metadata{
		path: filepath.Join(experimentDirectory, MetadataFileName),
		document: metadataDocument{
			ExperimentID: experimentID,
			Groups:       map[string]MetadataMap{},
		},
	}
}

// OpenMetadata reads metadata recorded in experimentDirectory.
func OpenMetadata(experimentDirectory string) (*Metadata, error) {
	path := filepath.Join(experimentDirectory, MetadataFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read metadata file %q", path)
	}

	m := &Metadata{path: path}
	err = yaml.Unmarshal(content, &m.document)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode metadata file %q", path)
	}
	if m.document.Groups == nil {
		m.document.Groups = map[string]MetadataMap{}
	}

	return m, nil
}

// ExperimentID returns id of the experiment the metadata belongs to.
func (m *Metadata) ExperimentID() string {
	return m.document.ExperimentID
}

// storeMap merges metadata into the group of given kind and writes the file.
func (m *Metadata) storeMap(metadata MetadataMap, kind string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	group, ok := m.document.Groups[kind]
	if !ok {
		group = MetadataMap{}
		m.document.Groups[kind] = group
	}
	for key, value := range metadata {
		group[key] = value
	}

	return m.flush()
}

// flush replaces the metadata file so that readers never see partial content.
func (m *Metadata) flush() error {
	content, err := yaml.Marshal(&m.document)
	if err != nil {
		return errors.Wrap(err, "cannot encode metadata")
	}

	temporary := m.path + ".tmp"
	err = os.WriteFile(temporary, content, 0644)
	if err != nil {
		return errors.Wrapf(err, "cannot write metadata file %q", temporary)
	}
	err = os.Rename(temporary, m.path)
	if err != nil {
		return errors.Wrapf(err, "cannot replace metadata file %q", m.path)
	}

	return nil
}

// Record stores a key and value and associates with the experiment id.
func (m *Metadata) Record(key string, value string) error {
	return m.storeMap(MetadataMap{key: value}, MetadataKindEmpty)
}

// RecordMap stores a key and value map and associates with the experiment id.
func (m *Metadata) RecordMap(metadata MetadataMap) error {
	return m.storeMap(metadata, MetadataKindEmpty)
}

// RecordKindMap stores a key and value map grouped by kind.
func (m *Metadata) RecordKindMap(kind string, metadata MetadataMap) error {
	return m.storeMap(metadata, kind)
}

// RecordFlags saves whole flags based configuration in the metadata information.
func (m *Metadata) RecordFlags() error {
	return m.storeMap(conf.GetFlags(), MetadataKindFlags)
}

// RecordEnv adds all OS environment variables that start with prefix.
func (m *Metadata) RecordEnv(prefix string) error {
	metadata := MetadataMap{}
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, prefix) {
			fields := strings.SplitN(env, "=", 2)
			metadata[fields[0]] = fields[1]
		}
	}
	return m.storeMap(metadata, MetadataKindEnviron)
}

// RecordPlatformMetrics stores platform specific metadata.
func (m *Metadata) RecordPlatformMetrics() error {
	return m.storeMap(GetPlatformMetrics(), MetadataKindPlatform)
}

// Get returns copy of all metadata groups.
func (m *Metadata) Get() map[string]MetadataMap {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out := map[string]MetadataMap{}
	for kind, group := range m.document.Groups {
		out[kind] = copyMap(group)
	}
	return out
}

// GetGroup returns copy of single kind. Returns error if no such kind was recorded.
func (m *Metadata) GetGroup(kind string) (MetadataMap, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	group, ok := m.document.Groups[kind]
	if !ok {
		return nil, errors.Errorf("cannot retrieve metadata for experiment ID %q and %q kind", m.document.ExperimentID, kind)
	}
	return copyMap(group), nil
}

// Clear removes the metadata file.
func (m *Metadata) Clear() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.document.Groups = map[string]MetadataMap{}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove metadata file %q", m.path)
	}
	return nil
}

func copyMap(in MetadataMap) MetadataMap {
	out := MetadataMap{}
	for key, value := range in {
		out[key] = value
	}
	return out
}
