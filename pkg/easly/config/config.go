// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for configurations which cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the user-facing configuration of resolution.  This is loaded
// (in increasing priority) from defaults, a YAML file, and then the
// environment.  Command-line flags take precedence over all of these.
type Config struct {
	// MaxPasses bounds the number of passes made by the engine.
	MaxPasses uint `yaml:"max_passes"`
	// Workers bounds the number of rules evaluated concurrently.  Zero means
	// one per available processor.
	Workers uint `yaml:"workers"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{MaxPasses: engine.DefaultMaxPasses}
}

// Load a configuration from a given YAML file (if any), followed by the
// environment.  An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	//
	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return config, err
		} else if err := Parse(bytes, &config); err != nil {
			return config, fmt.Errorf("%s: %w", path, err)
		}
	}
	//
	if err := FromEnv(&config); err != nil {
		return config, err
	}
	//
	return config, config.Validate()
}

// Parse a YAML document into a given configuration, rejecting unknown keys.
// Keys which are not given leave the existing value unchanged.
func Parse(bytes []byte, config *Config) error {
	var node yaml.Node
	//
	if err := yaml.Unmarshal(bytes, &node); err != nil {
		return err
	} else if len(node.Content) == 0 {
		// empty document
		return nil
	}
	//
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected mapping", ErrInvalid, root.Line)
	}
	//
	for i := 0; i+1 < len(root.Content); i += 2 {
		switch key := root.Content[i]; key.Value {
		case "max_passes", "workers":
		default:
			return fmt.Errorf("%w: line %d: unknown key %q", ErrInvalid, key.Line, key.Value)
		}
	}
	//
	return root.Decode(config)
}

// FromEnv overrides a configuration from the EASLY_MAX_PASSES and
// EASLY_WORKERS environment variables (when set).
func FromEnv(config *Config) error {
	for _, v := range []struct {
		name  string
		field *uint
	}{{"EASLY_MAX_PASSES", &config.MaxPasses}, {"EASLY_WORKERS", &config.Workers}} {
		if s, ok := os.LookupEnv(v.name); ok {
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalid, v.name, err)
			}
			//
			*v.field = uint(n)
		}
	}
	//
	return nil
}

// Validate checks this configuration can be used.
func (p Config) Validate() error {
	if p.MaxPasses == 0 {
		return fmt.Errorf("%w: max_passes must be positive", ErrInvalid)
	}
	//
	return nil
}

// Engine returns the engine configuration corresponding to this one.
func (p Config) Engine() engine.Config {
	config := engine.DefaultConfig()
	config.MaxPasses = p.MaxPasses
	//
	if p.Workers != 0 {
		config.Workers = p.Workers
	}
	//
	return config
}
