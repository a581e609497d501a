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
	"os"
	"path/filepath"
	"testing"

	"github.com/dlebansais/Easly-Compiler-sub002/pkg/easly/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_Default(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint(engine.DefaultMaxPasses), config.MaxPasses)
	assert.Equal(t, uint(0), config.Workers)
	assert.Positive(t, config.Engine().Workers)
}

func Test_Config_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "easly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_passes: 50\nworkers: 3\n"), 0o600))
	//
	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{MaxPasses: 50, Workers: 3}, config)
	assert.Equal(t, engine.Config{MaxPasses: 50, Workers: 3}, config.Engine())
}

func Test_Config_Partial(t *testing.T) {
	config := Default()
	require.NoError(t, Parse([]byte("workers: 2"), &config))
	assert.Equal(t, Config{MaxPasses: engine.DefaultMaxPasses, Workers: 2}, config)
	// Empty documents change nothing
	require.NoError(t, Parse(nil, &config))
	assert.Equal(t, uint(2), config.Workers)
}

func Test_Config_Invalid(t *testing.T) {
	config := Default()
	assert.ErrorIs(t, Parse([]byte("passes: 2"), &config), ErrInvalid)
	assert.ErrorIs(t, Parse([]byte("- 1\n- 2"), &config), ErrInvalid)
	assert.Error(t, Parse([]byte("workers: lots"), &config))
	//
	path := filepath.Join(t.TempDir(), "easly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_passes: 0\n"), 0o600))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func Test_Config_Env(t *testing.T) {
	t.Setenv("EASLY_MAX_PASSES", "7")
	t.Setenv("EASLY_WORKERS", "5")
	//
	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{MaxPasses: 7, Workers: 5}, config)
	//
	t.Setenv("EASLY_WORKERS", "-1")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}
