// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifsim/lif"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfig_defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_partial_override(t *testing.T) {
	path := writeConfig(t, `
device: netlist
params:
  leak: 2
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "netlist", cfg.Device)
	assert.Equal(t, uint(16), cfg.StepsPerCycle)

	want := lif.DefaultParams()
	want.Leak = 2
	assert.Equal(t, want, cfg.Params)
}

func TestLoadConfig_rejects_bad_params(t *testing.T) {
	path := writeConfig(t, `
params:
  threshold: 0
`)
	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_rejects_unknown_device(t *testing.T) {
	path := writeConfig(t, "device: verilog\n")
	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_rejects_unknown_keys(t *testing.T) {
	path := writeConfig(t, "divice: netlist\n")
	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestConfig_part(t *testing.T) {
	for _, device := range []string{"behavioral", "netlist", "tinytapeout"} {
		cfg := defaultConfig()
		cfg.Device = device
		part, err := cfg.part()
		require.NoError(t, err, device)
		require.NotNil(t, part, device)
	}
}
