// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	hw "lifsim"
	"lifsim/lif"
)

// Config selects the device rendition, the simulation resolution and the
// neuron parameters.
type Config struct {
	Device        string     `yaml:"device"`
	StepsPerCycle uint       `yaml:"steps_per_cycle"`
	Params        lif.Params `yaml:"params"`
}

func defaultConfig() Config {
	return Config{
		Device:        "behavioral",
		StepsPerCycle: 16,
		Params:        lif.DefaultParams(),
	}
}

// loadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config")
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	if err := cfg.Params.Validate(); err != nil {
		return cfg, err
	}
	if _, err := cfg.part(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// part builds the device under test named by the config.
func (c Config) part() (hw.NewPartFn, error) {
	switch c.Device {
	case "behavioral":
		return lif.Neuron(c.Params), nil
	case "netlist":
		return lif.NeuronChip(c.Params)
	case "tinytapeout":
		return lif.TTNeuron(c.Params)
	}
	return nil, errors.Errorf("unknown device %q (behavioral, netlist or tinytapeout)", c.Device)
}
