// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

import (
	"github.com/pkg/errors"
)

// Params holds the numeric constants of the neuron core. All values are
// unsigned 8 bit quantities, matching the width of the datapath.
type Params struct {
	// Leak is subtracted from the membrane potential every enabled clock
	// cycle (saturating at zero).
	Leak uint8 `yaml:"leak"`
	// Threshold is the firing threshold. A candidate membrane value at or
	// above it triggers a spike.
	Threshold uint8 `yaml:"threshold"`
	// Baseline is the membrane potential after reset and after a spike.
	Baseline uint8 `yaml:"baseline"`
	// Refractory is the number of cycles after a spike during which the
	// membrane is held at Baseline and firing is suppressed.
	Refractory uint8 `yaml:"refractory"`
}

// DefaultParams returns the parameter set of the reference core.
func DefaultParams() Params {
	return Params{
		Leak:       1,
		Threshold:  200,
		Baseline:   10,
		Refractory: 2,
	}
}

// Validate checks that the parameters describe a well-formed core.
func (p Params) Validate() error {
	if p.Threshold == 0 {
		return errors.New("lif: threshold must be positive")
	}
	if p.Baseline >= p.Threshold {
		return errors.Errorf("lif: baseline %d must be below threshold %d", p.Baseline, p.Threshold)
	}
	if p.Refractory == 0 {
		// with no refractory interval a saturating input re-fires the core
		// every cycle and the spike output locks high
		return errors.New("lif: refractory must be at least 1 cycle")
	}
	return nil
}
