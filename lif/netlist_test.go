// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif_test

import (
	"testing"

	"lifsim/lif"
	"lifsim/simtest"
)

// The netlist must be cycle-for-cycle equivalent to the behavioral core
// under random stimulus, including reset pulses and enable gaps.
func TestNeuronChip_matches_behavioral(t *testing.T) {
	td := []struct {
		name string
		p    lif.Params
	}{
		{"default", lif.DefaultParams()},
		{"fast", lif.Params{Leak: 3, Threshold: 60, Baseline: 5, Refractory: 1}},
		{"no_leak", lif.Params{Leak: 0, Threshold: 128, Baseline: 0, Refractory: 4}},
		{"max_threshold", lif.Params{Leak: 1, Threshold: 255, Baseline: 0, Refractory: 1}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			chip, err := lif.NeuronChip(d.p)
			if err != nil {
				t.Fatal(err)
			}
			simtest.CompareSequential(t, testSPC, 2000, lif.Neuron(d.p), chip)
		})
	}
}

func TestNeuronChip_rejects_invalid_params(t *testing.T) {
	if _, err := lif.NeuronChip(lif.Params{}); err == nil {
		t.Fatal("NeuronChip(zero params) = nil error")
	}
}
