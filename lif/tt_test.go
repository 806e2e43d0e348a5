// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif_test

import (
	"math/rand"
	"testing"

	hw "lifsim"
	"lifsim/lif"
)

// Mounts the Tiny Tapeout wrapper next to a bare behavioral neuron on the
// same input wires and checks the pin bank mapping every cycle.
func TestTTNeuron_bank_mapping(t *testing.T) {
	p := lif.DefaultParams()
	tt, err := lif.TTNeuron(p)
	if err != nil {
		t.Fatal(err)
	}

	var current int64
	var rstN, ena bool
	var uoOut, uioOut, uioOE int64
	var m int64
	var spike bool

	c, err := hw.NewCircuit(testSPC, hw.Parts{
		hw.InputN(8, func() int64 { return current })("out[0..7]=cur[0..7]"),
		hw.Input(func() bool { return rstN })("out=rst_n"),
		hw.Input(func() bool { return ena })("out=ena"),
		tt("ui_in[0..7]=cur[0..7], rst_n=rst_n, ena=ena, uo_out[0..7]=uo[0..7], uio_out[0..7]=uio[0..7], uio_oe[0..7]=oe[0..7]"),
		lif.Neuron(p)("in[0..7]=cur[0..7], rst_n=rst_n, ena=ena, m[0..7]=m[0..7], spike=spike"),
		hw.OutputN(8, func(v int64) { uoOut = v })("in[0..7]=uo[0..7]"),
		hw.OutputN(8, func(v int64) { uioOut = v })("in[0..7]=uio[0..7]"),
		hw.OutputN(8, func(v int64) { uioOE = v })("in[0..7]=oe[0..7]"),
		hw.OutputN(8, func(v int64) { m = v })("in[0..7]=m[0..7]"),
		hw.Output(func(v bool) { spike = v })("in=spike"),
	})
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(7))
	ena = true
	for cycle := 0; cycle < 500; cycle++ {
		rstN = cycle >= 5 && rng.Intn(40) != 0
		current = int64(rng.Intn(256))
		c.TickTock()

		if uioOE != 0x80 {
			t.Fatalf("cycle %d: uio_oe = %#x, expected 0x80", cycle, uioOE)
		}
		if uoOut != m {
			t.Fatalf("cycle %d: uo_out = %d, membrane = %d", cycle, uoOut, m)
		}
		wantUIO := int64(0)
		if spike {
			wantUIO = 0x80
		}
		if uioOut != wantUIO {
			t.Fatalf("cycle %d: uio_out = %#x, expected %#x", cycle, uioOut, wantUIO)
		}
	}
}
