// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

import (
	hw "lifsim"
)

// NeuronChip returns the neuron as a netlist of datapath parts. It has the
// same interface and the same cycle-for-cycle behavior as Neuron.
//
//	Inputs: in[8], rst_n, ena
//	Outputs: m[8], spike
//
// Datapath, all registered at the clock tick:
//
//	cand = satsub(satadd(m, in), leak)
//	fire = (cand >= threshold) && !busy
//	m'   = baseline if fire or busy, else cand
func NeuronChip(p Params) (hw.NewPartFn, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return hw.Chip("LIFNET", "in[8], rst_n, ena", "m[8], spike", hw.Parts{
		// membrane register, cleared to baseline while reset is held
		RegN(8, int64(p.Baseline))("in[0..7]=mnext[0..7], load=ena, rst_n=rst_n, out[0..7]=m[0..7]"),

		// integrate then leak
		SatAddN(8)("a[0..7]=m[0..7], b[0..7]=in[0..7], out[0..7]=sum[0..7]"),
		ConstN(8, int64(p.Leak))("out[0..7]=leak[0..7]"),
		SatSubN(8)("a[0..7]=sum[0..7], b[0..7]=leak[0..7], out[0..7]=cand[0..7]"),

		// threshold crossing, gated by the refractory hold
		ConstN(8, int64(p.Threshold))("out[0..7]=thr[0..7]"),
		CmpGeN(8)("a[0..7]=cand[0..7], b[0..7]=thr[0..7], out=hit"),
		Refractory(p.Refractory)("fire=fire, rst_n=rst_n, ena=ena, busy=busy"),
		hw.Not("in=busy, out=ready"),
		hw.And("a=hit, b=ready, out=fire"),

		// next membrane: back to baseline on a fire and during the hold
		hw.Or("a=busy, b=fire, out=tobase"),
		ConstN(8, int64(p.Baseline))("out[0..7]=base[0..7]"),
		MuxN(8)("a[0..7]=cand[0..7], b[0..7]=base[0..7], sel=tobase, out[0..7]=mnext[0..7]"),

		// registered one-cycle spike pulse, held with ena low, killed by reset
		hw.Mux("a=spike, b=fire, sel=ena, out=spk"),
		hw.And("a=spk, b=rst_n, out=spknext"),
		hw.DFF("in=spknext, out=spike"),
	})
}
