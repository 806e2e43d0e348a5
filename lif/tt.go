// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

import (
	hw "lifsim"
)

// TTNeuron wraps the behavioral neuron in the Tiny Tapeout pin bank: the
// dedicated input bank carries the input current, the dedicated output bank
// exposes the membrane potential and bit 7 of the bidirectional bank carries
// the spike. The bidirectional direction mask is fixed at 0x80 (bit 7
// driven, the rest inputs).
//
//	Inputs: ui_in[8], rst_n, ena
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
func TTNeuron(p Params) (hw.NewPartFn, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return hw.Chip("TTLIF", "ui_in[8], rst_n, ena", "uo_out[8], uio_out[8], uio_oe[8]", hw.Parts{
		Neuron(p)("in[0..7]=ui_in[0..7], rst_n=rst_n, ena=ena, m[0..7]=uo_out[0..7], spike=uio_out[7]"),
		ConstN(7, 0)("out[0..6]=uio_out[0..6]"),
		ConstN(8, 0x80)("out[0..7]=uio_oe[0..7]"),
	})
}
