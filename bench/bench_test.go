// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package bench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "lifsim"
	"lifsim/bench"
	"lifsim/lif"
)

const testSPC = 16

func TestDiscover(t *testing.T) {
	td := []struct {
		name string
		in   string
		out  string
		want bench.Pinout
		err  bool
	}{
		{
			name: "tiny_tapeout_bank",
			in:   "ui_in[8], rst_n, ena",
			out:  "uo_out[8], uio_out[8], uio_oe[8]",
			want: bench.Pinout{
				Current: "ui_in", Reset: "rst_n", Enable: "ena",
				Membrane: "uo_out", Spike: "uio_out", SpikeBit: 7, OE: "uio_oe",
				CurrentBits: 8, MembraneBits: 8, SpikeBits: 8,
			},
		},
		{
			name: "bare_core",
			in:   "in[8], rst_n, ena",
			out:  "m[8], spike",
			want: bench.Pinout{
				Current: "in", Reset: "rst_n", Enable: "ena",
				Membrane: "m", Spike: "spike", SpikeBit: -1,
				CurrentBits: 8, MembraneBits: 8, SpikeBits: 1,
			},
		},
		{
			name: "alt_names_no_enable",
			in:   "ui[8], reset_n",
			out:  "uo[8], uio[4]",
			want: bench.Pinout{
				Current: "ui", Reset: "reset_n",
				Membrane: "uo", Spike: "uio", SpikeBit: 0,
				CurrentBits: 8, MembraneBits: 8, SpikeBits: 4,
			},
		},
		{name: "no_current", in: "rst_n", out: "m[8], spike", err: true},
		{name: "no_reset", in: "in[8]", out: "m[8], spike", err: true},
		{name: "no_membrane", in: "in[8], rst_n", out: "spike", err: true},
		{name: "no_spike", in: "in[8], rst_n", out: "m[8]", err: true},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			spec := &hw.PartSpec{Name: "DUT", Inputs: hw.IO(d.in), Outputs: hw.IO(d.out)}
			got, err := bench.Discover(spec)
			if d.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.want, got)
		})
	}
}

func TestBench_init(t *testing.T) {
	p := lif.DefaultParams()
	b, err := bench.New(lif.Neuron(p), testSPC)
	require.NoError(t, err)

	b.Init()
	m := b.Membrane()
	assert.GreaterOrEqual(t, m, int64(p.Baseline)-2*int64(p.Leak),
		"membrane after init")
	assert.LessOrEqual(t, m, int64(p.Baseline), "membrane after init")
	assert.Zero(t, b.Spike(), "spike after init")
}

func TestBench_output_enable(t *testing.T) {
	tt, err := lif.TTNeuron(lif.DefaultParams())
	require.NoError(t, err)
	b, err := bench.New(tt, testSPC)
	require.NoError(t, err)

	b.Init()
	oe, ok := b.OutputEnable()
	require.True(t, ok, "tiny tapeout wrapper has a direction mask")
	assert.Equal(t, int64(0x80), oe)

	// bare cores have none
	b2, err := bench.New(lif.Neuron(lif.DefaultParams()), testSPC)
	require.NoError(t, err)
	b2.Init()
	_, ok = b2.OutputEnable()
	assert.False(t, ok)
}

func TestBench_reset_midstream(t *testing.T) {
	p := lif.DefaultParams()
	b, err := bench.New(lif.Neuron(p), testSPC)
	require.NoError(t, err)

	b.Init()
	b.Drive(30, 5)
	assert.Greater(t, b.Membrane(), int64(p.Baseline), "membrane charged")

	b.SetReset(false)
	b.Drive(30, 3)
	assert.Equal(t, int64(p.Baseline), b.Membrane(), "membrane back at baseline in reset")
	assert.Zero(t, b.Spike())
}
