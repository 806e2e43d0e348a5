// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench drives a neuron device under test through the standard
// bring-up protocol and a set of acceptance scenarios.
//
// The bench does not assume a fixed pinout: it resolves the device's pins
// against known alias sets (Tiny Tapeout bank names as well as bare core
// names), so the same scenarios run unchanged against a behavioral part, a
// netlist or a wrapped chip.
package bench

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	hw "lifsim"
)

// pin alias sets tried during discovery, in preference order
var (
	currentAliases  = []string{"ui_in", "ui", "in"}
	membraneAliases = []string{"uo_out", "uo", "m"}
	bankAliases     = []string{"uio_out", "uio"}
	resetAliases    = []string{"rst_n", "reset_n", "rst"}
	enableAliases   = []string{"ena", "enable", "en"}
)

// Pinout is the resolved interface of a device under test.
type Pinout struct {
	Current  string // input current bus
	Reset    string // active low reset pin
	Enable   string // enable pin, empty when the device has none
	Membrane string // membrane potential bus
	Spike    string // bus or pin carrying the spike
	SpikeBit int    // bit of Spike carrying the spike, -1 for a single pin
	OE       string // direction mask bus, empty when the device has none

	CurrentBits  int
	MembraneBits int
	SpikeBits    int
}

// groups folds expanded pin names into base name -> bus size;
// plain pins get size 0.
func groups(pins []string) map[string]int {
	g := make(map[string]int)
	for _, n := range pins {
		if i := strings.IndexRune(n, '['); i >= 0 {
			idx, err := strconv.Atoi(n[i+1 : strings.IndexRune(n, ']')])
			if err != nil {
				continue
			}
			base := n[:i]
			if g[base] < idx+1 {
				g[base] = idx + 1
			}
		} else if _, ok := g[n]; !ok {
			g[n] = 0
		}
	}
	return g
}

func findBus(g map[string]int, aliases []string) (string, int) {
	for _, a := range aliases {
		if sz, ok := g[a]; ok && sz > 0 {
			return a, sz
		}
	}
	return "", 0
}

func findPin(g map[string]int, aliases []string) string {
	for _, a := range aliases {
		if sz, ok := g[a]; ok && sz == 0 {
			return a
		}
	}
	return ""
}

// Discover resolves the bench pin roles against the device's interface.
func Discover(spec *hw.PartSpec) (Pinout, error) {
	in, out := groups(spec.Inputs), groups(spec.Outputs)
	p := Pinout{SpikeBit: -1}

	p.Current, p.CurrentBits = findBus(in, currentAliases)
	if p.Current == "" {
		return p, errors.Errorf("bench: %s: no input current bus (tried %s)",
			spec.Name, strings.Join(currentAliases, ", "))
	}
	p.Reset = findPin(in, resetAliases)
	if p.Reset == "" {
		return p, errors.Errorf("bench: %s: no reset pin (tried %s)",
			spec.Name, strings.Join(resetAliases, ", "))
	}
	p.Enable = findPin(in, enableAliases)

	p.Membrane, p.MembraneBits = findBus(out, membraneAliases)
	if p.Membrane == "" {
		return p, errors.Errorf("bench: %s: no membrane bus (tried %s)",
			spec.Name, strings.Join(membraneAliases, ", "))
	}

	// the spike rides on the top bit of a wide bidirectional bank, on the
	// low bit of a narrow one, or on a dedicated pin
	if name, sz := findBus(out, bankAliases); name != "" {
		p.Spike, p.SpikeBits = name, sz
		if sz >= 8 {
			p.SpikeBit = 7
		} else {
			p.SpikeBit = 0
		}
	} else if pin := findPin(out, []string{"spike"}); pin != "" {
		p.Spike, p.SpikeBits = pin, 1
	} else {
		return p, errors.Errorf("bench: %s: no spike output", spec.Name)
	}

	if name, _ := findBus(out, []string{"uio_oe"}); name != "" {
		p.OE = name
	}
	return p, nil
}

// Sample is one cycle's worth of observed outputs. Membrane and Spike are
// kept as raw integers so that range checks stay meaningful.
type Sample struct {
	Cycle    int
	Membrane int64
	Spike    int64
}

// Bench owns a circuit with a single device under test and drives it cycle
// by cycle.
type Bench struct {
	pin   Pinout
	c     *hw.Circuit
	cycle int

	current uint8
	rstN    bool
	ena     bool

	outs map[string]int64
}

// New builds a bench around the given device. Pin roles are discovered from
// the part's interface; inputs the bench does not know about are left
// unconnected and read as low.
func New(part hw.NewPartFn, spc uint) (*Bench, error) {
	dut := part("")
	pin, err := Discover(dut.PartSpec)
	if err != nil {
		return nil, err
	}

	b := &Bench{pin: pin, outs: make(map[string]int64)}

	var conns strings.Builder
	bind := func(name string, sz int) {
		if conns.Len() > 0 {
			conns.WriteString(", ")
		}
		if sz > 0 {
			r := "[0.." + strconv.Itoa(sz-1) + "]"
			conns.WriteString(name + r + "=" + name + r)
		} else {
			conns.WriteString(name + "=" + name)
		}
	}

	parts := hw.Parts{
		hw.InputN(pin.CurrentBits, func() int64 { return int64(b.current) })(
			busConn("out", pin.Current, pin.CurrentBits)),
		hw.Input(func() bool { return b.rstN })("out=" + pin.Reset),
	}
	bind(pin.Current, pin.CurrentBits)
	bind(pin.Reset, 0)
	if pin.Enable != "" {
		parts = append(parts, hw.Input(func() bool { return b.ena })("out="+pin.Enable))
		bind(pin.Enable, 0)
	}

	// probe every output group so nothing is left dangling
	for name, sz := range groups(dut.PartSpec.Outputs) {
		name, sz := name, sz
		bind(name, sz)
		if sz > 0 {
			parts = append(parts, hw.OutputN(sz, func(v int64) { b.outs[name] = v })(
				busConn("in", name, sz)))
		} else {
			parts = append(parts, hw.Output(func(v bool) {
				b.outs[name] = 0
				if v {
					b.outs[name] = 1
				}
			})("in="+name))
		}
	}

	parts = append(parts, part(conns.String()))

	c, err := hw.NewCircuit(spc, parts)
	if err != nil {
		return nil, errors.Wrap(err, "bench: building circuit")
	}
	b.c = c
	return b, nil
}

// busConn builds a connection string like "out[0..7]=name[0..7]".
func busConn(pp, name string, sz int) string {
	r := "[0.." + strconv.Itoa(sz-1) + "]"
	return pp + r + "=" + name + r
}

// Pinout returns the resolved pin roles.
func (b *Bench) Pinout() Pinout { return b.pin }

// Cycles returns the number of clock cycles run so far.
func (b *Bench) Cycles() int { return b.cycle }

func (b *Bench) run(cycles int) {
	for i := 0; i < cycles; i++ {
		b.c.TickTock()
		b.cycle++
	}
}

// Init runs the standard bring-up sequence: zero input, enable high, reset
// held low for five cycles, then released with two cycles to settle.
func (b *Bench) Init() {
	b.current, b.rstN, b.ena = 0, false, true
	b.run(5)
	b.rstN = true
	b.run(2)
}

// Drive sets the input current and runs the given number of cycles.
func (b *Bench) Drive(current uint8, cycles int) {
	b.current = current
	b.run(cycles)
}

// SetEnable sets the enable input for subsequent cycles. A no-op when the
// device has no enable pin.
func (b *Bench) SetEnable(v bool) { b.ena = v }

// SetReset sets the active low reset input for subsequent cycles.
func (b *Bench) SetReset(rstN bool) { b.rstN = rstN }

// Collect runs n cycles and returns one sample per cycle.
func (b *Bench) Collect(n int) []Sample {
	ss := make([]Sample, n)
	for i := range ss {
		b.c.TickTock()
		b.cycle++
		ss[i] = b.sample()
	}
	return ss
}

func (b *Bench) sample() Sample {
	s := Sample{Cycle: b.cycle, Membrane: b.outs[b.pin.Membrane]}
	v := b.outs[b.pin.Spike]
	if b.pin.SpikeBit >= 0 {
		v = (v >> uint(b.pin.SpikeBit)) & 1
	}
	s.Spike = v
	return s
}

// Membrane returns the membrane potential observed on the last cycle.
func (b *Bench) Membrane() int64 { return b.outs[b.pin.Membrane] }

// Spike returns the spike bit observed on the last cycle.
func (b *Bench) Spike() int64 { return b.sample().Spike }

// OutputEnable returns the direction mask bank value, if the device has one.
func (b *Bench) OutputEnable() (int64, bool) {
	if b.pin.OE == "" {
		return 0, false
	}
	return b.outs[b.pin.OE], true
}
