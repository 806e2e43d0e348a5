// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

// State tracks the observable lifecycle of the core across reset.
type State uint8

const (
	// HeldReset: the reset line is (or was last seen) asserted.
	HeldReset State = iota
	// Settling: reset released, membrane not yet stable.
	Settling
	// Running: the membrane has settled into steady-state behavior.
	Running
)

func (s State) String() string {
	switch s {
	case HeldReset:
		return "held-reset"
	case Settling:
		return "settling"
	case Running:
		return "running"
	}
	return "unknown"
}

// settleWindow is the number of consecutive membrane samples inspected when
// deciding that the core has settled after reset release.
const settleWindow = 4

// Core is the behavioral neuron: the full per-edge transition function over
// an 8 bit membrane potential, a spike flag and a refractory countdown.
// The zero value is not usable, construct with NewCore.
type Core struct {
	p        Params
	membrane uint8
	spike    bool
	refrac   uint8

	state  State
	window [settleWindow]uint8
	seen   int
}

// NewCore returns a core in its post-reset state.
func NewCore(p Params) (*Core, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Core{p: p}
	c.reset()
	return c, nil
}

func (c *Core) reset() {
	c.membrane = c.p.Baseline
	c.spike = false
	c.refrac = 0
	c.state = HeldReset
	c.seen = 0
}

// Step advances the core by one rising clock edge. Reset takes precedence
// over everything else, including the enable input. With enable low the
// membrane, spike and refractory state all hold their values.
func (c *Core) Step(current uint8, rstN, ena bool) {
	if !rstN {
		c.reset()
		return
	}
	if c.state == HeldReset {
		c.state = Settling
		c.seen = 0
	}
	if !ena {
		return
	}
	if c.refrac > 0 {
		c.refrac--
		c.spike = false
		c.membrane = c.p.Baseline
	} else {
		cand := satSub(satAdd(c.membrane, current), c.p.Leak)
		if cand >= c.p.Threshold {
			c.spike = true
			c.membrane = c.p.Baseline
			c.refrac = c.p.Refractory
		} else {
			c.spike = false
			c.membrane = cand
		}
	}
	c.observe()
}

// observe feeds the settling detector with the membrane value just computed.
func (c *Core) observe() {
	if c.state != Settling {
		return
	}
	c.window[c.seen%settleWindow] = c.membrane
	c.seen++
	if c.seen < settleWindow {
		return
	}
	lo, hi := c.window[0], c.window[0]
	for _, v := range c.window[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo <= 2 {
		c.state = Running
	}
}

// Membrane returns the current membrane potential.
func (c *Core) Membrane() uint8 { return c.membrane }

// Spike reports whether the spike output is asserted this cycle.
func (c *Core) Spike() bool { return c.spike }

// State returns the reset lifecycle state.
func (c *Core) State() State { return c.state }

// Params returns the core's parameter set.
func (c *Core) Params() Params { return c.p }

// satAdd returns a+b saturating at 255.
func satAdd(a, b uint8) uint8 {
	if s := a + b; s >= a {
		return s
	}
	return 255
}

// satSub returns a-b saturating at 0.
func satSub(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
