// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

import (
	"github.com/pkg/errors"
)

// A Component updates the state of a circuit during one simulation step.
// Components read wire states with Circuit.Get and write them with
// Circuit.Set.
type Component func(c *Circuit)

// Circuit is a runnable simulation of a single clock domain.
//
// The update model is deliberately single threaded: the external contract of
// a synchronous core is that a whole state transition is atomic with respect
// to any observer sampling at clock-edge boundaries, and a deterministic
// serial sweep of all components per step is the simplest model that honors
// it.
type Circuit struct {
	s0    []bool // wire states, current frame
	s1    []bool // wire states, next frame
	cs    []Component
	count int  // wire count
	tpc   uint // steps per clock cycle, power of two
	step  uint
}

// NewCircuit builds a new circuit simulating the given parts.
//
// stepsPerCycle indicates how many simulation steps to run per clock cycle.
// It is rounded up to the next power of two, with a minimum of 4. The value
// must exceed the longest combinational chain between two clocked parts so
// that wires settle before the next rising edge.
func NewCircuit(stepsPerCycle uint, parts Parts) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	if stepsPerCycle < 4 {
		stepsPerCycle = 4
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	stepsPerCycle++

	c := &Circuit{count: cstCount, tpc: stepsPerCycle}
	wrap, err := Chip("CIRCUIT", "", "", parts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build circuit wrapper")
	}
	c.cs = append(wrap("").Mount(newSocket(c)), updateClock)
	c.s0 = make([]bool, c.count)
	c.s1 = make([]bool, c.count)
	// constant pins live in both frames; updateClock maintains clk.
	c.s0[cstClk] = true
	c.s0[cstTrue] = true
	c.s1[cstTrue] = true
	return c, nil
}

func updateClock(c *Circuit) {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("true or false constants have been overwritten")
	}

	step := c.step + 1
	switch {
	case step&(c.tpc-1) == 0:
		c.s1[cstClk] = true
	case step&(c.tpc/2-1) == 0:
		c.s1[cstClk] = false
	default:
		c.s1[cstClk] = c.s0[cstClk]
	}
}

// allocWire allocates a wire and returns its pin number.
func (c *Circuit) allocWire() int {
	n := c.count
	c.count++
	return n
}

// Steps returns the value of the step counter.
func (c *Circuit) Steps() uint {
	return c.step
}

// SPC returns the number of simulation steps per clock cycle.
func (c *Circuit) SPC() uint {
	return c.tpc
}

// AtTick returns true if the current step is at the beginning of a clock
// cycle (rising edge of clk).
func (c *Circuit) AtTick() bool {
	return c.step&(c.tpc-1) == 0
}

// AtTock returns true if the current step is at the beginning of the second
// half of a clock cycle (falling edge of clk).
func (c *Circuit) AtTock() bool {
	return (c.step+c.tpc/2)&(c.tpc-1) == 0
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n.
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Toggle toggles the state of pin n.
func (c *Circuit) Toggle(n int) {
	c.s1[n] = !c.s0[n]
}

// Step advances the simulation by one step.
func (c *Circuit) Step() {
	for _, f := range c.cs {
		f(c)
	}
	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the beginning of the next half clock cycle.
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until the beginning of the next clock cycle.
// Once Tock returns, the output of clocked components has stabilized.
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }
