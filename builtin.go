// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

import "strconv"

// common pin names
const (
	pinA    = "a"
	pinB    = "b"
	pinIn   = "in"
	pinOut  = "out"
	pinSel  = "sel"
	pinLoad = "load"
)

// Int64 returns the bus pins as an int64. Pin 0 is the lsb.
func Int64(c *Circuit, pins []int) int64 {
	var out int64
	for bit := range pins {
		if c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SetInt64 sets the bus pins to the given int64 value.
func SetInt64(c *Circuit, pins []int, v int64) {
	for bit := range pins {
		c.Set(pins[bit], v&(1<<uint(bit)) != 0)
	}
}

// Input creates a function based single bit input.
//
//	Outputs: out
//	Function: out = f()
func Input(f func() bool) NewPartFn {
	p := &PartSpec{
		Name:    "Input",
		Outputs: []string{pinOut},
		Mount: func(s *Socket) []Component {
			pin := s.Pin(pinOut)
			return []Component{
				func(c *Circuit) { c.Set(pin, f()) },
			}
		}}
	return p.NewPart
}

// Output creates a single bit output or probe. The fn function is called
// with the pin state on every simulation step.
//
//	Inputs: in
//	Function: f(in)
func Output(f func(bool)) NewPartFn {
	p := &PartSpec{
		Name:   "Output",
		Inputs: []string{pinIn},
		Mount: func(s *Socket) []Component {
			pin := s.Pin(pinIn)
			return []Component{
				func(c *Circuit) { f(c.Get(pin)) },
			}
		}}
	return p.NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
func InputN(bits int, f func() int64) NewPartFn {
	return (&PartSpec{
		Name:    "Input" + strconv.Itoa(bits),
		Outputs: IO("out[" + strconv.Itoa(bits) + "]"),
		Mount: func(s *Socket) []Component {
			pins := s.Bus(pinOut, bits)
			return []Component{
				func(c *Circuit) { SetInt64(c, pins, f()) },
			}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
func OutputN(bits int, f func(int64)) NewPartFn {
	return (&PartSpec{
		Name:   "Output" + strconv.Itoa(bits),
		Inputs: IO("in[" + strconv.Itoa(bits) + "]"),
		Mount: func(s *Socket) []Component {
			pins := s.Bus(pinIn, bits)
			return []Component{
				func(c *Circuit) { f(Int64(c, pins)) },
			}
		}}).NewPart
}

var notSpec = &PartSpec{
	Name:    "NOT",
	Inputs:  []string{pinIn},
	Outputs: []string{pinOut},
	Mount: func(s *Socket) []Component {
		in, out := s.Pin(pinIn), s.Pin(pinOut)
		return []Component{
			func(c *Circuit) { c.Set(out, !c.Get(in)) },
		}
	}}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
func Not(w string) Part { return notSpec.NewPart(w) }

func newGate(name string, fn func(a, b bool) bool) *PartSpec {
	return &PartSpec{
		Name:    name,
		Inputs:  []string{pinA, pinB},
		Outputs: []string{pinOut},
		Mount: func(s *Socket) []Component {
			a, b, out := s.Pin(pinA), s.Pin(pinB), s.Pin(pinOut)
			return []Component{
				func(c *Circuit) { c.Set(out, fn(c.Get(a), c.Get(b))) },
			}
		}}
}

var (
	andSpec  = newGate("AND", func(a, b bool) bool { return a && b })
	orSpec   = newGate("OR", func(a, b bool) bool { return a || b })
	nandSpec = newGate("NAND", func(a, b bool) bool { return !(a && b) })
	xorSpec  = newGate("XOR", func(a, b bool) bool { return a != b })
)

// And returns an AND gate.
//
//	Inputs: a, b
//	Outputs: out
func And(w string) Part { return andSpec.NewPart(w) }

// Or returns an OR gate.
//
//	Inputs: a, b
//	Outputs: out
func Or(w string) Part { return orSpec.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
func Nand(w string) Part { return nandSpec.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
func Xor(w string) Part { return xorSpec.NewPart(w) }

var muxSpec = &PartSpec{
	Name:    "MUX",
	Inputs:  []string{pinA, pinB, pinSel},
	Outputs: []string{pinOut},
	Mount: func(s *Socket) []Component {
		a, b, sel, out := s.Pin(pinA), s.Pin(pinB), s.Pin(pinSel), s.Pin(pinOut)
		return []Component{
			func(c *Circuit) {
				if c.Get(sel) {
					c.Set(out, c.Get(b))
				} else {
					c.Set(out, c.Get(a))
				}
			}}
	}}

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
func Mux(w string) Part { return muxSpec.NewPart(w) }

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle
func DFF(w string) Part {
	return (&PartSpec{
		Name:    "DFF",
		Inputs:  []string{pinIn},
		Outputs: []string{pinOut},
		Mount: func(s *Socket) []Component {
			in, out := s.Pin(pinIn), s.Pin(pinOut)
			var cur bool
			return []Component{
				func(c *Circuit) {
					// rising edge?
					if c.AtTick() {
						cur = c.Get(in)
					}
					c.Set(out, cur)
				}}
		}}).NewPart(w)
}
