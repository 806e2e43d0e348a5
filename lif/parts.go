// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

import (
	"strconv"

	hw "lifsim"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pOut  = "out"
	pSel  = "sel"
	pLoad = "load"
	pRstN = "rst_n"
)

// bus expands the given pin names to buses of the given width:
// bus(2, "a", "b") is []string{"a[0]", "a[1]", "b[0]", "b[1]"}.
func bus(bits int, names ...string) []string {
	out := make([]string, 0, bits*len(names))
	for _, n := range names {
		for i := 0; i < bits; i++ {
			out = append(out, hw.BusPinName(n, i))
		}
	}
	return out
}

// SatAddN returns a bits-wide unsigned saturating adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = min(a+b, 2^bits-1)
func SatAddN(bits int) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "SatAdd" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Bus(pOut, bits)
			sum := make([]bool, bits)
			return []hw.Component{func(c *hw.Circuit) {
				carry := false
				for i := range out {
					va, vb := c.Get(a[i]), c.Get(b[i])
					h := va != vb
					sum[i] = h != carry
					carry = va && vb || h && carry
				}
				for i, o := range out {
					// a carry out of the top bit saturates the result
					c.Set(o, sum[i] || carry)
				}
			}}
		},
	}
	return p.NewPart
}

// SatSubN returns a bits-wide unsigned saturating subtractor.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: out = max(a-b, 0)
func SatSubN(bits int) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "SatSub" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Bus(pOut, bits)
			diff := make([]bool, bits)
			return []hw.Component{func(c *hw.Circuit) {
				borrow := false
				for i := range out {
					va, vb := c.Get(a[i]), c.Get(b[i])
					h := va != vb
					diff[i] = h != borrow
					borrow = !va && vb || !h && borrow
				}
				for i, o := range out {
					// a borrow out of the top bit clamps the result to zero
					c.Set(o, diff[i] && !borrow)
				}
			}}
		},
	}
	return p.NewPart
}

// CmpGeN returns a bits-wide unsigned comparator.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out
//	Function: out = (a >= b)
func CmpGeN(bits int) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "CmpGe" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: hw.IO(pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pOut)
			return []hw.Component{func(c *hw.Circuit) {
				// a >= b iff a-b generates no borrow
				borrow := false
				for i := 0; i < bits; i++ {
					va, vb := c.Get(a[i]), c.Get(b[i])
					borrow = !va && vb || va == vb && borrow
				}
				c.Set(out, !borrow)
			}}
		},
	}
	return p.NewPart
}

// MuxN returns a bits-wide 2-way multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: out = sel ? b : a
func MuxN(bits int) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Mux" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Bus(pOut, bits)
			sel := s.Pin(pSel)
			return []hw.Component{func(c *hw.Circuit) {
				src := a
				if c.Get(sel) {
					src = b
				}
				for i, o := range out {
					c.Set(o, c.Get(src[i]))
				}
			}}
		},
	}
	return p.NewPart
}

// ConstN returns a bits-wide constant driver.
//
//	Outputs: out[bits]
//	Function: out = v
func ConstN(bits int, v int64) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Const" + strconv.Itoa(bits),
		Inputs:  nil,
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			out := s.Bus(pOut, bits)
			return []hw.Component{func(c *hw.Circuit) {
				hw.SetInt64(c, out, v)
			}}
		},
	}
	return p.NewPart
}

// RegN returns a bits-wide register with synchronous load and active-low
// synchronous clear to the given reset value.
//
//	Inputs: in[bits], load, rst_n
//	Outputs: out[bits]
//	Function: at clock tick, out = reset if !rst_n, in if load, else out
func RegN(bits int, reset int64) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Reg" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pIn), pLoad, pRstN),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			load, rstN := s.Pin(pLoad), s.Pin(pRstN)
			cur := reset
			return []hw.Component{func(c *hw.Circuit) {
				if c.AtTick() {
					switch {
					case !c.Get(rstN):
						cur = reset
					case c.Get(load):
						cur = hw.Int64(c, in)
					}
				}
				hw.SetInt64(c, out, cur)
			}}
		},
	}
	return p.NewPart
}

// Refractory returns the clocked countdown that suppresses firing for
// reload cycles after a spike. fire reloads the counter, busy is asserted
// while the countdown runs. A low rst_n clears the counter, a low ena
// freezes it.
//
//	Inputs: fire, rst_n, ena
//	Outputs: busy
func Refractory(reload uint8) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Refractory",
		Inputs:  hw.IO("fire, rst_n, ena"),
		Outputs: hw.IO("busy"),
		Mount: func(s *hw.Socket) []hw.Component {
			fire, rstN, ena := s.Pin("fire"), s.Pin(pRstN), s.Pin("ena")
			busy := s.Pin("busy")
			var cnt uint8
			return []hw.Component{func(c *hw.Circuit) {
				if c.AtTick() {
					switch {
					case !c.Get(rstN):
						cnt = 0
					case c.Get(ena):
						if c.Get(fire) {
							cnt = reload
						} else if cnt > 0 {
							cnt--
						}
					}
				}
				c.Set(busy, cnt > 0)
			}}
		},
	}
	return p.NewPart
}
