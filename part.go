// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for assigned pin numbers and return closures around these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "Not",
//		Inputs:  IO("in"),
//		Outputs: IO("out"),
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec and using its NewPart
// method as a NewPartFn:
//
//	var notGate = notSpec.NewPart
//
// or:
//
//	func Not(c string) Part { return notSpec.NewPart(c) }
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}.
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string
	// Pinout maps the input and output pin names (public interface) of a
	// part to internal (private) names. If nil, NewPart will set up a one to
	// one mapping. In a MountFn, only private pin names must be used when
	// calling the Socket methods. Most custom part implementations should
	// leave this field nil.
	Pinout map[string]string

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart wraps p together with the given connections into a Part.
// It panics if the connection string is malformed.
func (p *PartSpec) NewPart(connections string) Part {
	ex, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	if p.Pinout == nil {
		p.Pinout = make(map[string]string)
		for _, i := range p.Inputs {
			p.Pinout[i] = i
		}
		for _, o := range p.Outputs {
			p.Pinout[o] = o
		}
	}
	return Part{p, ex}
}

// A NewPartFn is a function that takes a connection configuration string and
// returns a new Part. See ParseConnections for the syntax of the
// configuration string.
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// host chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for a list of parts.
type Parts []Part

// wires returns the chip-side wire names connected to each of the part's
// pins, in a map keyed by part pin name.
func (p *Part) wires() map[string][]string {
	w := make(map[string][]string, len(p.Conns))
	for _, c := range p.Conns {
		w[c.PP] = append(w[c.PP], c.CP...)
	}
	return w
}
