// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// a pin is identified by the part it belongs to (index in the chip's part
// list) and its name in that part's interface.
type pinref struct {
	p    int
	name string
}

type chip struct {
	PartSpec
	parts []*PartSpec
	// pins maps every sub-part pin to the wire name carrying it in the
	// chip's namespace. Wire names are chip i/o pin names, constants, or
	// internal names (__0, __1, ...). Unconnected inputs are absent and get
	// wired to false at mount time.
	pins map[pinref]string
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for i, p := range c.parts {
		sub := newSocket(s.c)
		// k is the exported pin name, subK the name in the part's namespace.
		for k, subK := range p.Pinout {
			if subK == "" {
				continue
			}
			if n := c.pins[pinref{i, k}]; n != "" {
				sub.m[subK] = s.PinOrNew(n)
			} else {
				// Chip() guarantees unconnected pins can only be inputs.
				sub.m[subK] = cstFalse
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs and
// outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out", Parts{
//		Nand("a=a, b=b, out=nandAB"),
//		Nand("a=a, b=nandAB, out=w0"),
//		Nand("a=b, b=nandAB, out=w1"),
//		Nand("a=w0, b=w1, out=out"),
//	})
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out", Parts{
//		xor("a=a, b=b, out=xorAB"),
//		Not("in=xorAB, out=out"),
//	})
func Chip(name string, inputs string, outputs string, parts Parts) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" input spec")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" output spec")
	}

	wr := newWiring(ins, outs)
	specs := make([]*PartSpec, len(parts))

	for pi, p := range parts {
		specs[pi] = p.PartSpec
		isIn := pinSet(p.Inputs)
		isOut := pinSet(p.Outputs)
		for pp, cps := range p.wires() {
			switch {
			case isIn[pp]:
				if len(cps) != 1 {
					return nil, errors.Errorf("chip %s: input pin %s.%s connected to more than one output", name, p.Name, pp)
				}
				wr.read(pinref{pi, pp}, cps[0])
			case isOut[pp]:
				if err := wr.drive(pinref{pi, pp}, cps); err != nil {
					return nil, errors.Wrapf(err, "chip %s: output pin %s.%s", name, p.Name, pp)
				}
			default:
				return nil, errors.Errorf("chip %s: invalid pin name %s for part %s", name, pp, p.Name)
			}
		}
	}

	pins, pinout, err := wr.check(specs)
	if err != nil {
		return nil, errors.Wrap(err, "chip "+name)
	}
	// unconnected part outputs still need a wire of their own: mapping them
	// to false would let the part overwrite the constant.
	for pi, sp := range specs {
		for _, o := range sp.Outputs {
			pr := pinref{pi, o}
			if pins[pr] == "" {
				pins[pr] = wr.tempName()
			}
		}
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
			Pinout:  pinout,
		},
		specs,
		pins,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

func pinSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func pinName(specs []*PartSpec, p pinref) string {
	return specs[p.p].Name + "." + p.name
}

// wiring tracks the electrical nets of a chip under construction. Wire names
// connected through a common part output pin belong to the same net; every
// net has at most one driver (a part output, a chip input or a constant).
type wiring struct {
	parent  map[string]string   // union-find over wire names
	members map[string][]string // root -> member names, in attach order
	driver  map[string]pinref   // root -> driving part output pin
	readers map[string]int      // root -> part input pins reading the net
	isInput map[string]bool
	isOut   map[string]bool
	pins    map[pinref]string // part pin -> attached wire name
	temps   int
}

func newWiring(ins, outs []string) *wiring {
	wr := &wiring{
		parent:  make(map[string]string),
		members: make(map[string][]string),
		driver:  make(map[string]pinref),
		readers: make(map[string]int),
		isInput: make(map[string]bool),
		isOut:   make(map[string]bool),
		pins:    make(map[pinref]string),
	}
	for _, in := range ins {
		wr.isInput[in] = true
		wr.ensure(in)
	}
	for _, o := range outs {
		wr.isOut[o] = true
		wr.ensure(o)
	}
	return wr
}

func (wr *wiring) ensure(name string) {
	if _, ok := wr.parent[name]; !ok {
		wr.parent[name] = name
		wr.members[name] = []string{name}
	}
}

func (wr *wiring) find(name string) string {
	wr.ensure(name)
	root := name
	for wr.parent[root] != root {
		root = wr.parent[root]
	}
	for wr.parent[name] != root {
		wr.parent[name], name = root, wr.parent[name]
	}
	return root
}

func (wr *wiring) union(a, b string) string {
	ra, rb := wr.find(a), wr.find(b)
	if ra == rb {
		return ra
	}
	wr.parent[rb] = ra
	wr.members[ra] = append(wr.members[ra], wr.members[rb]...)
	delete(wr.members, rb)
	wr.readers[ra] += wr.readers[rb]
	delete(wr.readers, rb)
	if d, ok := wr.driver[rb]; ok {
		wr.driver[ra] = d
		delete(wr.driver, rb)
	}
	return ra
}

func isConstant(name string) bool {
	return name == True || name == False || name == Clk
}

// read attaches part input pin pr to the net of wire cp.
func (wr *wiring) read(pr pinref, cp string) {
	wr.readers[wr.find(cp)]++
	wr.pins[pr] = cp
}

// drive attaches part output pin pr as the driver of the net formed by the
// wires in cps.
func (wr *wiring) drive(pr pinref, cps []string) error {
	var wired []string
	for _, cp := range cps {
		switch cp {
		case False:
			// discard: plugging an output into the ground is a no-op
			continue
		case True, Clk:
			return errors.Errorf("connected to constant %q", cp)
		}
		if wr.isInput[cp] {
			return errors.Errorf("connected to chip input pin %s", cp)
		}
		wired = append(wired, cp)
	}
	if len(wired) == 0 {
		return nil
	}
	root := wr.find(wired[0])
	for _, cp := range wired[1:] {
		root = wr.union(root, cp)
	}
	if _, ok := wr.driver[root]; ok {
		return errors.New("wire already driven by another output")
	}
	wr.driver[root] = pr
	wr.pins[pr] = wired[0]
	return nil
}

// check validates the wiring and resolves every part pin and chip i/o pin to
// the canonical name of its net.
func (wr *wiring) check(specs []*PartSpec) (map[pinref]string, map[string]string, error) {
	canon := make(map[string]string, len(wr.members))
	for root, members := range wr.members {
		var input, output string
		cst := false
		for _, m := range members {
			switch {
			case isConstant(m):
				cst = true
			case wr.isInput[m] && input == "":
				input = m
			case wr.isOut[m] && output == "":
				output = m
			}
		}
		d, driven := wr.driver[root]
		switch {
		case cst || input != "":
			// constants and chip inputs always have a source
		case wr.readers[root] > 0 && !driven:
			return nil, nil, errors.Errorf("pin %s not connected to any output", members[0])
		case driven && wr.readers[root] == 0 && output == "":
			return nil, nil, errors.Errorf("pin %s not connected to any input", pinName(specs, d))
		}
		// nets carrying a constant or a chip input hold a single name, so
		// the first attached name is canonical in every case.
		canon[root] = members[0]
	}

	pins := make(map[pinref]string, len(wr.pins))
	for pr, name := range wr.pins {
		pins[pr] = canon[wr.find(name)]
	}
	pinout := make(map[string]string, len(wr.isInput)+len(wr.isOut))
	for in := range wr.isInput {
		pinout[in] = canon[wr.find(in)]
	}
	for o := range wr.isOut {
		pinout[o] = canon[wr.find(o)]
	}
	return pins, pinout, nil
}

func (wr *wiring) tempName() string {
	n := "__" + strconv.Itoa(wr.temps)
	wr.temps++
	return n
}
