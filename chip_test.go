package lifsim_test

import (
	"strings"
	"testing"

	hw "lifsim"
)

func TestChip_errors(t *testing.T) {
	data := []struct {
		name  string
		in    string
		out   string
		parts hw.Parts
		err   string
	}{
		{"true_out", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=b, out=true"),
			hw.Nand("a=a, b=b, out=out"),
		}, `connected to constant "true"`},
		{"clk_out", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=b, out=clk"),
			hw.Nand("a=a, b=b, out=out"),
		}, `connected to constant "clk"`},
		{"input_out", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=b, out=a"),
			hw.Nand("a=a, b=b, out=out"),
		}, "connected to chip input pin a"},
		{"double_drive", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=b, out=x"),
			hw.Nand("a=a, b=b, out=x"),
			hw.Not("in=x, out=out"),
		}, "wire already driven by another output"},
		{"no_output", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=wx, out=out"),
		}, "pin wx not connected to any output"},
		{"no_input", "a, b", "out", hw.Parts{
			hw.Nand("a=a, b=b, out=foo"),
			hw.Nand("a=a, b=b, out=out"),
		}, "pin NAND.out not connected to any input"},
		{"unknown_pin", "a, b", "out", hw.Parts{
			hw.Nand("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part NAND"},
		{"fanin", "a, b", "out", hw.Parts{
			hw.Not("in=a, in=b, out=out"),
		}, "input pin NOT.in connected to more than one output"},
		{"unused_chip_input", "a, b", "out", hw.Parts{
			hw.Nand("a=b, b=b, out=out"),
		}, ""},
		{"undriven_chip_output", "a", "out, nc", hw.Parts{
			hw.Not("in=a, out=out"),
		}, ""},
		{"ground_out", "a", "out", hw.Parts{
			hw.Not("in=a, out=false"),
			hw.Not("in=a, out=out"),
		}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Chip(d.name, d.in, d.out, d.parts)
			switch {
			case d.err == "" && err != nil:
				t.Errorf("unexpected error %q", err)
			case d.err != "" && err == nil:
				t.Errorf("expected error %q, got none", d.err)
			case err != nil && !strings.Contains(err.Error(), d.err):
				t.Errorf("got error %q, expected it to contain %q", err, d.err)
			}
		})
	}
}

func TestChip_omitted_pins(t *testing.T) {
	var a, b, tr, f, ck, o0, o1 int
	dummy := (&hw.PartSpec{
		Name:    "dummy",
		Inputs:  hw.IO("a, b, t, f, c"),
		Outputs: hw.IO("o0, o1"),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, tr, f, ck = s.Pin("a"), s.Pin("b"), s.Pin("t"), s.Pin("f"), s.Pin("c")
			o0, o1 = s.Pin("o0"), s.Pin("o1")
			return nil
		}}).NewPart

	wrapper, err := hw.Chip("wrapper", "wa", "wo0", hw.Parts{
		dummy("a=wa, t=true, f=false, c=clk, o0=wo0"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = hw.NewCircuit(4, hw.Parts{
		hw.Input(func() bool { return true })("out=i"),
		wrapper("wa=i, wo0=probe"),
		hw.Output(func(bool) {})("in=probe"),
	}); err != nil {
		t.Fatal(err)
	}

	// omitted inputs are grounded, constants resolve to the shared pins,
	// and the unconnected output o1 gets a wire of its own.
	if b != f {
		t.Errorf("b = %d, f = %d, both must be the false pin", b, f)
	}
	if tr == f || ck == f || tr == ck {
		t.Errorf("t = %d, c = %d, f = %d must be distinct constant pins", tr, ck, f)
	}
	if a == b || o0 == b || o1 == b || o0 == o1 {
		t.Errorf("a = %d, o0 = %d, o1 = %d must be distinct allocated wires", a, o0, o1)
	}
}

func TestPart_output_fanout(t *testing.T) {
	var out int64
	c, err := hw.NewCircuit(testSPC, hw.Parts{
		hw.Or("a=true, b=false, out=o[0..3]"),
		hw.OutputN(4, func(v int64) { out = v })("in[0..3]=o[0..3]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	c.TickTock()
	if out != 15 {
		t.Fatalf("out = %d, expected 15", out)
	}
}
