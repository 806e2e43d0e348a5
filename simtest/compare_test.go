// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest_test

import (
	"testing"

	hw "lifsim"
	"lifsim/simtest"
)

func TestCompareSequential_gate(t *testing.T) {
	// a NOT gate against a NAND with both inputs tied together
	not2, err := hw.Chip("NOT2", "in", "out", hw.Parts{
		hw.Nand("a=in, b=in, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	simtest.CompareSequential(t, 4, 64, hw.Not, not2)
}

func TestCompareSequential_clocked(t *testing.T) {
	// a DFF against a chip-wrapped DFF: same latching behavior
	wrapped, err := hw.Chip("DFFW", "in", "out", hw.Parts{
		hw.DFF("in=in, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	simtest.CompareSequential(t, 4, 128, hw.DFF, wrapped)
}
