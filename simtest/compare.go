// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing parts against each
// other.
package simtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	hw "lifsim"
)

func connString(in, out []string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	return b.String()
}

// pinList folds a list of expanded pin names back into an IO spec string:
// ["a[0]", "a[1]", "en"] becomes "a[2],en".
func pinList(in []string) string {
	bus := make(map[string]int)
	var order []string
	var pins []string

	for _, n := range in {
		if i := strings.IndexRune(n, '['); i >= 0 {
			bn := n[:i]
			idx, err := strconv.Atoi(n[i+1 : strings.IndexRune(n, ']')])
			if err != nil {
				panic(err)
			}
			if prev, ok := bus[bn]; !ok {
				bus[bn] = idx
				order = append(order, bn)
			} else if prev < idx {
				bus[bn] = idx
			}
		} else {
			pins = append(pins, n)
		}
	}

	var b strings.Builder
	for _, k := range order {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(k)
		b.WriteRune('[')
		b.WriteString(strconv.Itoa(bus[k] + 1))
		b.WriteRune(']')
	}
	for _, n := range pins {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
	}
	return b.String()
}

func baseName(pin string) string {
	if i := strings.IndexRune(pin, '['); i >= 0 {
		return pin[:i]
	}
	return pin
}

func isResetPin(pin string) bool {
	switch baseName(pin) {
	case "rst_n", "reset_n", "rst":
		return true
	}
	return false
}

func isEnablePin(pin string) bool {
	switch baseName(pin) {
	case "ena", "enable", "en":
		return true
	}
	return false
}

// CompareSequential takes two clocked parts with identical interfaces,
// mounts both in a single circuit driven by a shared pseudo random stimulus
// and fails if any output ever differs across the given number of clock
// cycles.
//
// The stimulus is seeded deterministically. Reset-like input pins (rst_n,
// reset_n, rst) are held low for the first five cycles and pulsed low
// occasionally afterwards, enable-like pins (ena, enable, en) are high most
// of the time, all other inputs are uniform random.
func CompareSequential(t *testing.T, spc uint, cycles int, part1, part2 hw.NewPartFn) {
	t.Helper()

	ps1, ps2 := part1(""), part2("")

	// compare interfaces
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatalf("input count mismatch: %d != %d", len(ps1.Inputs), len(ps2.Inputs))
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatalf("output count mismatch: %d != %d", len(ps1.Outputs), len(ps2.Outputs))
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("input %d: %q != %q", i, ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("output %d: %q != %q", i, ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	// build two wrappers, each with its own set of probes
	conns := connString(ps1.Inputs, ps1.Outputs)
	parts1 := hw.Parts{part1(conns)}
	for i, o := range ps1.Outputs {
		n := i
		parts1 = append(parts1, hw.Output(func(b bool) { outputs[n][0] = b })("in="+o))
	}
	parts2 := hw.Parts{part2(conns)}
	for i, o := range ps2.Outputs {
		n := i
		parts2 = append(parts2, hw.Output(func(b bool) { outputs[n][1] = b })("in="+o))
	}
	w1, err := hw.Chip("wrapper1", pinList(ps1.Inputs), "", parts1)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := hw.Chip("wrapper2", pinList(ps2.Inputs), "", parts2)
	if err != nil {
		t.Fatal(err)
	}

	var parts hw.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hw.Input(func() bool { return inputs[k] })("out="+n))
	}
	cstr := connString(ps1.Inputs, nil)
	parts = append(parts, w1(cstr), w2(cstr))

	c, err := hw.NewCircuit(spc, parts)
	if err != nil {
		t.Fatal(err)
	}

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(strconv.FormatBool(inputs[i]))
		}
		return "with " + b.String() + ": " + oname + " = " + strconv.FormatBool(got) +
			", first part says " + strconv.FormatBool(ex)
	}

	rng := rand.New(rand.NewSource(1))
	for cycle := 0; cycle < cycles; cycle++ {
		for i, n := range ps1.Inputs {
			switch {
			case isResetPin(n):
				inputs[i] = cycle >= 5 && rng.Intn(50) != 0
			case isEnablePin(n):
				inputs[i] = rng.Intn(10) != 0
			default:
				inputs[i] = rng.Intn(2) == 1
			}
		}
		c.TickTock()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatalf("cycle %d: %s", cycle, errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}
}
