// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lif implements a digital leaky integrate-and-fire neuron core.
//
// The core is a cycle-accurate 8 bit state machine: every rising clock edge
// it adds the input current to the membrane potential, subtracts a constant
// leak (both with saturating arithmetic), and fires a one-cycle spike pulse
// when the candidate value crosses the firing threshold, resetting the
// membrane to its baseline and holding it there for a short refractory
// interval.
//
// The same transition function is available in two forms: Neuron, a
// behavioral part backed by the Core state machine, and NeuronChip, a
// netlist of datapath parts (saturating adder/subtractor, comparator,
// registers) composed with the simulation engine. Both are cycle-for-cycle
// equivalent. TTNeuron wraps the core in a Tiny Tapeout shaped pin bank.
package lif
