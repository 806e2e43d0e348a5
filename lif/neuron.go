// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lif

import (
	hw "lifsim"
)

type neuron struct {
	In    [8]int `hw:"in"`
	RstN  int    `hw:"in,rst_n"`
	Ena   int    `hw:"in,ena"`
	M     [8]int `hw:"out,m"`
	Spike int    `hw:"out"`

	core *Core
}

func (n *neuron) Update(c *hw.Circuit) {
	if c.AtTick() {
		n.core.Step(uint8(hw.Int64(c, n.In[:])), c.Get(n.RstN), c.Get(n.Ena))
	}
	hw.SetInt64(c, n.M[:], int64(n.core.Membrane()))
	c.Set(n.Spike, n.core.Spike())
}

// Neuron returns the behavioral neuron part, backed by a fresh Core per
// mount.
//
//	Inputs: in[8], rst_n, ena
//	Outputs: m[8], spike
//
// Invalid parameters panic at mount time; validate with p.Validate() first
// when the parameters come from user input.
func Neuron(p Params) hw.NewPartFn {
	spec := hw.MakePart(func() hw.Updater {
		core, err := NewCore(p)
		if err != nil {
			panic(err)
		}
		return &neuron{core: core}
	})
	spec.Name = "LIF"
	return spec.NewPart
}
