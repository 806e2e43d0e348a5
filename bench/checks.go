// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"github.com/pkg/errors"
)

// Violation sentinels. Scenario failures wrap one of these with cycle
// context where applicable.
var (
	ErrRange       = errors.New("membrane out of 8 bit range")
	ErrSpikeBits   = errors.New("spike not a binary value")
	ErrPulseWidth  = errors.New("spike held high for more than 2 cycles")
	ErrSpurious    = errors.New("spike asserted without sufficient drive")
	ErrNoSpike     = errors.New("no spike under strong drive")
	ErrLeak        = errors.New("membrane failed to leak down")
	ErrIntegration = errors.New("membrane failed to integrate upward")
	ErrUnstable    = errors.New("membrane not stable after reset")
)

// CheckSamples verifies the per-cycle invariants that hold in every
// scenario: membrane within 8 bit range, spike strictly binary.
func CheckSamples(ss []Sample) error {
	for _, s := range ss {
		if s.Membrane < 0 || s.Membrane > 255 {
			return errors.Wrapf(ErrRange, "cycle %d: membrane = %d", s.Cycle, s.Membrane)
		}
		if s.Spike != 0 && s.Spike != 1 {
			return errors.Wrapf(ErrSpikeBits, "cycle %d: spike = %d", s.Cycle, s.Spike)
		}
	}
	return nil
}

// SpikeCount returns the number of cycles with the spike asserted.
func SpikeCount(ss []Sample) int {
	n := 0
	for _, s := range ss {
		if s.Spike != 0 {
			n++
		}
	}
	return n
}

// MaxSpikeRun returns the longest run of consecutive cycles with the spike
// asserted.
func MaxSpikeRun(ss []Sample) int {
	max, run := 0, 0
	for _, s := range ss {
		if s.Spike != 0 {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 0
		}
	}
	return max
}

// FirstSpike returns the index of the first asserted spike, or -1.
func FirstSpike(ss []Sample) int {
	for i, s := range ss {
		if s.Spike != 0 {
			return i
		}
	}
	return -1
}

// TruncateAtSpike cuts the sample slice at the first spike, keeping only
// the sub-threshold prefix.
func TruncateAtSpike(ss []Sample) []Sample {
	if i := FirstSpike(ss); i >= 0 {
		return ss[:i]
	}
	return ss
}

// PeakToPeak returns the membrane peak to peak amplitude over the samples.
func PeakToPeak(ss []Sample) int64 {
	if len(ss) == 0 {
		return 0
	}
	lo, hi := ss[0].Membrane, ss[0].Membrane
	for _, s := range ss[1:] {
		if s.Membrane < lo {
			lo = s.Membrane
		}
		if s.Membrane > hi {
			hi = s.Membrane
		}
	}
	return hi - lo
}

// MaxMembrane returns the highest membrane value over the samples, or def
// when the slice is empty.
func MaxMembrane(ss []Sample, def int64) int64 {
	m := def
	for _, s := range ss {
		if s.Membrane > m {
			m = s.Membrane
		}
	}
	return m
}

// MeanMembrane returns the average membrane value over the samples.
func MeanMembrane(ss []Sample) float64 {
	if len(ss) == 0 {
		return 0
	}
	var sum int64
	for _, s := range ss {
		sum += s.Membrane
	}
	return float64(sum) / float64(len(ss))
}
