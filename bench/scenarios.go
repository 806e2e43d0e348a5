// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Scenario drives a freshly initialized bench and returns an error on the
// first violated property.
type Scenario struct {
	Name string
	Run  func(b *Bench) error
}

// Scenarios returns the acceptance scenarios, in execution order. Each
// scenario expects a bench that has not been driven yet.
func Scenarios() []Scenario {
	return []Scenario{
		{"reset_stability", resetStability},
		{"no_input_no_spike", noInputNoSpike},
		{"integrates_up", integratesUp},
		{"leak_down", leakDown},
		{"spike_causes_drop", spikeCausesDrop},
		{"spike_pulse_width", spikePulseWidth},
		{"repeated_firing", repeatedFiring},
		{"random_stimulus", randomStimulus},
		{"step_response", stepResponse},
	}
}

// RunAll builds a fresh bench per scenario and runs them all, returning an
// error naming every failed scenario. A nil logger disables progress
// reporting.
func RunAll(newBench func() (*Bench, error), log logrus.FieldLogger) error {
	var failed []string
	for _, sc := range Scenarios() {
		b, err := newBench()
		if err != nil {
			return errors.Wrapf(err, "scenario %s", sc.Name)
		}
		b.Init()
		err = sc.Run(b)
		if log != nil {
			l := log.WithField("scenario", sc.Name).WithField("cycles", b.Cycles())
			if err != nil {
				l.WithError(err).Error("scenario failed")
			} else {
				l.Info("scenario passed")
			}
		}
		if err != nil {
			failed = append(failed, sc.Name+": "+err.Error())
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("%d of %d scenarios failed: %v", len(failed), len(Scenarios()), failed)
	}
	return nil
}

// After reset release with zero input the membrane must flatten out and the
// spike must stay low.
func resetStability(b *Bench) error {
	b.Drive(0, 5)
	ss := b.Collect(20)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if n := SpikeCount(ss); n != 0 {
		return errors.Wrapf(ErrSpurious, "%d spikes right after reset", n)
	}
	tail := ss[len(ss)/2:]
	if p := PeakToPeak(tail); p > 2 {
		return errors.Wrapf(ErrUnstable, "peak to peak %d over the last %d cycles", p, len(tail))
	}
	return nil
}

// Zero input must never produce a spike, no matter how long we wait.
func noInputNoSpike(b *Bench) error {
	b.Drive(0, 10)
	ss := b.Collect(200)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if n := SpikeCount(ss); n != 0 {
		return errors.Wrapf(ErrSpurious, "%d spikes with zero input", n)
	}
	return nil
}

// A steady sub-threshold current must charge the membrane upward until the
// first spike.
func integratesUp(b *Bench) error {
	b.Drive(20, 5)
	ss := TruncateAtSpike(b.Collect(60))
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if len(ss) < 4 {
		return errors.Wrap(ErrIntegration, "membrane spiked before any ramp was observable")
	}
	lo, hi := ss[:len(ss)/2], ss[len(ss)/2:]
	if MeanMembrane(hi) <= MeanMembrane(lo) {
		return errors.Wrapf(ErrIntegration, "mean membrane %0.1f -> %0.1f under constant drive",
			MeanMembrane(lo), MeanMembrane(hi))
	}
	return nil
}

// Removing the input current must let the membrane decay back down.
func leakDown(b *Bench) error {
	b.Drive(30, 4)
	b.Drive(0, 1)
	ss := b.Collect(80)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	charged := MaxMembrane(ss[:5], 0)
	tail := ss[len(ss)-10:]
	if n := SpikeCount(ss[3:]); n != 0 {
		return errors.Wrapf(ErrSpurious, "%d spikes while decaying", n)
	}
	if charged > 3 && MeanMembrane(tail) >= float64(charged) {
		return errors.Wrapf(ErrLeak, "mean membrane %0.1f after decay, charged to %d",
			MeanMembrane(tail), charged)
	}
	return nil
}

// A spike must knock the membrane back down from its pre-spike ramp.
func spikeCausesDrop(b *Bench) error {
	b.Drive(30, 2)
	ss := b.Collect(60)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	i := FirstSpike(ss)
	if i < 0 {
		return errors.Wrap(ErrNoSpike, "current 30 for 62 cycles")
	}
	if i < 1 {
		return errors.Wrap(ErrSpurious, "spike on the first observed cycle")
	}
	pre := ss[:i]
	if len(pre) > 3 {
		pre = pre[len(pre)-3:]
	}
	post := ss[i:]
	if len(post) > 3 {
		post = post[:3]
	}
	lo := post[0].Membrane
	for _, s := range post[1:] {
		if s.Membrane < lo {
			lo = s.Membrane
		}
	}
	if lo >= MaxMembrane(pre, 0) {
		return errors.Errorf("membrane %d after spike, %d before", lo, MaxMembrane(pre, 0))
	}
	return nil
}

// The spike output is a pulse: at most 2 consecutive high cycles, even
// under saturating input.
func spikePulseWidth(b *Bench) error {
	b.Drive(255, 2)
	ss := b.Collect(200)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if SpikeCount(ss) == 0 {
		return errors.Wrap(ErrNoSpike, "current 255 for 202 cycles")
	}
	if r := MaxSpikeRun(ss); r > 2 {
		return errors.Wrapf(ErrPulseWidth, "longest run %d cycles", r)
	}
	return nil
}

// Sustained strong drive must produce an ongoing spike train, not a single
// event.
func repeatedFiring(b *Bench) error {
	b.Drive(200, 1)
	ss := b.Collect(400)
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if n := SpikeCount(ss); n < 2 {
		return errors.Wrapf(ErrNoSpike, "%d spikes under sustained drive", n)
	}
	if r := MaxSpikeRun(ss); r > 2 {
		return errors.Wrapf(ErrPulseWidth, "longest run %d cycles", r)
	}
	return nil
}

// Uniform random input: whatever happens, the observable invariants hold.
func randomStimulus(b *Bench) error {
	rng := rand.New(rand.NewSource(11))
	ss := make([]Sample, 0, 300)
	for i := 0; i < 300; i++ {
		b.Drive(uint8(rng.Intn(256)), 0)
		ss = append(ss, b.Collect(1)...)
	}
	if err := CheckSamples(ss); err != nil {
		return err
	}
	if r := MaxSpikeRun(ss); r > 2 {
		return errors.Wrapf(ErrPulseWidth, "longest run %d cycles", r)
	}
	return nil
}

// Full step response: flat at rest, ramp under a current step, decay after
// the step ends.
func stepResponse(b *Bench) error {
	b.Drive(0, 5)
	base := b.Collect(15)
	if err := CheckSamples(base); err != nil {
		return err
	}
	rest := MeanMembrane(base[len(base)-5:])

	b.Drive(40, 1)
	up := TruncateAtSpike(b.Collect(30))
	if err := CheckSamples(up); err != nil {
		return err
	}
	if MaxMembrane(up, 0) <= int64(rest)+2 {
		return errors.Wrapf(ErrIntegration, "peak %d under a current step, rest level %0.1f",
			MaxMembrane(up, 0), rest)
	}

	b.Drive(0, 1)
	down := b.Collect(60)
	if err := CheckSamples(down); err != nil {
		return err
	}
	if n := SpikeCount(down[3:]); n != 0 {
		return errors.Wrapf(ErrSpurious, "%d spikes after the step ended", n)
	}
	if m := MeanMembrane(down[len(down)-10:]); m > rest+2 {
		return errors.Wrapf(ErrLeak, "mean membrane %0.1f after the step, rest level %0.1f", m, rest)
	}
	return nil
}
