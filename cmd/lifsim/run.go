// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lifsim/bench"
	"lifsim/trace"
)

func newRunCmd(cfgPath *string) *cobra.Command {
	var (
		cycles  int
		current uint8
		backend string
		dbPath  string
		runID   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "drive the neuron with a constant current and report its activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			part, err := cfg.part()
			if err != nil {
				return err
			}

			b, err := bench.New(part, cfg.StepsPerCycle)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := trace.NewStore(backend, dbPath)
			if err != nil {
				return err
			}
			if err := store.Init(ctx); err != nil {
				return err
			}
			defer func() {
				if err := trace.CloseIfSupported(store); err != nil {
					log.WithError(err).Warn("closing trace store")
				}
			}()

			if runID == "" {
				runID = "run-" + strconv.FormatInt(time.Now().Unix(), 10)
			}
			run := trace.Run{
				ID:        runID,
				Device:    cfg.Device,
				Params:    cfg.Params,
				StartedAt: time.Now(),
				Cycles:    cycles,
			}

			log.WithFields(log.Fields{
				"run":     runID,
				"device":  cfg.Device,
				"cycles":  cycles,
				"current": current,
			}).Info("starting run")

			b.Init()
			b.Drive(current, 1)
			ss := b.Collect(cycles)

			if err := bench.CheckSamples(ss); err != nil {
				return err
			}
			for _, s := range ss {
				if s.Spike != 0 {
					log.WithFields(log.Fields{
						"run":      runID,
						"cycle":    s.Cycle,
						"membrane": s.Membrane,
					}).Debug("spike")
				}
			}

			run.Cycles = b.Cycles()
			if err := store.SaveRun(ctx, run); err != nil {
				return err
			}
			if err := store.AppendSamples(ctx, runID, ss); err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"run":       runID,
				"cycles":    b.Cycles(),
				"spikes":    bench.SpikeCount(ss),
				"max_run":   bench.MaxSpikeRun(ss),
				"mean_mem":  bench.MeanMembrane(ss),
				"final_mem": b.Membrane(),
			}).Info("run complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&cycles, "cycles", 300, "number of clock cycles to simulate")
	cmd.Flags().Uint8Var(&current, "current", 20, "constant input current")
	cmd.Flags().StringVar(&backend, "trace", "memory", "trace backend (memory or sqlite)")
	cmd.Flags().StringVar(&dbPath, "trace-db", "", "sqlite database path for --trace=sqlite")
	cmd.Flags().StringVar(&runID, "run-id", "", "run identifier (default derived from the clock)")
	return cmd
}
