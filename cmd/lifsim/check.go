// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lifsim/bench"
)

func newCheckCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "run the acceptance scenarios against the configured device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			part, err := cfg.part()
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"device":    cfg.Device,
				"scenarios": len(bench.Scenarios()),
			}).Info("running acceptance scenarios")

			return bench.RunAll(func() (*bench.Bench, error) {
				return bench.New(part, cfg.StepsPerCycle)
			}, log.StandardLogger())
		},
	}
	return cmd
}
