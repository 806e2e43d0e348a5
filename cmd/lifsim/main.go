// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command lifsim simulates a leaky integrate-and-fire neuron core and runs
// its acceptance scenarios.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cfgPath string

	root := &cobra.Command{
		Use:           "lifsim",
		Short:         "cycle accurate leaky integrate-and-fire neuron simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file")

	root.AddCommand(newRunCmd(&cfgPath))
	root.AddCommand(newCheckCmd(&cfgPath))
	return root
}
