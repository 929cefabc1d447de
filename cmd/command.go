// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/LeeDigitalWorks/chunkstore/pkg/logger"
	"github.com/LeeDigitalWorks/chunkstore/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chunkstore",
	Short: "chunkstore - a quota-bounded local chunk store",
	Long: `chunkstore persists opaque chunks on local disk under a fixed capacity.
Chunks are stored one file per chunk, named by the hex encoding of a 32-byte
identifier. A put that does not fit within the remaining capacity is rejected.`,
	PersistentPreRun: initializeConfig,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&utils.ConfigurationFileDirectory, "config_dir", ".", "Directory for configuration files")
	rootCmd.PersistentFlags().String("log_level", "", "Log level override (trace, debug, info, warn, error)")
}

// initializeConfig loads the optional config file and applies the log level
func initializeConfig(cmd *cobra.Command, args []string) {
	utils.LoadConfiguration("chunkstore", false)

	levelStr, _ := cmd.Flags().GetString("log_level")
	if levelStr == "" {
		return
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Err(err).Msgf("invalid log_level %q, keeping current level", levelStr)
		return
	}
	logger.SetLevel(level)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
