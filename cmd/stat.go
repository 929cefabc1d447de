// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Show store usage and capacity",
	Args:  cobra.NoArgs,
	RunE:  runStat,
}

func init() {
	registerStoreFlags(statCmd)
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	used := store.UsedCapacity()
	max := store.MaxCapacity()
	pct := 0.0
	if max > 0 {
		pct = float64(used) / float64(max) * 100
	}

	fmt.Printf("dir:      %s\n", store.Dir())
	fmt.Printf("chunks:   %d\n", store.Len())
	fmt.Printf("used:     %s (%d bytes)\n", humanize.IBytes(used), used)
	fmt.Printf("capacity: %s (%d bytes)\n", humanize.IBytes(max), max)
	fmt.Printf("full:     %.1f%%\n", pct)
	return nil
}
