// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete chunks",
	Long:  `Delete the named chunks. Deleting an absent chunk is not an error.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRm,
}

func init() {
	registerStoreFlags(rmCmd)
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	ids := make([]chunk.ID, 0, len(args))
	for _, arg := range args {
		id, err := chunk.IDFromHex(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range ids {
		if err := store.Delete(id); err != nil {
			return err
		}
	}
	return nil
}
