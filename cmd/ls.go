// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the identifiers of all stored chunks",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

func init() {
	registerStoreFlags(lsCmd)
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	chunks, err := store.Chunks()
	if err != nil {
		return err
	}
	for entry, err := range chunks {
		if err != nil {
			return err
		}
		fmt.Println(entry.ID.Hex())
	}
	return nil
}
