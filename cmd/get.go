// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"

	"github.com/spf13/cobra"
)

var getOutput string

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Read a chunk and write it to stdout or a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	registerStoreFlags(getCmd)
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "Write the payload to this file instead of stdout")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := chunk.IDFromHex(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	payload, ok, err := store.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("chunk %s not found", id.Hex())
	}

	if getOutput != "" {
		return os.WriteFile(getOutput, payload, 0644)
	}
	_, err = os.Stdout.Write(payload)
	return err
}
