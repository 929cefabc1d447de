// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var putID string

var putCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Store a chunk from a file or stdin",
	Long: `Store a chunk read from the given file, or from stdin when no file is
given. The chunk is stored under --id when set, otherwise under the
sha256 hash of its content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPut,
}

func init() {
	registerStoreFlags(putCmd)
	putCmd.Flags().StringVar(&putID, "id", "", "Chunk identifier as 64 hex characters (default: content hash)")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	var payload []byte
	var err error
	if len(args) == 1 {
		payload, err = os.ReadFile(args[0])
	} else {
		payload, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var id chunk.ID
	if putID != "" {
		id, err = chunk.IDFromHex(putID)
		if err != nil {
			return err
		}
	} else {
		id = chunk.Sum(payload)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(id, payload); err != nil {
		return err
	}

	fmt.Printf("%s\t%s\n", id.Hex(), humanize.IBytes(uint64(len(payload))))
	return nil
}
