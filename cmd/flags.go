// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunkstore"
	"github.com/LeeDigitalWorks/chunkstore/pkg/utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StoreOpts holds the store location and capacity shared by the data
// commands. Flags override config file values (store.dir, store.capacity).
type StoreOpts struct {
	Dir      string
	Capacity string
}

var storeOpts StoreOpts

func registerStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&storeOpts.Dir, "dir", "", "Store directory")
	cmd.Flags().StringVar(&storeOpts.Capacity, "capacity", "", "Maximum store capacity, e.g. 512MiB or 2GB")
}

// openStore opens the configured store, rescanning the directory to
// rebuild the usage counter.
func openStore() (*chunkstore.Store, error) {
	dir := storeOpts.Dir
	if dir == "" {
		dir = viper.GetString("store.dir")
	}
	if dir == "" {
		return nil, fmt.Errorf("no store directory: set --dir or store.dir in the config file")
	}

	capacity := storeOpts.Capacity
	if capacity == "" {
		capacity = viper.GetString("store.capacity")
	}
	if capacity == "" {
		capacity = "1GiB"
	}
	maxBytes, err := humanize.ParseBytes(capacity)
	if err != nil {
		return nil, fmt.Errorf("parse capacity %q: %w", capacity, err)
	}

	return chunkstore.Open(utils.ResolvePath(dir), maxBytes)
}
