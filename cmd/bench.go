// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"
	"github.com/LeeDigitalWorks/chunkstore/pkg/chunkstore"
	"github.com/LeeDigitalWorks/chunkstore/pkg/debug"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// BenchOpts holds the workload parameters for the bench command
type BenchOpts struct {
	Count     int
	ChunkSize string
	Capacity  string
	DebugAddr string
}

var benchOpts BenchOpts

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a put/get/delete workload against an ephemeral store",
	Long: `Run a synthetic workload against a throwaway store backed by a
temporary directory. The directory is removed when the run finishes.
With --debug_addr, Prometheus metrics and pprof are served while the
workload runs.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchOpts.Count, "count", 1000, "Number of chunks to write")
	benchCmd.Flags().StringVar(&benchOpts.ChunkSize, "size", "64KiB", "Payload size per chunk")
	benchCmd.Flags().StringVar(&benchOpts.Capacity, "capacity", "1GiB", "Store capacity")
	benchCmd.Flags().StringVar(&benchOpts.DebugAddr, "debug_addr", "", "Serve metrics/pprof on this address during the run")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	size, err := humanize.ParseBytes(benchOpts.ChunkSize)
	if err != nil {
		return fmt.Errorf("parse size %q: %w", benchOpts.ChunkSize, err)
	}
	capacity, err := humanize.ParseBytes(benchOpts.Capacity)
	if err != nil {
		return fmt.Errorf("parse capacity %q: %w", benchOpts.Capacity, err)
	}

	if benchOpts.DebugAddr != "" {
		go func() {
			if err := http.ListenAndServe(benchOpts.DebugAddr, debug.GetMux()); err != nil {
				log.Error().Err(err).Msg("debug server failed")
			}
		}()
		debug.SetReady()
	}

	store, err := chunkstore.New(capacity)
	if err != nil {
		return err
	}
	defer store.Close()

	payload := make([]byte, size)
	ids := make([]chunk.ID, 0, benchOpts.Count)

	start := time.Now()
	for i := 0; i < benchOpts.Count; i++ {
		if _, err := rand.Read(payload); err != nil {
			return err
		}
		id := chunk.Sum(payload)
		if err := store.Put(id, payload); err != nil {
			if errors.Is(err, chunkstore.ErrStorageLimitHit) {
				log.Warn().Int("written", i).Msg("store full, stopping writes")
				break
			}
			return err
		}
		ids = append(ids, id)
	}
	writeDur := time.Since(start)

	start = time.Now()
	for _, id := range ids {
		if _, _, err := store.Get(id); err != nil {
			return err
		}
	}
	readDur := time.Since(start)

	start = time.Now()
	for _, id := range ids {
		if err := store.Delete(id); err != nil {
			return err
		}
	}
	deleteDur := time.Since(start)

	written := uint64(len(ids)) * size
	fmt.Printf("chunks:  %d x %s (%s)\n", len(ids), humanize.IBytes(size), humanize.IBytes(written))
	fmt.Printf("put:     %v (%s/s)\n", writeDur, humanize.IBytes(rate(written, writeDur)))
	fmt.Printf("get:     %v (%s/s)\n", readDur, humanize.IBytes(rate(written, readDur)))
	fmt.Printf("delete:  %v\n", deleteDur)
	return nil
}

func rate(n uint64, d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(float64(n) / d.Seconds())
}
