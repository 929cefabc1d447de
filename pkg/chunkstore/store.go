// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkstore persists opaque chunks on local disk under a fixed
// capacity. Admission control is rejection, not eviction: a put that does
// not fit fails with ErrStorageLimitHit and leaves the store unchanged.
//
// Each chunk is one file in a flat directory, named by the hex encoding
// of its ID, contents exactly the payload bytes. An in-memory index maps
// ID to recorded size, so lookups do not scan the directory; the index is
// valid as long as nothing else modifies the storage directory.
package chunkstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"

	"github.com/rs/zerolog/log"
)

// Store is a quota-bounded chunk store rooted at a single directory.
//
// A store is safe for concurrent use; a single RWMutex serializes
// mutations and the accounting counters.
type Store struct {
	mu        sync.RWMutex
	dir       string
	ephemeral bool
	closed    bool

	maxBytes  uint64
	usedBytes uint64
	index     map[chunk.ID]uint64
}

// New creates a store over a private temporary directory. The directory
// and everything in it are removed by Close.
func New(maxBytes uint64) (*Store, error) {
	dir, err := os.MkdirTemp("", "chunkstore-")
	if err != nil {
		return nil, ioError("create storage dir", err)
	}
	return &Store{
		dir:       dir,
		ephemeral: true,
		maxBytes:  maxBytes,
		index:     make(map[chunk.ID]uint64),
	}, nil
}

// Open creates a store over a caller-owned directory, creating it if
// needed. Existing chunk files are scanned to rebuild the usage counter.
// Close does not remove the directory.
//
// An opened store may start over capacity; puts fail until enough is
// deleted.
func Open(dir string, maxBytes uint64) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ioError("create storage dir", err)
	}
	s := &Store{
		dir:      dir,
		maxBytes: maxBytes,
		index:    make(map[chunk.ID]uint64),
	}
	if err := s.rescan(); err != nil {
		return nil, err
	}
	return s, nil
}

// rescan rebuilds the index and usage counter from the directory
// contents. Entries that are not regular files or whose names do not
// decode as chunk IDs are ignored.
func (s *Store) rescan() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return ioError("list storage dir", err)
	}
	for _, ent := range entries {
		if !ent.Type().IsRegular() {
			continue
		}
		id, err := chunk.IDFromHex(ent.Name())
		if err != nil {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			return ioError("stat chunk file", err)
		}
		s.index[id] = uint64(info.Size())
		s.usedBytes += uint64(info.Size())
	}
	return nil
}

// Put persists payload under id, replacing any existing chunk with the
// same id. The payload is synced to durable storage before Put returns
// success. On failure the usage counter is untouched and any partially
// written file is removed best-effort.
func (s *Store) Put(id chunk.ID, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if !s.hasSpaceLocked(uint64(len(payload))) {
		log.Warn().
			Str("chunk", id.Hex()).
			Int("size", len(payload)).
			Uint64("used", s.usedBytes).
			Uint64("max", s.maxBytes).
			Msg("not enough space in chunk store")
		limitHits.Inc()
		return ErrStorageLimitHit
	}

	// Overwrite is delete-then-create: drop the old entry first. This
	// only frees space, so the quota check above is not repeated.
	if _, ok := s.index[id]; ok {
		if err := s.removeLocked(id); err != nil {
			log.Error().Err(err).Str("chunk", id.Hex()).Msg("failed to delete preexisting chunk")
			return err
		}
	}

	path := filepath.Join(s.dir, id.Hex())
	f, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to create chunk file")
		return ioError("create chunk file", err)
	}

	n, err := f.Write(payload)
	if err == nil {
		err = Fdatasync(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to write chunk file")
		if rerr := os.Remove(path); rerr != nil {
			log.Error().Err(rerr).Str("path", path).Msg("failed to remove partial chunk file")
		}
		return ioError("write chunk file", err)
	}

	s.index[id] = uint64(n)
	s.usedBytes += uint64(n)
	s.updateGaugesLocked()
	operations.WithLabelValues("put").Inc()
	return nil
}

// Get returns the payload stored under id. The second return value is
// false when no such chunk exists; absence is not an error.
func (s *Store) Get(id chunk.ID) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	if _, ok := s.index[id]; !ok {
		return nil, false, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id.Hex()))
	if err != nil {
		return nil, false, ioError("read chunk file", err)
	}
	operations.WithLabelValues("get").Inc()
	return data, true, nil
}

// Delete removes the chunk stored under id and releases its quota.
// Deleting an absent chunk succeeds without effect.
func (s *Store) Delete(id chunk.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.removeLocked(id); err != nil {
		log.Error().Err(err).Str("chunk", id.Hex()).Msg("failed to delete chunk")
		return err
	}
	s.updateGaugesLocked()
	operations.WithLabelValues("delete").Inc()
	return nil
}

// removeLocked deletes id's file and subtracts its recorded size from
// the usage counter. No-op when the id is not present. On remove
// failure the counter and index are left unchanged, except that a file
// already gone from disk is treated as removed.
func (s *Store) removeLocked(id chunk.ID) error {
	size, ok := s.index[id]
	if !ok {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, id.Hex())); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError("remove chunk file", err)
	}
	delete(s.index, id)
	s.usedBytes -= size
	return nil
}

// Has reports whether a chunk exists under id without reading it.
func (s *Store) Has(id chunk.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrClosed
	}
	_, ok := s.index[id]
	return ok, nil
}

// MaxCapacity returns the fixed capacity in bytes.
func (s *Store) MaxCapacity() uint64 {
	return s.maxBytes
}

// UsedCapacity returns the total recorded size of all stored chunks.
func (s *Store) UsedCapacity() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usedBytes
}

// HasSpace reports whether a payload of n bytes would currently fit.
func (s *Store) HasSpace(n uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasSpaceLocked(n)
}

func (s *Store) hasSpaceLocked(n uint64) bool {
	return s.usedBytes+n <= s.maxBytes
}

// Len returns the number of chunks currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

// Dir returns the storage directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases the store. For stores created with New the storage
// directory and all chunks are removed. Close is idempotent; all other
// operations fail with ErrClosed afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.index = nil
	if s.ephemeral {
		if err := os.RemoveAll(s.dir); err != nil {
			return ioError("remove storage dir", err)
		}
	}
	return nil
}
