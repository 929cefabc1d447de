// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package chunkstore

import (
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"
)

// readDirBatch is the number of directory entries fetched per syscall
// while enumerating.
const readDirBatch = 64

// Entry is a chunk discovered during enumeration. The payload is not
// loaded until Read is called, so enumerating a large store does not
// pull every chunk into memory.
type Entry struct {
	ID   chunk.ID
	path string
}

// Read loads the chunk payload. The entry only holds the chunk's
// location; a chunk deleted or overwritten between enumeration and Read
// yields the store's state at Read time.
func (e *Entry) Read() ([]byte, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, ioError("read chunk file", err)
	}
	return data, nil
}

// Chunks returns a lazy iterator over all chunks in the store. Directory
// entries are inspected one batch at a time: entries that are not
// regular files or whose names do not decode as chunk IDs are skipped,
// and a listing failure ends the sequence with a single error item.
//
// Each call produces an independent sequence over the directory's
// current contents; a single sequence is not reusable.
func (s *Store) Chunks() (iter.Seq2[*Entry, error], error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	dir, err := os.Open(s.dir)
	if err != nil {
		return nil, ioError("open storage dir", err)
	}

	return func(yield func(*Entry, error) bool) {
		defer dir.Close()
		for {
			entries, err := dir.ReadDir(readDirBatch)
			for _, ent := range entries {
				if !ent.Type().IsRegular() {
					continue
				}
				id, derr := chunk.IDFromHex(ent.Name())
				if derr != nil {
					continue
				}
				e := &Entry{ID: id, path: filepath.Join(s.dir, ent.Name())}
				if !yield(e, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, ioError("list storage dir", err))
				return
			}
		}
	}, nil
}
