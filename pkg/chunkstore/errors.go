// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package chunkstore

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageLimitHit indicates a put was rejected because the payload
	// does not fit within the store's remaining capacity. The store is
	// unchanged; the caller may free space and retry.
	ErrStorageLimitHit = errors.New("chunkstore: storage limit hit")

	// ErrIO wraps any failure of the underlying storage medium. Callers
	// should treat these as potentially transient; the original cause is
	// preserved in the error chain.
	ErrIO = errors.New("chunkstore: storage I/O failure")

	// ErrClosed indicates an operation on a store after Close.
	ErrClosed = errors.New("chunkstore: store is closed")
)

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
