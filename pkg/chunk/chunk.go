// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunk defines the fixed-width identifier that names chunks
// in a store. Identifiers are opaque 32-byte values; the lowercase-hex
// encoding is used wherever a printable, filesystem-safe name is needed.
package chunk

import (
	"encoding/hex"
	"fmt"

	"github.com/LeeDigitalWorks/chunkstore/pkg/utils"
)

// IDSize is the identifier width in bytes.
const IDSize = 32

// HexSize is the length of an identifier's hex encoding.
const HexSize = IDSize * 2

// ID names a chunk. Two IDs are equal iff their bytes are equal.
type ID [IDSize]byte

// IDFromBytes builds an ID from a raw byte slice.
func IDFromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDSize {
		return id, fmt.Errorf("chunk: id must be %d bytes, got %d", IDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// IDFromHex decodes the printable form produced by Hex.
func IDFromHex(s string) (ID, error) {
	var id ID
	if len(s) != HexSize {
		return id, fmt.Errorf("chunk: hex id must be %d characters, got %d", HexSize, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("chunk: decode hex id: %w", err)
	}
	return id, nil
}

// Sum computes the content-hash ID of data.
func Sum(data []byte) ID {
	h := utils.Sha256PoolGetHasher()
	h.Write(data)
	sum := h.Sum(nil)
	utils.Sha256PoolPutHasher(h)

	var id ID
	copy(id[:], sum)
	return id
}

// Hex returns the lowercase-hex encoding of the ID. The result is a
// valid file name on all supported platforms.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ID) String() string {
	return id.Hex()
}

// Bytes returns a copy of the raw identifier bytes.
func (id ID) Bytes() []byte {
	b := make([]byte, IDSize)
	copy(b, id[:])
	return b
}
