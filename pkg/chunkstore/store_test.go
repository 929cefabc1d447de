package chunkstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LeeDigitalWorks/chunkstore/pkg/chunk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestStore(t *testing.T, maxBytes uint64) *Store {
	t.Helper()

	s, err := New(maxBytes)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// testID builds a deterministic identifier from a single byte.
func testID(b byte) chunk.ID {
	var id chunk.ID
	for i := range id {
		id[i] = b
	}
	return id
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNew_CreatesStorageDir(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)

	info, err := os.Stat(s.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, uint64(1024), s.MaxCapacity())
	assert.Equal(t, uint64(0), s.UsedCapacity())
	assert.Equal(t, 0, s.Len())
}

func TestClose_RemovesEphemeralDir(t *testing.T) {
	t.Parallel()

	s, err := New(1024)
	require.NoError(t, err)

	dir := s.Dir()
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	require.NoError(t, s.Close())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Idempotent
	require.NoError(t, s.Close())
}

func TestClose_OpenedDirSurvives(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir, 1024)
	require.NoError(t, err)

	require.NoError(t, s.Put(testID(1), []byte("abc")))
	require.NoError(t, s.Close())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpen_RebuildsUsage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := Open(dir, 1024)
	require.NoError(t, err)
	require.NoError(t, s.Put(testID(1), []byte("abc")))
	require.NoError(t, s.Put(testID(2), []byte("defgh")))
	require.NoError(t, s.Close())

	reopened, err := Open(dir, 1024)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, uint64(8), reopened.UsedCapacity())
	assert.Equal(t, 2, reopened.Len())

	data, ok, err := reopened.Get(testID(2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("defgh"), data)
}

func TestOpen_IgnoresForeignEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not a chunk"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	s, err := Open(dir, 1024)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, uint64(0), s.UsedCapacity())
	assert.Equal(t, 0, s.Len())
}

// ============================================================================
// Put Tests
// ============================================================================

func TestPut_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)
	payload := []byte{0, 1, 2, 3, 255}

	require.NoError(t, s.Put(testID(1), payload))

	got, ok, err := s.Get(testID(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
	assert.Equal(t, uint64(len(payload)), s.UsedCapacity())
}

func TestPut_EmptyPayload(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 8)

	require.NoError(t, s.Put(testID(1), nil))

	got, ok, err := s.Get(testID(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, uint64(0), s.UsedCapacity())
}

func TestPut_StorageLimitHit(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 8)
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	err := s.Put(testID(2), []byte("too big for it"))
	require.ErrorIs(t, err, ErrStorageLimitHit)

	// Rejection leaves the store untouched
	assert.Equal(t, uint64(3), s.UsedCapacity())
	ok, err := s.Has(testID(2))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPut_AdmissionBoundary(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 10)
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	// Exactly the remaining capacity fits
	require.NoError(t, s.Put(testID(2), make([]byte, 7)))
	assert.Equal(t, uint64(10), s.UsedCapacity())

	// One more byte does not
	err := s.Put(testID(3), []byte{0})
	require.ErrorIs(t, err, ErrStorageLimitHit)
}

func TestPut_Overwrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)
	require.NoError(t, s.Put(testID(1), []byte("first version")))
	require.NoError(t, s.Put(testID(1), []byte("v2")))

	got, ok, err := s.Get(testID(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)

	// Usage reflects only the new payload
	assert.Equal(t, uint64(2), s.UsedCapacity())
	assert.Equal(t, 1, s.Len())
}

func TestPut_OverwriteQuotaUsesBothSizes(t *testing.T) {
	t.Parallel()

	// The admission check runs before the old chunk is released, so an
	// overwrite needs room for old and new payloads at once.
	s := newTestStore(t, 10)
	require.NoError(t, s.Put(testID(1), make([]byte, 6)))

	err := s.Put(testID(1), make([]byte, 6))
	require.ErrorIs(t, err, ErrStorageLimitHit)

	require.NoError(t, s.Put(testID(1), make([]byte, 4)))
	assert.Equal(t, uint64(4), s.UsedCapacity())
}

// ============================================================================
// Get / Has Tests
// ============================================================================

func TestGet_Absent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)

	data, ok, err := s.Get(testID(9))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestGet_MediumFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir, 1024)
	require.NoError(t, err)
	defer s.Close()

	id := testID(1)
	require.NoError(t, s.Put(id, []byte("abc")))

	// Pull the file out from under the store
	require.NoError(t, os.Remove(filepath.Join(dir, id.Hex())))

	_, _, err = s.Get(id)
	require.ErrorIs(t, err, ErrIO)
}

func TestHas(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	ok, err := s.Has(testID(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Has(testID(2))
	require.NoError(t, err)
	assert.False(t, ok)
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestDelete_ReleasesQuota(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)
	require.NoError(t, s.Put(testID(1), []byte("abcde")))
	require.NoError(t, s.Put(testID(2), []byte("xyz")))

	require.NoError(t, s.Delete(testID(1)))

	assert.Equal(t, uint64(3), s.UsedCapacity())
	assert.Equal(t, 1, s.Len())

	ok, err := s.Has(testID(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_Idempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 1024)
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	require.NoError(t, s.Delete(testID(9)))
	assert.Equal(t, uint64(3), s.UsedCapacity())

	require.NoError(t, s.Delete(testID(1)))
	require.NoError(t, s.Delete(testID(1)))
	assert.Equal(t, uint64(0), s.UsedCapacity())
}

// ============================================================================
// Capacity Tests
// ============================================================================

func TestHasSpace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 10)
	require.NoError(t, s.Put(testID(1), []byte("abc")))

	assert.True(t, s.HasSpace(7))
	assert.False(t, s.HasSpace(8))
	assert.True(t, s.HasSpace(0))
}

func TestCapacity_ZeroCapacityStore(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 0)

	require.NoError(t, s.Put(testID(1), nil))
	err := s.Put(testID(2), []byte{1})
	require.ErrorIs(t, err, ErrStorageLimitHit)
}

// TestQuotaScenario walks the reference put/reject/delete/put sequence
// against a 10-byte store.
func TestQuotaScenario(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 10)
	a, b := testID('a'), testID('b')

	require.NoError(t, s.Put(a, []byte{1, 2, 3}))
	assert.Equal(t, uint64(3), s.UsedCapacity())

	err := s.Put(b, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.ErrorIs(t, err, ErrStorageLimitHit)
	assert.Equal(t, uint64(3), s.UsedCapacity())

	require.NoError(t, s.Delete(a))
	assert.Equal(t, uint64(0), s.UsedCapacity())

	require.NoError(t, s.Put(b, []byte{1, 2, 3, 4, 5, 6, 7, 8}))
	assert.Equal(t, uint64(8), s.UsedCapacity())

	_, ok, err := s.Get(a)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ============================================================================
// Closed Store Tests
// ============================================================================

func TestClosedStore_OperationsFail(t *testing.T) {
	t.Parallel()

	s, err := New(1024)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Put(testID(1), []byte("abc")), ErrClosed)

	_, _, err = s.Get(testID(1))
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, s.Delete(testID(1)), ErrClosed)

	_, err = s.Has(testID(1))
	assert.ErrorIs(t, err, ErrClosed)

	_, err = s.Chunks()
	assert.ErrorIs(t, err, ErrClosed)
}
