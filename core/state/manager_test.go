package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"revora/storage"
)

type record struct {
	Amount  *big.Int
	Created uint64
}

func TestKVRoundTrip(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("test/record")

	stored := &record{Amount: big.NewInt(1234), Created: 42}
	require.NoError(t, manager.KVPut(key, stored))

	var loaded record
	ok, err := manager.KVGet(key, &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, loaded.Amount.Cmp(stored.Amount))
	require.Equal(t, stored.Created, loaded.Created)

	ok, err = manager.KVGet([]byte("test/missing"), &loaded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKVDelete(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("test/value")

	require.NoError(t, manager.KVPut(key, uint64(7)))
	require.NoError(t, manager.KVDelete(key))

	ok, err := manager.KVHas(key)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, manager.KVDelete(key))
}

func TestKVList(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("test/list")

	list, err := manager.KVGetList(key)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, manager.KVAppend(key, []byte("a")))
	require.NoError(t, manager.KVAppend(key, []byte("b")))
	// Appending an existing member is a no-op.
	require.NoError(t, manager.KVAppend(key, []byte("a")))

	list, err = manager.KVGetList(key)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, []byte("a"), list[0])
	require.Equal(t, []byte("b"), list[1])
}

func TestStagingCommit(t *testing.T) {
	db := storage.NewMemDB()
	manager := NewManager(db)
	key := []byte("test/staged")

	require.NoError(t, manager.Begin())
	require.NoError(t, manager.KVPut(key, uint64(1)))

	// Staged writes are visible through the manager but not yet in the backend.
	ok, err := manager.KVHas(key)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = db.Get(key)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, manager.Commit())
	_, err = db.Get(key)
	require.NoError(t, err)
}

func TestStagingDiscard(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("test/staged")

	require.NoError(t, manager.KVPut(key, uint64(1)))
	require.NoError(t, manager.Begin())
	require.NoError(t, manager.KVPut(key, uint64(2)))
	require.NoError(t, manager.KVDelete([]byte("test/other")))
	manager.Discard()

	var value uint64
	ok, err := manager.KVGet(key, &value)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), value)
}

func TestStagingDeleteTombstone(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	key := []byte("test/doomed")

	require.NoError(t, manager.KVPut(key, uint64(1)))
	require.NoError(t, manager.Begin())
	require.NoError(t, manager.KVDelete(key))

	// The tombstone hides the committed value inside the region.
	ok, err := manager.KVHas(key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, manager.Commit())
	ok, err = manager.KVHas(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStagingDoesNotNest(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	require.NoError(t, manager.Begin())
	require.Error(t, manager.Begin())
	manager.Discard()
	require.Error(t, manager.Commit())
}
