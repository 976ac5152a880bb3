package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-bingo/sdk"
	"okinoko-bingo/store"
)

// conformance runs the sdk.StateStore contract against an implementation.
func conformance(t *testing.T, st sdk.StateStore) {
	t.Run("GetAbsent", func(t *testing.T) {
		v, err := st.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("CreateOnce", func(t *testing.T) {
		require.NoError(t, st.Create("once", []byte("a")))
		err := st.Create("once", []byte("b"))
		assert.ErrorIs(t, err, sdk.ErrKeyExists)

		// The failed second Create left the first value in place.
		v, err := st.Get("once")
		require.NoError(t, err)
		assert.Equal(t, []byte("a"), v)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		require.NoError(t, st.Set("k", []byte("v1")))
		require.NoError(t, st.Set("k", []byte("v2")))
		v, err := st.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
	})

	t.Run("KeysPrefixSorted", func(t *testing.T) {
		require.NoError(t, st.Set("game:b", []byte{1}))
		require.NoError(t, st.Set("game:a", []byte{1}))
		require.NoError(t, st.Set("other:z", []byte{1}))

		keys, err := st.Keys("game:")
		require.NoError(t, err)
		assert.Equal(t, []string{"game:a", "game:b"}, keys)
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		require.NoError(t, st.Set("copy", []byte{1, 2, 3}))
		v, err := st.Get("copy")
		require.NoError(t, err)
		v[0] = 99

		again, err := st.Get("copy")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, again)
	})
}

func TestMemoryStore(t *testing.T) {
	conformance(t, store.NewMemory())
}

func TestBoltStore(t *testing.T) {
	b, err := store.OpenBolt(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	conformance(t, b)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	b, err := store.OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.Set("game:night", []byte("state")))
	require.NoError(t, b.Close())

	b, err = store.OpenBolt(path)
	require.NoError(t, err)
	defer b.Close()

	v, err := b.Get("game:night")
	require.NoError(t, err)
	assert.Equal(t, []byte("state"), v)
}

func TestOpenBoltRequiresPath(t *testing.T) {
	_, err := store.OpenBolt("  ")
	assert.Error(t, err)
}
