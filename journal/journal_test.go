package journal_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-bingo/journal"
	"okinoko-bingo/sdk"
	"okinoko-bingo/store"
)

func TestMemoryKeepsAppendOrder(t *testing.T) {
	m := journal.NewMemory()
	m.Append(sdk.Event{Type: "a", Game: "g1"})
	m.Append(sdk.Event{Type: "b", Game: "g2"})
	m.Append(sdk.Event{Type: "c", Game: "g1"})

	events := m.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[0].Type)
	assert.Equal(t, "c", events[2].Type)

	g1 := m.ForGame("g1")
	require.Len(t, g1, 2)
	assert.Equal(t, "a", g1[0].Type)
	assert.Equal(t, "c", g1[1].Type)
}

func TestMemoryEventsReturnsCopy(t *testing.T) {
	m := journal.NewMemory()
	m.Append(sdk.Event{Type: "a"})

	events := m.Events()
	events[0].Type = "mutated"
	assert.Equal(t, "a", m.Events()[0].Type)
}

// storedEvent mirrors the persisted journal record shape.
type storedEvent struct {
	ID  string    `json:"id"`
	Seq uint64    `json:"seq"`
	Evt sdk.Event `json:"event"`
}

func readStored(t *testing.T, st sdk.StateStore, key string) storedEvent {
	t.Helper()
	raw, err := st.Get(key)
	require.NoError(t, err)
	require.NotNil(t, raw, "missing journal record %s", key)
	var rec storedEvent
	require.NoError(t, json.Unmarshal(raw, &rec))
	return rec
}

func TestStorePersistsSequencedEvents(t *testing.T) {
	st := store.NewMemory()
	j, err := journal.NewStore(st)
	require.NoError(t, err)

	j.Append(sdk.Event{Type: "gameCreated", Game: "night", Time: 10})
	j.Append(sdk.Event{Type: "playerJoined", Game: "night", Time: 11})
	j.Append(sdk.Event{Type: "registryInitialized", Time: 9})

	first := readStored(t, st, "evt:night:1")
	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, "gameCreated", first.Evt.Type)
	assert.NotEmpty(t, first.ID)

	second := readStored(t, st, "evt:night:2")
	assert.Equal(t, "playerJoined", second.Evt.Type)

	// Registry-level events file under an empty game segment.
	global := readStored(t, st, "evt::1")
	assert.Equal(t, "registryInitialized", global.Evt.Type)
}

func TestStoreResumesSequenceAfterRestart(t *testing.T) {
	st := store.NewMemory()
	j, err := journal.NewStore(st)
	require.NoError(t, err)
	j.Append(sdk.Event{Type: "gameCreated", Game: "night"})
	j.Append(sdk.Event{Type: "numberDrawn", Game: "night"})

	// A fresh journal over the same store must not overwrite history.
	j2, err := journal.NewStore(st)
	require.NoError(t, err)
	j2.Append(sdk.Event{Type: "gameCancelled", Game: "night"})

	assert.Equal(t, "gameCreated", readStored(t, st, "evt:night:1").Evt.Type)
	assert.Equal(t, "numberDrawn", readStored(t, st, "evt:night:2").Evt.Type)
	assert.Equal(t, "gameCancelled", readStored(t, st, "evt:night:3").Evt.Type)
}

func TestStoreSequencesGamesIndependently(t *testing.T) {
	st := store.NewMemory()
	j, err := journal.NewStore(st)
	require.NoError(t, err)

	j.Append(sdk.Event{Type: "gameCreated", Game: "a"})
	j.Append(sdk.Event{Type: "gameCreated", Game: "b"})
	j.Append(sdk.Event{Type: "numberDrawn", Game: "a"})

	assert.Equal(t, uint64(2), readStored(t, st, "evt:a:2").Seq)
	assert.Equal(t, uint64(1), readStored(t, st, "evt:b:1").Seq)
}
