// Package journal provides sdk.EventSink implementations: an ordered
// in-memory journal for tests, a log-line sink for hosts, and a state-store
// backed append-only journal that survives restarts.
package journal

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"okinoko-bingo/sdk"
)

// ---------- In-memory journal ----------

// Memory records events in append order.
type Memory struct {
	mu     sync.Mutex
	events []sdk.Event
}

// NewMemory returns an empty journal.
func NewMemory() *Memory { return &Memory{} }

// Append records one event.
func (m *Memory) Append(evt sdk.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

// Events returns a copy of all recorded events.
func (m *Memory) Events() []sdk.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sdk.Event, len(m.events))
	copy(out, m.events)
	return out
}

// ForGame returns the recorded events for one game, in order.
func (m *Memory) ForGame(name string) []sdk.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sdk.Event
	for _, evt := range m.events {
		if evt.Game == name {
			out = append(out, evt)
		}
	}
	return out
}

// ---------- Log sink ----------

// Logger writes each event as one JSON log line.
type Logger struct{}

// Append logs the event. Marshalling a plain attribute map cannot fail.
func (Logger) Append(evt sdk.Event) {
	raw, _ := json.Marshal(evt)
	log.Printf("event %s", raw)
}

// ---------- Store-backed journal ----------

// storedEvent is the persisted journal record: the event plus its identity.
type storedEvent struct {
	ID  string    `json:"id"`
	Seq uint64    `json:"seq"`
	Evt sdk.Event `json:"event"`
}

// Store appends events into a state store under "evt:<game>:<seq>" keys with
// a monotonic per-game sequence and a uuid per event. Registry-level events
// without a game name file under "evt::<seq>".
type Store struct {
	mu    sync.Mutex
	store sdk.StateStore
	seqs  map[string]uint64
}

// NewStore returns a journal over the given state store, resuming each
// game's sequence from previously persisted events.
func NewStore(st sdk.StateStore) (*Store, error) {
	s := &Store{store: st, seqs: make(map[string]uint64)}
	keys, err := st.Keys("evt:")
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	for _, key := range keys {
		// Key shape is "evt:<game>:<seq>"; the game name never contains
		// a trailing colon segment, so split on the last one.
		cut := strings.LastIndexByte(key, ':')
		if cut < 0 {
			continue
		}
		seq, err := strconv.ParseUint(key[cut+1:], 10, 64)
		if err != nil {
			continue
		}
		game := key[len("evt:"):cut]
		if seq > s.seqs[game] {
			s.seqs[game] = seq
		}
	}
	return s, nil
}

// Append persists one event. Persistence failures are logged and dropped:
// the engine's state change already committed and events are never
// retracted, so the journal must not fail the operation.
func (s *Store) Append(evt sdk.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqs[evt.Game]++
	seq := s.seqs[evt.Game]
	rec := storedEvent{ID: uuid.NewString(), Seq: seq, Evt: evt}
	raw, err := json.Marshal(rec)
	if err != nil {
		log.Printf("journal: marshal event: %v", err)
		return
	}
	key := "evt:" + evt.Game + ":" + strconv.FormatUint(seq, 10)
	if err := s.store.Set(key, raw); err != nil {
		log.Printf("journal: persist event %s: %v", key, err)
	}
}
