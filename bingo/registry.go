// Package bingo implements a single-operator bingo game engine: a registry
// of independently-keyed games, per-game lifecycle state machines, card and
// win validation, and the escrow accounting that conserves funds across
// join, win and cancellation paths. Value transfer, durable state and event
// delivery are delegated to the sdk collaborator interfaces.
package bingo

import (
	"fmt"
	"strings"
	"sync"

	"okinoko-bingo/sdk"
)

// ---------- State keys ----------

const (
	// registryKey is bound once by Initialize; its presence marks an
	// initialized registry across restarts.
	registryKey = "registry"
	// gameKeyPrefix namespaces per-game records.
	gameKeyPrefix = "game:"
)

func gameKey(name string) string { return gameKeyPrefix + name }

// ---------- Registry ----------

// Config carries the administrator identity, the escrow account handle and
// the collaborator implementations the registry runs against. All fields are
// required.
type Config struct {
	Admin  sdk.Address
	Escrow sdk.Address
	Ledger sdk.Ledger
	Events sdk.EventSink
	Store  sdk.StateStore
	Now    sdk.Clock
}

// Registry is the single entry point for all game operations under one
// administrator. A mutex linearizes operations; each public method is an
// all-or-nothing unit of work.
//
// The escrow account handle stays inside the registry and is only ever
// passed to the ledger collaborator.
type Registry struct {
	mu     sync.Mutex
	admin  sdk.Address
	escrow sdk.Address
	ledger sdk.Ledger
	events sdk.EventSink
	store  sdk.StateStore
	now    sdk.Clock

	initialized bool
	games       map[string]*Game
}

// New constructs a registry over the given collaborators. When the store
// already carries an initialized registry, games are rehydrated from it and
// no Initialize call is needed.
func New(cfg Config) (*Registry, error) {
	switch {
	case cfg.Admin == "":
		return nil, fmt.Errorf("admin identity is required")
	case cfg.Escrow == "":
		return nil, fmt.Errorf("escrow account is required")
	case cfg.Ledger == nil:
		return nil, fmt.Errorf("ledger is required")
	case cfg.Events == nil:
		return nil, fmt.Errorf("event sink is required")
	case cfg.Store == nil:
		return nil, fmt.Errorf("state store is required")
	case cfg.Now == nil:
		return nil, fmt.Errorf("clock is required")
	}

	r := &Registry{
		admin:  cfg.Admin,
		escrow: cfg.Escrow,
		ledger: cfg.Ledger,
		events: cfg.Events,
		store:  cfg.Store,
		now:    cfg.Now,
	}

	marker, err := cfg.Store.Get(registryKey)
	if err != nil {
		return nil, fmt.Errorf("read registry marker: %w", err)
	}
	if marker != nil {
		if err := r.rehydrate(); err != nil {
			return nil, err
		}
		r.initialized = true
	}
	return r, nil
}

// rehydrate loads every persisted game back into memory.
func (r *Registry) rehydrate() error {
	keys, err := r.store.Keys(gameKeyPrefix)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	r.games = make(map[string]*Game, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		g, err := decodeGame(raw)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		r.games[strings.TrimPrefix(key, gameKeyPrefix)] = g
	}
	return nil
}

// Initialize creates the empty registry and binds the escrow account. Only
// the configured administrator may call it, and only once: the store's
// duplicate-resource semantics make a second call fail.
func (r *Registry) Initialize(caller sdk.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.admin {
		return ErrNotAdmin
	}
	if err := r.store.Create(registryKey, []byte(r.admin)); err != nil {
		return fmt.Errorf("bind registry: %w", err)
	}
	r.initialized = true
	r.games = make(map[string]*Game)

	r.emitRegistryInitialized(r.now())
	return nil
}

// Game returns a detached snapshot of a game's state.
func (r *Registry) Game(name string) (GameView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return GameView{}, ErrNotInitialized
	}
	g, ok := r.games[name]
	if !ok {
		return GameView{}, fmt.Errorf("%w: %q", ErrGameNotFound, name)
	}
	return g.view(), nil
}

// saveGame persists a game through the state store.
func (r *Registry) saveGame(g *Game) error {
	if err := r.store.Set(gameKey(g.Name), encodeGame(g)); err != nil {
		return fmt.Errorf("persist game %q: %w", g.Name, err)
	}
	return nil
}
