package bingo

import (
	"fmt"

	"okinoko-bingo/sdk"
)

// CreateGame registers a new game under a unique name. Entry fee and start
// time are fixed for the life of the game; the start time must be strictly
// in the future. Admin only.
func (r *Registry) CreateGame(caller sdk.Address, name string, entryFee uint64, startTime uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.admin {
		return ErrNotAdmin
	}
	if !r.initialized {
		return ErrNotInitialized
	}
	now := r.now()
	if startTime <= now {
		return fmt.Errorf("%w: start %d, now %d", ErrInvalidStartTime, startTime, now)
	}
	if _, exists := r.games[name]; exists {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}

	g := &Game{
		Name:      name,
		EntryFee:  entryFee,
		StartTime: startTime,
		CreatedAt: now,
		Players:   make(map[sdk.Address]Card),
	}
	if err := r.saveGame(g); err != nil {
		return err
	}
	r.games[name] = g

	r.emitGameCreated(g, now)
	return nil
}
