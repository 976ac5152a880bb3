package bingo

import (
	"fmt"

	"okinoko-bingo/sdk"
)

// InsertNumber appends one drawn number to a game's history. Draws open at
// the game's start time and stop forever once the game is finished. Each
// number can be drawn at most once. Admin only.
func (r *Registry) InsertNumber(caller sdk.Address, name string, number uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if number < 1 || number > numberDomainMax {
		return fmt.Errorf("%w: %d", ErrInvalidNumber, number)
	}
	if caller != r.admin {
		return ErrNotAdmin
	}
	if !r.initialized {
		return ErrNotInitialized
	}
	g, ok := r.games[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrGameNotFound, name)
	}
	if g.Finished {
		return ErrGameEnded
	}
	now := r.now()
	if now < g.StartTime {
		return fmt.Errorf("%w: starts at %d", ErrNotStartedYet, g.StartTime)
	}
	if g.hasDrawn(number) {
		return fmt.Errorf("%w: %d", ErrDuplicateNumber, number)
	}

	g.Drawn = append(g.Drawn, number)
	if err := r.saveGame(g); err != nil {
		g.Drawn = g.Drawn[:len(g.Drawn)-1]
		return err
	}

	r.emitNumberDrawn(name, number, now)
	return nil
}
