package bingo

import (
	"fmt"

	"okinoko-bingo/sdk"
)

// Bingo settles a game for the first caller whose card is fully covered by
// the drawn numbers. The whole pool (entry fee times player count) moves
// from escrow to the caller exactly once; the game turns terminal in the
// same step, so every later claim fails with ErrGameEnded no matter whose
// card is covered. Winner-take-all by first claim is deliberate policy.
func (r *Registry) Bingo(caller sdk.Address, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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
	card, joined := g.Players[caller]
	if !joined {
		return fmt.Errorf("%w: %s", ErrNotJoined, caller)
	}
	if !CardCovered(card, g.Drawn) {
		return ErrNotWinner
	}

	payout := g.pot()
	g.Finished = true
	if err := r.saveGame(g); err != nil {
		g.Finished = false
		return err
	}
	if err := r.ledger.Transfer(r.escrow, caller, payout); err != nil {
		g.Finished = false
		if rbErr := r.saveGame(g); rbErr != nil {
			return fmt.Errorf("pay out pool: %w (revert also failed: %v)", err, rbErr)
		}
		return fmt.Errorf("pay out pool: %w", err)
	}

	r.emitGameWon(name, caller, r.now())
	return nil
}
