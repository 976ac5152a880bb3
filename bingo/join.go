package bingo

import (
	"fmt"

	"okinoko-bingo/sdk"
)

// JoinGame registers a player's card and escrows the entry fee. Joins close
// at the game's start time. The card is validated before any game lookup so
// malformed input always reports the shape error first. Membership and the
// fee transfer commit together: a failed transfer rolls the card back, a
// failed persist returns the fee.
func (r *Registry) JoinGame(caller sdk.Address, name string, card [][]uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return ErrNotInitialized
	}
	validated, err := ValidateCard(card)
	if err != nil {
		return err
	}
	g, ok := r.games[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrGameNotFound, name)
	}
	if g.Finished {
		return ErrGameEnded
	}
	now := r.now()
	if now >= g.StartTime {
		return fmt.Errorf("%w: started at %d", ErrAlreadyStarted, g.StartTime)
	}
	balance, err := r.ledger.Balance(caller)
	if err != nil {
		return fmt.Errorf("query balance of %s: %w", caller, err)
	}
	if balance < g.EntryFee {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, balance, g.EntryFee)
	}
	if _, joined := g.Players[caller]; joined {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, caller)
	}

	g.Players[caller] = validated
	if err := r.ledger.Transfer(caller, r.escrow, g.EntryFee); err != nil {
		delete(g.Players, caller)
		return fmt.Errorf("escrow entry fee: %w", err)
	}
	if err := r.saveGame(g); err != nil {
		// Return the fee so the failed join leaves no trace.
		delete(g.Players, caller)
		if rbErr := r.ledger.Transfer(r.escrow, caller, g.EntryFee); rbErr != nil {
			return fmt.Errorf("%w (refund also failed: %v)", err, rbErr)
		}
		return err
	}

	r.emitPlayerJoined(name, caller, validated, now)
	return nil
}
