package bingo

import (
	"fmt"

	"okinoko-bingo/sdk"
)

// CancelGame terminates an unfinished game and refunds every joined player
// their entry fee. Refunds go through the ledger's batch transfer so either
// every player gets their fee back or none does; the game never ends up
// finished with only some players refunded. Admin only.
func (r *Registry) CancelGame(caller sdk.Address, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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

	refunds := make([]sdk.Payment, 0, len(g.Players))
	for _, addr := range g.playerAddresses() {
		refunds = append(refunds, sdk.Payment{To: addr, Amount: g.EntryFee})
	}

	g.Finished = true
	if err := r.saveGame(g); err != nil {
		g.Finished = false
		return err
	}
	if err := r.ledger.TransferBatch(r.escrow, refunds); err != nil {
		g.Finished = false
		if rbErr := r.saveGame(g); rbErr != nil {
			return fmt.Errorf("refund players: %w (revert also failed: %v)", err, rbErr)
		}
		return fmt.Errorf("refund players: %w", err)
	}

	r.emitGameCancelled(name, r.now())
	return nil
}
