// Package ledger provides the reference in-memory implementation of
// sdk.Ledger: plain account balances with atomic single and batch transfers.
// Hosts that sit on a real value-transfer primitive supply their own
// implementation instead.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"okinoko-bingo/sdk"
)

// ErrInsufficientFunds is returned when a source account cannot cover a
// transfer or the sum of a batch.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Memory is a mutex-guarded balance table. Accounts spring into existence at
// zero on first touch. The zero value is not usable; call NewMemory.
type Memory struct {
	mu       sync.Mutex
	balances map[sdk.Address]uint64
}

// NewMemory returns an empty ledger.
func NewMemory() *Memory {
	return &Memory{balances: make(map[sdk.Address]uint64)}
}

// Credit mints amount into an account. Seeding hook for hosts and tests;
// not part of the sdk.Ledger surface.
func (m *Memory) Credit(acct sdk.Address, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[acct] += amount
}

// Balance reports the available balance of an account.
func (m *Memory) Balance(acct sdk.Address) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[acct], nil
}

// Transfer moves amount from one account to another, or fails leaving both
// balances untouched.
func (m *Memory) Transfer(from, to sdk.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transferLocked(from, to, amount)
}

// TransferBatch applies every payment or none. The whole sum is checked
// against the source balance before any balance moves.
func (m *Memory) TransferBatch(from sdk.Address, payments []sdk.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total uint64
	for _, p := range payments {
		total += p.Amount
	}
	if m.balances[from] < total {
		return fmt.Errorf("%w: %s has %d, batch needs %d",
			ErrInsufficientFunds, from, m.balances[from], total)
	}
	for _, p := range payments {
		if err := m.transferLocked(from, p.To, p.Amount); err != nil {
			// Unreachable after the sum check, but keep the invariant loud.
			return err
		}
	}
	return nil
}

func (m *Memory) transferLocked(from, to sdk.Address, amount uint64) error {
	if m.balances[from] < amount {
		return fmt.Errorf("%w: %s has %d, needs %d",
			ErrInsufficientFunds, from, m.balances[from], amount)
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	return nil
}
