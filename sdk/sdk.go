// Package sdk defines the collaborator boundary of the bingo engine: the
// value-transfer ledger, the append-only event sink, the key/value state
// store, and the wall-clock source. The engine consumes these interfaces and
// never implements them; hosts pick implementations (see ledger, store and
// journal packages) and wire them in at construction time.
package sdk

import "errors"

// ---------- Identities ----------

// Address identifies an account on the ledger. Signature verification is the
// hosting environment's job; by the time an Address reaches the engine it is
// already authenticated.
type Address string

func (a Address) String() string { return string(a) }

// ---------- Clock ----------

// Clock returns the current wall-clock time in unix seconds. Injected so
// tests can drive game start times deterministically.
type Clock func() uint64

// ---------- Ledger ----------

// Payment is a single outgoing transfer inside a batch.
type Payment struct {
	To     Address
	Amount uint64
}

// Ledger moves value between accounts. Every call either fully applies or
// leaves balances untouched.
type Ledger interface {
	// Balance reports the available balance of an account.
	Balance(acct Address) (uint64, error)

	// Transfer moves amount from one account to another.
	Transfer(from, to Address, amount uint64) error

	// TransferBatch applies every payment from one source account, or none
	// of them. Used for cancellation refunds where a partial payout must
	// never be observable.
	TransferBatch(from Address, payments []Payment) error
}

// ---------- Events ----------

// Event is one domain event emitted by a successful mutating operation.
type Event struct {
	Type       string            `json:"type"`
	Game       string            `json:"game,omitempty"`
	Attributes map[string]string `json:"attributes"`
	Time       uint64            `json:"time"`
}

// EventSink records events in the order operations were linearized.
// Events are never retracted.
type EventSink interface {
	Append(evt Event)
}

// ---------- State store ----------

// ErrKeyExists is returned by StateStore.Create when the key is already
// bound. The engine relies on this duplicate-resource semantics to make
// re-initialization fail.
var ErrKeyExists = errors.New("key already exists")

// StateStore is the durable key/value state behind the engine. Get returns
// (nil, nil) for a missing key.
type StateStore interface {
	Create(key string, value []byte) error
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Keys(prefix string) ([]string, error)
}
