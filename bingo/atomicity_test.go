package bingo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-bingo/bingo"
	"okinoko-bingo/sdk"
	"okinoko-bingo/store"
)

var errDiskFull = errors.New("disk full")

// faultStore fails Set while the fuse is lit, passing everything else
// through to a real store.
type faultStore struct {
	*store.Memory
	failSet bool
}

func (f *faultStore) Set(key string, value []byte) error {
	if f.failSet {
		return errDiskFull
	}
	return f.Memory.Set(key, value)
}

func faultyEnv(t *testing.T) (*env, *faultStore) {
	t.Helper()
	e := newEnv(t)
	fs := &faultStore{Memory: e.store}
	reg, err := bingo.New(bingo.Config{
		Admin:  admin,
		Escrow: escrow,
		Ledger: e.ledger,
		Events: e.journal,
		Store:  fs,
		Now:    func() uint64 { return e.now },
	})
	require.NoError(t, err)
	e.reg = reg
	require.NoError(t, e.reg.Initialize(admin))
	return e, fs
}

func TestDrawRollsBackOnPersistFailure(t *testing.T) {
	e, fs := faultyEnv(t)
	require.NoError(t, e.reg.CreateGame(admin, "night", 500, e.now+100))
	e.now += 100
	require.NoError(t, e.reg.InsertNumber(admin, "night", 7))

	fs.failSet = true
	assert.ErrorIs(t, e.reg.InsertNumber(admin, "night", 8), errDiskFull)

	fs.failSet = false
	view, err := e.reg.Game("night")
	require.NoError(t, err)
	assert.Equal(t, []uint8{7}, view.Drawn)

	// The rolled-back number is still drawable.
	require.NoError(t, e.reg.InsertNumber(admin, "night", 8))
}

func TestJoinRefundsFeeOnPersistFailure(t *testing.T) {
	e, fs := faultyEnv(t)
	require.NoError(t, e.reg.CreateGame(admin, "night", 500, e.now+100))
	e.ledger.Credit(alice, 500)

	fs.failSet = true
	assert.ErrorIs(t, e.reg.JoinGame(alice, "night", testCard()), errDiskFull)

	fs.failSet = false
	assert.Equal(t, uint64(500), e.balance(t, alice))
	assert.Equal(t, uint64(0), e.balance(t, escrow))
	view, err := e.reg.Game("night")
	require.NoError(t, err)
	assert.Empty(t, view.Players)

	// The failed attempt does not consume the player's join.
	require.NoError(t, e.reg.JoinGame(alice, "night", testCard()))
}

func TestBingoRevertsOnPersistFailure(t *testing.T) {
	e, fs := faultyEnv(t)
	require.NoError(t, e.reg.CreateGame(admin, "night", 500, e.now+100))
	e.ledger.Credit(alice, 500)
	require.NoError(t, e.reg.JoinGame(alice, "night", testCard()))
	e.now += 100
	drawRow(t, e, "night", testCard(), 0)

	fs.failSet = true
	assert.ErrorIs(t, e.reg.Bingo(alice, "night"), errDiskFull)

	// No payout moved and the game is still live, so the claim can be
	// retried once the store recovers.
	assert.Equal(t, uint64(0), e.balance(t, alice))
	fs.failSet = false
	view, err := e.reg.Game("night")
	require.NoError(t, err)
	assert.False(t, view.Finished)

	require.NoError(t, e.reg.Bingo(alice, "night"))
	assert.Equal(t, uint64(500), e.balance(t, alice))
}

func TestCancelRevertsOnPersistFailure(t *testing.T) {
	e, fs := faultyEnv(t)
	require.NoError(t, e.reg.CreateGame(admin, "night", 500, e.now+100))
	e.ledger.Credit(alice, 500)
	require.NoError(t, e.reg.JoinGame(alice, "night", testCard()))

	fs.failSet = true
	assert.ErrorIs(t, e.reg.CancelGame(admin, "night"), errDiskFull)

	fs.failSet = false
	view, err := e.reg.Game("night")
	require.NoError(t, err)
	assert.False(t, view.Finished)
	assert.Equal(t, uint64(500), e.balance(t, escrow))

	require.NoError(t, e.reg.CancelGame(admin, "night"))
	assert.Equal(t, uint64(500), e.balance(t, alice))
}

// brokeLedger rejects every transfer. Balance reports enough to pass the
// join's funds check.
type brokeLedger struct{}

var errLedgerDown = errors.New("ledger unavailable")

func (brokeLedger) Balance(sdk.Address) (uint64, error)                { return 1 << 32, nil }
func (brokeLedger) Transfer(_, _ sdk.Address, _ uint64) error          { return errLedgerDown }
func (brokeLedger) TransferBatch(_ sdk.Address, _ []sdk.Payment) error { return errLedgerDown }

func TestJoinRollsBackCardOnTransferFailure(t *testing.T) {
	e := newEnv(t)
	reg, err := bingo.New(bingo.Config{
		Admin:  admin,
		Escrow: escrow,
		Ledger: brokeLedger{},
		Events: e.journal,
		Store:  e.store,
		Now:    func() uint64 { return e.now },
	})
	require.NoError(t, err)
	require.NoError(t, reg.Initialize(admin))
	require.NoError(t, reg.CreateGame(admin, "night", 500, e.now+100))

	assert.ErrorIs(t, reg.JoinGame(alice, "night", testCard()), errLedgerDown)

	view, err := reg.Game("night")
	require.NoError(t, err)
	assert.Empty(t, view.Players)
	assert.Len(t, e.journal.ForGame("night"), 1)
}
