package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okinoko-bingo/ledger"
	"okinoko-bingo/sdk"
)

func balance(t *testing.T, m *ledger.Memory, acct sdk.Address) uint64 {
	t.Helper()
	b, err := m.Balance(acct)
	require.NoError(t, err)
	return b
}

func TestUntouchedAccountIsZero(t *testing.T) {
	m := ledger.NewMemory()
	assert.Equal(t, uint64(0), balance(t, m, "nobody"))
}

func TestCreditAccumulates(t *testing.T) {
	m := ledger.NewMemory()
	m.Credit("alice", 100)
	m.Credit("alice", 50)
	assert.Equal(t, uint64(150), balance(t, m, "alice"))
}

func TestTransfer(t *testing.T) {
	m := ledger.NewMemory()
	m.Credit("alice", 100)

	require.NoError(t, m.Transfer("alice", "bob", 60))
	assert.Equal(t, uint64(40), balance(t, m, "alice"))
	assert.Equal(t, uint64(60), balance(t, m, "bob"))
}

func TestTransferInsufficientFunds(t *testing.T) {
	m := ledger.NewMemory()
	m.Credit("alice", 100)

	err := m.Transfer("alice", "bob", 101)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, uint64(100), balance(t, m, "alice"))
	assert.Equal(t, uint64(0), balance(t, m, "bob"))
}

func TestTransferBatch(t *testing.T) {
	m := ledger.NewMemory()
	m.Credit("pot", 100)

	require.NoError(t, m.TransferBatch("pot", []sdk.Payment{
		{To: "alice", Amount: 40},
		{To: "bob", Amount: 60},
	}))
	assert.Equal(t, uint64(0), balance(t, m, "pot"))
	assert.Equal(t, uint64(40), balance(t, m, "alice"))
	assert.Equal(t, uint64(60), balance(t, m, "bob"))
}

func TestTransferBatchAllOrNothing(t *testing.T) {
	m := ledger.NewMemory()
	m.Credit("pot", 100)

	// The first payment alone would be affordable; the batch as a whole is
	// not, so nothing moves.
	err := m.TransferBatch("pot", []sdk.Payment{
		{To: "alice", Amount: 40},
		{To: "bob", Amount: 61},
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, uint64(100), balance(t, m, "pot"))
	assert.Equal(t, uint64(0), balance(t, m, "alice"))
	assert.Equal(t, uint64(0), balance(t, m, "bob"))
}

func TestTransferBatchEmpty(t *testing.T) {
	m := ledger.NewMemory()
	require.NoError(t, m.TransferBatch("pot", nil))
}
