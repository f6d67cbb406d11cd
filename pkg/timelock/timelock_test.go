package timelock

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

func TestWalletLifecycle(t *testing.T) {
	w := NewWallet(100)
	assert.Equal(t, uint64(100), w.ReleaseMarker())

	require.NoError(t, w.Deposit(1, 40))
	require.NoError(t, w.Deposit(1, 2))
	assert.Equal(t, uint64(42), w.Balance())

	t.Run("locked withdrawal is empty and leaves the balance", func(t *testing.T) {
		amount, ok, err := w.Withdraw(1, 99)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, amount)
		assert.Equal(t, uint64(42), w.Balance())
		assert.False(t, w.Unlocked(99))
	})

	t.Run("withdraw at the release marker drains once", func(t *testing.T) {
		amount, ok, err := w.Withdraw(1, 100)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(42), amount)
		assert.Zero(t, w.Balance())

		amount, ok, err = w.Withdraw(1, 100)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, amount)
	})

	t.Run("deposits after unlock stay unlocked", func(t *testing.T) {
		require.NoError(t, w.Deposit(1, 7))
		assert.True(t, w.Unlocked(150))
		amount, ok, err := w.Withdraw(1, 150)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(7), amount)
	})
}

func TestWalletRejectsZeroGasWithoutMutation(t *testing.T) {
	w := NewWallet(0)
	require.NoError(t, w.Deposit(1, 10))

	assert.ErrorIs(t, w.Deposit(0, 5), gas.ErrInsufficientGas)
	assert.Equal(t, uint64(10), w.Balance())

	_, ok, err := w.Withdraw(0, 10)
	assert.ErrorIs(t, err, gas.ErrInsufficientGas)
	assert.False(t, ok)
	assert.Equal(t, uint64(10), w.Balance())
}

func TestWalletOverflow(t *testing.T) {
	w := NewWallet(0)
	require.NoError(t, w.Deposit(1, math.MaxUint64))
	assert.ErrorIs(t, w.Deposit(1, 1), contract.ErrOverflow)
	assert.Equal(t, uint64(math.MaxUint64), w.Balance())
}

func TestWalletWithdrawsExactlyOnce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("deposits are released exactly once at the marker", prop.ForAll(
		func(release uint64, deposits []uint32) bool {
			w := NewWallet(release)
			var sum uint64
			for _, d := range deposits {
				if err := w.Deposit(1, uint64(d)); err != nil {
					return false
				}
				sum += uint64(d)
			}
			if release > 0 {
				if _, ok, _ := w.Withdraw(1, release-1); ok {
					return false
				}
			}
			amount, ok, err := w.Withdraw(1, release)
			if err != nil || ok != (sum > 0) || amount != sum {
				return false
			}
			_, again, _ := w.Withdraw(1, release)
			return !again && w.Balance() == 0
		},
		gen.UInt64Range(0, 1<<40),
		gen.SliceOf(gen.UInt32()),
	))

	properties.TestingRun(t)
}

func TestPension(t *testing.T) {
	p := NewPension(2030)
	assert.Equal(t, uint64(2030), p.ReleaseEpoch())

	require.NoError(t, p.Contribute(1, "alice", 100))
	require.NoError(t, p.Contribute(1, "alice", 50))
	require.NoError(t, p.Contribute(1, "bob", 10))
	assert.Equal(t, []string{"alice", "bob"}, p.Participants())

	t.Run("early withdrawal keeps the balance", func(t *testing.T) {
		amount, ok, err := p.Withdraw(1, "alice", 2029)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, amount)

		bal, ok := p.Balance("alice")
		assert.True(t, ok)
		assert.Equal(t, uint64(150), bal)
	})

	t.Run("release removes the record", func(t *testing.T) {
		amount, ok, err := p.Withdraw(1, "alice", 2030)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(150), amount)

		_, ok = p.Balance("alice")
		assert.False(t, ok)

		amount, ok, err = p.Withdraw(1, "alice", 2031)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, amount)
		assert.Equal(t, []string{"bob"}, p.Participants())
	})

	t.Run("unknown participant", func(t *testing.T) {
		_, ok, err := p.Withdraw(1, "carol", 3000)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("zero gas", func(t *testing.T) {
		assert.ErrorIs(t, p.Contribute(0, "bob", 1), gas.ErrInsufficientGas)
		_, _, err := p.Withdraw(0, "bob", 3000)
		assert.ErrorIs(t, err, gas.ErrInsufficientGas)
		bal, ok := p.Balance("bob")
		assert.True(t, ok)
		assert.Equal(t, uint64(10), bal)
	})

	t.Run("overflow", func(t *testing.T) {
		require.NoError(t, p.Contribute(1, "dave", math.MaxUint64))
		assert.ErrorIs(t, p.Contribute(1, "dave", 1), contract.ErrOverflow)
	})
}
