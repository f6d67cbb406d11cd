// Package timelock implements balances that can only be released once a
// caller-supplied marker (a timestamp or epoch) reaches a release point.
//
// Lock state is never stored. It is recomputed from the marker on every call.
package timelock

import (
	"fmt"
	"math"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Wallet is a single time-locked balance.
type Wallet struct {
	gate          *gas.Gate
	balance       uint64
	releaseMarker uint64
}

// NewWallet returns an empty wallet that unlocks at releaseMarker.
func NewWallet(releaseMarker uint64, opts ...gas.Option) *Wallet {
	return &Wallet{
		gate:          gas.NewGate("wallet", opts...),
		releaseMarker: releaseMarker,
	}
}

// ReleaseMarker returns the marker at which the wallet unlocks.
func (w *Wallet) ReleaseMarker() uint64 { return w.releaseMarker }

// Balance returns the current locked or unlocked balance.
func (w *Wallet) Balance() uint64 { return w.balance }

// Unlocked reports whether funds can be withdrawn at current.
func (w *Wallet) Unlocked(current uint64) bool {
	return current >= w.releaseMarker
}

// Deposit adds amount to the balance. Deposits are accepted whether or not
// the wallet is unlocked and never reset the lock.
func (w *Wallet) Deposit(g gas.Budget, amount uint64) error {
	if err := w.gate.Check(g); err != nil {
		return err
	}
	if amount > math.MaxUint64-w.balance {
		return fmt.Errorf("wallet: deposit %d: %w", amount, contract.ErrOverflow)
	}
	w.balance += amount
	return nil
}

// Withdraw drains the full balance when the wallet is unlocked at current.
// It returns false when the wallet is locked or holds nothing; in both cases
// the balance is left as it was.
func (w *Wallet) Withdraw(g gas.Budget, current uint64) (uint64, bool, error) {
	if err := w.gate.Check(g); err != nil {
		return 0, false, err
	}
	if !w.Unlocked(current) || w.balance == 0 {
		return 0, false, nil
	}
	amount := w.balance
	w.balance = 0
	return amount, true, nil
}
