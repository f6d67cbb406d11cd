package timelock

import (
	"fmt"
	"math"
	"sort"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Pension holds per-participant contributions released at a common epoch.
// A withdrawal removes the participant entirely.
type Pension struct {
	gate         *gas.Gate
	releaseEpoch uint64
	accounts     map[string]uint64
}

// NewPension returns an empty pension fund that releases at releaseEpoch.
func NewPension(releaseEpoch uint64, opts ...gas.Option) *Pension {
	return &Pension{
		gate:         gas.NewGate("pension", opts...),
		releaseEpoch: releaseEpoch,
		accounts:     make(map[string]uint64),
	}
}

// ReleaseEpoch returns the epoch at which contributions become withdrawable.
func (p *Pension) ReleaseEpoch() uint64 { return p.releaseEpoch }

// Contribute adds amount to participant's account, opening it if needed.
func (p *Pension) Contribute(g gas.Budget, participant string, amount uint64) error {
	if err := p.gate.Check(g); err != nil {
		return err
	}
	current := p.accounts[participant]
	if amount > math.MaxUint64-current {
		return fmt.Errorf("pension: contribution %d for %q: %w", amount, participant, contract.ErrOverflow)
	}
	p.accounts[participant] = current + amount
	return nil
}

// Balance returns the accumulated contributions of participant. The second
// result is false when the participant has no record.
func (p *Pension) Balance(participant string) (uint64, bool) {
	v, ok := p.accounts[participant]
	return v, ok
}

// Withdraw returns participant's whole balance and deletes the record once
// epoch has reached the release epoch. Before that, or for an unknown
// participant, it returns false and changes nothing.
func (p *Pension) Withdraw(g gas.Budget, participant string, epoch uint64) (uint64, bool, error) {
	if err := p.gate.Check(g); err != nil {
		return 0, false, err
	}
	if epoch < p.releaseEpoch {
		return 0, false, nil
	}
	amount, ok := p.accounts[participant]
	if !ok {
		return 0, false, nil
	}
	delete(p.accounts, participant)
	return amount, true, nil
}

// Participants lists participants with an open record, sorted.
func (p *Pension) Participants() []string {
	out := make([]string, 0, len(p.accounts))
	for k := range p.accounts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
