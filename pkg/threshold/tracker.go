package threshold

import (
	"fmt"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Tracker collects unique votes from a fixed eligible population and
// evaluates them against a Quorum.
type Tracker struct {
	gate     *gas.Gate
	quorum   *Quorum
	eligible uint64
	votes    map[string]struct{}
}

// NewTracker returns a tracker for eligible voters. The population must be
// non-zero and the quorum non-nil.
func NewTracker(q *Quorum, eligible uint64, opts ...gas.Option) (*Tracker, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: quorum tracker requires a quorum", contract.ErrInvalidConstruction)
	}
	if eligible == 0 {
		return nil, fmt.Errorf("%w: quorum tracker requires eligible voters", contract.ErrInvalidConstruction)
	}
	return &Tracker{
		gate:     gas.NewGate("quorum", opts...),
		quorum:   q,
		eligible: eligible,
		votes:    make(map[string]struct{}),
	}, nil
}

// Vote records voter and returns the number of unique votes. Repeat votes
// from the same voter are ignored.
func (t *Tracker) Vote(g gas.Budget, voter string) (uint64, error) {
	if err := t.gate.Check(g); err != nil {
		return 0, err
	}
	t.votes[voter] = struct{}{}
	return uint64(len(t.votes)), nil
}

// Votes returns the number of unique votes recorded.
func (t *Tracker) Votes() uint64 { return uint64(len(t.votes)) }

// Eligible returns the size of the voting population.
func (t *Tracker) Eligible() uint64 { return t.eligible }

// Reached reports whether the recorded votes meet the quorum.
func (t *Tracker) Reached() bool {
	return t.quorum.HasQuorum(t.Votes(), t.eligible)
}

// Reset clears all recorded votes.
func (t *Tracker) Reset(g gas.Budget) error {
	if err := t.gate.Check(g); err != nil {
		return err
	}
	t.votes = make(map[string]struct{})
	return nil
}
