// Package threshold evaluates fault-tolerance and quorum ratios.
//
// The two evaluators disagree on a zero total on purpose: with no
// participants nothing is faulty, but no quorum can be reached either. They
// are separate types so the edge case cannot be flipped by a shared flag.
package threshold

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
)

func checkBound(kind string, bound float64) error {
	if math.IsNaN(bound) || bound < 0 || bound > 1 {
		return fmt.Errorf("%w: %s bound %v outside [0,1]", contract.ErrInvalidConstruction, kind, bound)
	}
	return nil
}

// ratio is a bound held as an exact fraction. The float is read as its
// shortest decimal form, so a configured 0.66 means 66/100.
type ratio struct {
	num, den *big.Int
}

func newRatio(bound float64) ratio {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(bound, 'g', -1, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(bound)
	}
	return ratio{num: new(big.Int).Set(r.Num()), den: new(big.Int).Set(r.Denom())}
}

// cmp compares n against bound*total without rounding.
func (r ratio) cmp(n, total uint64) int {
	lhs := new(big.Int).Mul(new(big.Int).SetUint64(n), r.den)
	rhs := new(big.Int).Mul(new(big.Int).SetUint64(total), r.num)
	return lhs.Cmp(rhs)
}

// FaultTolerance reports whether a number of faulty participants stays within
// the tolerated fraction of the total.
type FaultTolerance struct {
	bound float64
	exact ratio
}

// NewFaultTolerance returns an evaluator tolerating up to bound*total faults.
func NewFaultTolerance(bound float64) (*FaultTolerance, error) {
	if err := checkBound("fault tolerance", bound); err != nil {
		return nil, err
	}
	return &FaultTolerance{bound: bound, exact: newRatio(bound)}, nil
}

// Bound returns the configured maximum faulty fraction.
func (f *FaultTolerance) Bound() float64 { return f.bound }

// Tolerated reports count <= bound*total. A zero total is always tolerated.
func (f *FaultTolerance) Tolerated(count, total uint64) bool {
	if total == 0 {
		return true
	}
	return f.exact.cmp(count, total) <= 0
}

// Quorum reports whether a vote count reaches the required ratio.
type Quorum struct {
	bound float64
	exact ratio
}

// NewQuorum returns an evaluator requiring votes/total >= bound.
func NewQuorum(bound float64) (*Quorum, error) {
	if err := checkBound("quorum", bound); err != nil {
		return nil, err
	}
	return &Quorum{bound: bound, exact: newRatio(bound)}, nil
}

// Bound returns the configured minimum vote ratio.
func (q *Quorum) Bound() float64 { return q.bound }

// HasQuorum reports votes/total >= bound. A zero total never has quorum.
func (q *Quorum) HasQuorum(votes, total uint64) bool {
	if total == 0 {
		return false
	}
	return q.exact.cmp(votes, total) >= 0
}
