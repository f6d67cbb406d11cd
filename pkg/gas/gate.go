// Package gas implements the precondition every contract module applies
// before mutating its state.
//
// The gate only checks that a budget was supplied. Cost accounting belongs to
// the external gas table; any positive budget is admitted.
package gas

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInsufficientGas is returned when a call carries a zero budget. Callers
// may retry with a larger budget.
var ErrInsufficientGas = errors.New("gas: insufficient gas")

// Budget is the caller-supplied gas allowance for a single call.
type Budget uint64

// Check admits any non-zero budget.
func Check(g Budget) error {
	if g == 0 {
		return ErrInsufficientGas
	}
	return nil
}

// Observer is notified of every gate decision.
type Observer interface {
	GasAdmitted(module string, g Budget)
	GasRejected(module string, g Budget)
}

// Gate applies Check on behalf of a named module.
// The zero value is usable and behaves like a gate with no name, logger or observer.
type Gate struct {
	module   string
	logger   *slog.Logger
	observer Observer
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for rejected calls.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithObserver attaches an observer to the gate.
func WithObserver(o Observer) Option {
	return func(g *Gate) { g.observer = o }
}

// NewGate returns a gate for module.
func NewGate(module string, opts ...Option) *Gate {
	g := &Gate{module: module, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Module returns the name the gate reports under.
func (g *Gate) Module() string {
	if g == nil {
		return ""
	}
	return g.module
}

// Check runs the gas precondition. A rejection is wrapped with the module
// name and still matches ErrInsufficientGas.
func (g *Gate) Check(budget Budget) error {
	if g == nil {
		return Check(budget)
	}
	if err := Check(budget); err != nil {
		if g.logger != nil {
			g.logger.Debug("gas rejected", "module", g.module, "gas", uint64(budget))
		}
		if g.observer != nil {
			g.observer.GasRejected(g.module, budget)
		}
		if g.module == "" {
			return err
		}
		return fmt.Errorf("%s: %w", g.module, err)
	}
	if g.observer != nil {
		g.observer.GasAdmitted(g.module, budget)
	}
	return nil
}
