// Package suite constructs one instance of every contract module from the
// module configuration. It is the object an external dispatcher holds.
package suite

import (
	"fmt"
	"log/slog"

	"github.com/Mindburn-Labs/contracts/pkg/auditlog"
	"github.com/Mindburn-Labs/contracts/pkg/config"
	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
	"github.com/Mindburn-Labs/contracts/pkg/queue"
	"github.com/Mindburn-Labs/contracts/pkg/registry"
	"github.com/Mindburn-Labs/contracts/pkg/replication"
	"github.com/Mindburn-Labs/contracts/pkg/shard"
	"github.com/Mindburn-Labs/contracts/pkg/threshold"
	"github.com/Mindburn-Labs/contracts/pkg/timelock"
)

// Module versions reported to the dispatcher.
var descriptors = []contract.Descriptor{
	contract.MustDescriptor("wallet", "1.0.0"),
	contract.MustDescriptor("pension", "1.0.0"),
	contract.MustDescriptor("fault_tolerance", "1.0.0"),
	contract.MustDescriptor("quorum", "1.1.0"),
	contract.MustDescriptor("identity", "1.0.0"),
	contract.MustDescriptor("certification", "1.0.0"),
	contract.MustDescriptor("firewall", "1.1.0"),
	contract.MustDescriptor("oracle", "1.0.0"),
	contract.MustDescriptor("bootstrap", "1.0.0"),
	contract.MustDescriptor("shard", "1.0.0"),
	contract.MustDescriptor("replication", "1.0.0"),
	contract.MustDescriptor("auditlog", "1.1.0"),
	contract.MustDescriptor("queue", "1.0.0"),
}

// Descriptors returns the descriptors of every module in the suite.
func Descriptors() []contract.Descriptor {
	return append([]contract.Descriptor(nil), descriptors...)
}

// Suite holds one instance of each contract module.
type Suite struct {
	Wallet         *timelock.Wallet
	Pension        *timelock.Pension
	FaultTolerance *threshold.FaultTolerance
	Quorum         *threshold.Quorum
	Votes          *threshold.Tracker
	Identity       *registry.Tokens
	Certification  *registry.Certifications
	Firewall       *registry.Allowlist
	Oracle         *registry.Oracle
	Bootstrap      *registry.Bootstrap
	Shards         *shard.Table
	Replication    *replication.Fanout
	Audit          *auditlog.Log
	Messages       *queue.Queue[[]byte]
}

type options struct {
	logger   *slog.Logger
	observer gas.Observer
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger shared by every module gate.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver sets the gas observer shared by every module gate.
func WithObserver(obs gas.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New builds the suite. It fails with contract.ErrInvalidConstruction when
// any module rejects its configuration or a module version does not satisfy
// cfg.Requires.
func New(cfg *config.Modules, opts ...Option) (*Suite, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil module configuration", contract.ErrInvalidConstruction)
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	for _, d := range descriptors {
		ok, err := d.Satisfies(cfg.Requires)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s does not satisfy %q", contract.ErrInvalidConstruction, d, cfg.Requires)
		}
	}

	gasOpts := []gas.Option{gas.WithLogger(o.logger)}
	if o.observer != nil {
		gasOpts = append(gasOpts, gas.WithObserver(o.observer))
	}

	ft, err := threshold.NewFaultTolerance(cfg.FaultTolerance.Bound)
	if err != nil {
		return nil, err
	}
	q, err := threshold.NewQuorum(cfg.Quorum.Bound)
	if err != nil {
		return nil, err
	}
	votes, err := threshold.NewTracker(q, cfg.Quorum.Eligible, gasOpts...)
	if err != nil {
		return nil, err
	}
	fan, err := replication.NewFanout(cfg.Replication.Nodes, gasOpts...)
	if err != nil {
		return nil, err
	}

	s := &Suite{
		Wallet:         timelock.NewWallet(cfg.Wallet.ReleaseMarker, gasOpts...),
		Pension:        timelock.NewPension(cfg.Pension.ReleaseEpoch, gasOpts...),
		FaultTolerance: ft,
		Quorum:         q,
		Votes:          votes,
		Identity:       registry.NewTokens(gasOpts...),
		Certification:  registry.NewCertifications(gasOpts...),
		Firewall:       registry.NewAllowlist(gasOpts...),
		Oracle:         registry.NewOracle(gasOpts...),
		Bootstrap:      registry.NewBootstrap(gasOpts...),
		Shards:         shard.NewTable(gasOpts...),
		Replication:    fan,
		Audit:          auditlog.New(gasOpts...),
		Messages:       queue.New[[]byte](gasOpts...),
	}
	o.logger.Debug("contract suite constructed", "modules", len(descriptors))
	return s, nil
}
