package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Mindburn-Labs/contracts/pkg/config"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
	"github.com/Mindburn-Labs/contracts/pkg/observability"
	"github.com/Mindburn-Labs/contracts/pkg/suite"
)

type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}

// runDoctorCmd implements `contracts doctor`.
func runDoctorCmd(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modulesFile := fs.String("modules", cfg.ModulesFile, "Path to the module configuration file")
	jsonOut := fs.Bool("json", false, "Emit results as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(cfg, stderr)

	var reader *sdkmetric.ManualReader
	var opts []suite.Option
	opts = append(opts, suite.WithLogger(logger))
	if cfg.MetricsEnabled {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = provider.Shutdown(context.Background()) }()
		m, err := observability.NewMetrics(provider.Meter("contracts-doctor"))
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		opts = append(opts, suite.WithObserver(m))
	}

	var results []checkResult
	allOK := true
	fail := func(name string, err error) {
		results = append(results, checkResult{Name: name, Status: "fail", Detail: err.Error()})
		allOK = false
	}

	modules, err := config.LoadModules(*modulesFile)
	if err != nil {
		fail("module_file", err)
		return report(stdout, results, allOK, *jsonOut)
	}
	results = append(results, checkResult{Name: "module_file", Status: "ok", Detail: *modulesFile})

	s, err := suite.New(modules, opts...)
	if err != nil {
		fail("construction", err)
		return report(stdout, results, allOK, *jsonOut)
	}
	results = append(results, checkResult{
		Name:   "construction",
		Status: "ok",
		Detail: fmt.Sprintf("%d modules", len(suite.Descriptors())),
	})

	for _, probe := range gateProbes(s) {
		err := probe.call()
		switch {
		case errors.Is(err, gas.ErrInsufficientGas):
			results = append(results, checkResult{Name: "gate_" + probe.module, Status: "ok", Detail: "zero gas rejected"})
		case err == nil:
			fail("gate_"+probe.module, errors.New("zero gas admitted"))
		default:
			fail("gate_"+probe.module, err)
		}
	}

	if reader != nil {
		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			results = append(results, checkResult{Name: "gas_metrics", Status: "warn", Detail: err.Error()})
		} else {
			results = append(results, checkResult{Name: "gas_metrics", Status: "ok", Detail: fmt.Sprintf("%d rejections recorded", rejected(rm))})
		}
	}

	return report(stdout, results, allOK, *jsonOut)
}

type gateProbe struct {
	module string
	call   func() error
}

// gateProbes calls every mutating entry point once with a zero budget.
func gateProbes(s *suite.Suite) []gateProbe {
	epoch := time.Unix(0, 0).UTC()
	return []gateProbe{
		{"wallet", func() error { return s.Wallet.Deposit(0, 1) }},
		{"pension", func() error { return s.Pension.Contribute(0, "probe", 1) }},
		{"quorum", func() error { _, err := s.Votes.Vote(0, "probe"); return err }},
		{"identity", func() error { return s.Identity.Issue(0, "probe", "probe", epoch) }},
		{"certification", func() error { _, err := s.Certification.Certify(0, "probe"); return err }},
		{"firewall", func() error { _, err := s.Firewall.Allow(0, "probe"); return err }},
		{"oracle", func() error { return s.Oracle.Set(0, "probe", nil) }},
		{"bootstrap", func() error { _, err := s.Bootstrap.AddNode(0, "probe"); return err }},
		{"shard", func() error { return s.Shards.Assign(0, 0, "probe") }},
		{"replication", func() error { return s.Replication.Replicate(0, "probe", nil) }},
		{"auditlog", func() error { _, err := s.Audit.Record(0, epoch, "probe"); return err }},
		{"queue", func() error { return s.Messages.Enqueue(0, nil) }},
	}
}

func rejected(rm metricdata.ResourceMetrics) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "contracts.gas.rejected" {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func report(stdout io.Writer, results []checkResult, allOK, jsonOut bool) int {
	if jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"ok": allOK, "checks": results})
	} else {
		fmt.Fprintf(stdout, "\n%sContracts Doctor%s\n", ColorBold+ColorPurple, ColorReset)
		fmt.Fprintln(stdout, "────────────────")
		for _, r := range results {
			icon, color := "✅", ColorGray
			if r.Status == "warn" {
				icon, color = "⚠️ ", ColorYellow
			} else if r.Status == "fail" {
				icon, color = "❌", ColorRed
			}
			fmt.Fprintf(stdout, "  %s  %-20s %s%s%s\n", icon, r.Name, color, r.Detail, ColorReset)
		}
		if allOK {
			fmt.Fprintf(stdout, "\n%sAll checks passed.%s\n", ColorGreen+ColorBold, ColorReset)
		} else {
			fmt.Fprintf(stdout, "\n%sSome checks failed.%s\n", ColorRed+ColorBold, ColorReset)
		}
	}
	if allOK {
		return 0
	}
	return 1
}
