// Package observability exports gas gate decisions as OpenTelemetry metrics.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

const instrumentationName = "github.com/Mindburn-Labs/contracts"

// Metrics counts admitted and rejected calls per module. It implements
// gas.Observer.
type Metrics struct {
	admitted metric.Int64Counter
	rejected metric.Int64Counter
}

var _ gas.Observer = (*Metrics)(nil)

// NewMetrics creates the gas counters on meter. A nil meter uses the global
// meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	admitted, err := meter.Int64Counter("contracts.gas.admitted",
		metric.WithDescription("Calls admitted by the gas gate"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create admitted counter: %w", err)
	}
	rejected, err := meter.Int64Counter("contracts.gas.rejected",
		metric.WithDescription("Calls rejected for insufficient gas"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rejected counter: %w", err)
	}
	return &Metrics{admitted: admitted, rejected: rejected}, nil
}

// GasAdmitted counts a call that passed the gas gate.
func (m *Metrics) GasAdmitted(module string, _ gas.Budget) {
	m.admitted.Add(context.Background(), 1, metric.WithAttributes(attribute.String("module", module)))
}

// GasRejected counts a call the gas gate turned away.
func (m *Metrics) GasRejected(module string, _ gas.Budget) {
	m.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("module", module)))
}
