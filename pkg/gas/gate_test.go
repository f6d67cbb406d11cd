package gas

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	admitted []string
	rejected []string
}

func (r *recordingObserver) GasAdmitted(module string, _ Budget) { r.admitted = append(r.admitted, module) }
func (r *recordingObserver) GasRejected(module string, _ Budget) { r.rejected = append(r.rejected, module) }

func TestCheck(t *testing.T) {
	assert.ErrorIs(t, Check(0), ErrInsufficientGas)
	assert.NoError(t, Check(1))
	assert.NoError(t, Check(^Budget(0)))
}

func TestCheckAdmitsExactlyPositiveBudgets(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Check succeeds iff gas > 0", prop.ForAll(
		func(g uint64) bool {
			err := Check(Budget(g))
			return (err == nil) == (g > 0)
		},
		gen.OneGenOf(gen.Const(uint64(0)), gen.UInt64()),
	))

	properties.TestingRun(t)
}

func TestGateWrapsModuleName(t *testing.T) {
	obs := &recordingObserver{}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := NewGate("wallet", WithObserver(obs), WithLogger(logger))
	assert.Equal(t, "wallet", g.Module())

	err := g.Check(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientGas)
	assert.Contains(t, err.Error(), "wallet")
	assert.Contains(t, buf.String(), "gas rejected")
	assert.Contains(t, buf.String(), "module=wallet")

	require.NoError(t, g.Check(21000))
	assert.Equal(t, []string{"wallet"}, obs.admitted)
	assert.Equal(t, []string{"wallet"}, obs.rejected)
}

func TestNilAndZeroGate(t *testing.T) {
	var nilGate *Gate
	assert.ErrorIs(t, nilGate.Check(0), ErrInsufficientGas)
	assert.NoError(t, nilGate.Check(5))
	assert.Equal(t, "", nilGate.Module())

	var zero Gate
	assert.ErrorIs(t, zero.Check(0), ErrInsufficientGas)
	assert.NoError(t, zero.Check(5))
}
