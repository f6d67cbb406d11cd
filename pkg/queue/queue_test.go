package queue

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

func TestQueueFIFO(t *testing.T) {
	q := New[int]()

	require.NoError(t, q.Enqueue(1, 1))
	require.NoError(t, q.Enqueue(1, 2))
	assert.Equal(t, 2, q.Len())

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, head)

	v, ok, err := q.Dequeue(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, q.Len())

	v, ok, err = q.Dequeue(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0, q.Len())

	v, ok, err = q.Dequeue(1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)

	_, ok = q.Peek()
	assert.False(t, ok)
}

func TestQueueZeroGas(t *testing.T) {
	q := New[string]()
	require.NoError(t, q.Enqueue(1, "msg"))

	assert.ErrorIs(t, q.Enqueue(0, "other"), gas.ErrInsufficientGas)
	_, _, err := q.Dequeue(0)
	assert.ErrorIs(t, err, gas.ErrInsufficientGas)
	assert.Equal(t, 1, q.Len())
}

func TestQueuePreservesOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("interleaved operations behave like a slice model", prop.ForAll(
		func(ops []int) bool {
			q := New[int]()
			var model []int
			for i, op := range ops {
				if op%3 == 0 {
					v, ok, err := q.Dequeue(1)
					if err != nil {
						return false
					}
					if len(model) == 0 {
						if ok {
							return false
						}
						continue
					}
					if !ok || v != model[0] {
						return false
					}
					model = model[1:]
				} else {
					if err := q.Enqueue(1, i); err != nil {
						return false
					}
					model = append(model, i)
				}
				if q.Len() != len(model) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	properties.TestingRun(t)
}
