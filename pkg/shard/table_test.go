package shard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

func TestTable(t *testing.T) {
	tbl := NewTable()

	require.NoError(t, tbl.Assign(1, 1, "node-a"))
	require.NoError(t, tbl.Assign(1, 1, "node-b"))

	nodes, ok := tbl.NodesFor(1)
	require.True(t, ok)
	assert.Equal(t, []string{"node-a", "node-b"}, nodes)

	nodes, ok = tbl.NodesFor(2)
	assert.False(t, ok)
	assert.Nil(t, nodes)

	t.Run("duplicates are kept in order", func(t *testing.T) {
		require.NoError(t, tbl.Assign(1, 1, "node-a"))
		nodes, _ := tbl.NodesFor(1)
		assert.Equal(t, []string{"node-a", "node-b", "node-a"}, nodes)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		nodes, _ := tbl.NodesFor(1)
		nodes[0] = "mutated"
		again, _ := tbl.NodesFor(1)
		assert.Equal(t, "node-a", again[0])
	})

	t.Run("zero gas creates nothing", func(t *testing.T) {
		assert.ErrorIs(t, tbl.Assign(0, 9, "node-z"), gas.ErrInsufficientGas)
		_, ok := tbl.NodesFor(9)
		assert.False(t, ok)
	})

	require.NoError(t, tbl.Assign(1, 0, "node-c"))
	assert.Equal(t, []ID{0, 1}, tbl.Shards())
}
