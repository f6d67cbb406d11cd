// Package shard maps shard identifiers to the ordered list of nodes
// assigned to them.
package shard

import (
	"slices"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// ID identifies a shard.
type ID uint32

// Table is the shard assignment contract. Node lists keep assignment order
// and may contain duplicates.
type Table struct {
	gate   *gas.Gate
	shards map[ID][]string
}

// NewTable returns an empty assignment table.
func NewTable(opts ...gas.Option) *Table {
	return &Table{
		gate:   gas.NewGate("shard", opts...),
		shards: make(map[ID][]string),
	}
}

// Assign appends node to shard, creating the shard if it is unknown.
func (t *Table) Assign(g gas.Budget, shard ID, node string) error {
	if err := t.gate.Check(g); err != nil {
		return err
	}
	t.shards[shard] = append(t.shards[shard], node)
	return nil
}

// NodesFor returns a copy of the nodes assigned to shard. The second result
// is false for an unknown shard, which is distinct from a known shard with
// no nodes.
func (t *Table) NodesFor(shard ID) ([]string, bool) {
	nodes, ok := t.shards[shard]
	if !ok {
		return nil, false
	}
	out := make([]string, len(nodes))
	copy(out, nodes)
	return out, true
}

// Shards returns the known shard IDs in ascending order.
func (t *Table) Shards() []ID {
	out := make([]ID, 0, len(t.shards))
	for id := range t.shards {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
