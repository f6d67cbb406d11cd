// Package replication fans a single logical write out to per-node storage
// keys.
package replication

import (
	"bytes"
	"fmt"

	"github.com/Mindburn-Labs/contracts/pkg/contract"
	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Key addresses one replica.
type Key struct {
	ID   string
	Node string
}

// Fanout stores one independent copy of every write per configured node.
type Fanout struct {
	gate     *gas.Gate
	nodes    []string
	replicas map[Key][]byte
}

// NewFanout returns a fan-out over nodes. The node list is fixed for the life
// of the instance, must be non-empty and must not repeat a node.
func NewFanout(nodes []string, opts ...gas.Option) (*Fanout, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: replication needs at least one node", contract.ErrInvalidConstruction)
	}
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: replication node %q listed twice", contract.ErrInvalidConstruction, n)
		}
		seen[n] = struct{}{}
	}
	return &Fanout{
		gate:     gas.NewGate("replication", opts...),
		nodes:    append([]string(nil), nodes...),
		replicas: make(map[Key][]byte),
	}, nil
}

// Nodes returns the configured node list.
func (f *Fanout) Nodes() []string {
	return append([]string(nil), f.nodes...)
}

// Replicate stores a copy of payload for id on every node, replacing any
// earlier copies of id.
func (f *Fanout) Replicate(g gas.Budget, id string, payload []byte) error {
	if err := f.gate.Check(g); err != nil {
		return err
	}
	for _, n := range f.nodes {
		cp := make([]byte, len(payload))
		copy(cp, payload)
		f.replicas[Key{ID: id, Node: n}] = cp
	}
	return nil
}

// Replica returns a copy of the payload stored for id on node.
func (f *Fanout) Replica(id, node string) ([]byte, bool) {
	v, ok := f.replicas[Key{ID: id, Node: node}]
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

// ReplicaCount returns the number of stored replicas across all ids and
// nodes.
func (f *Fanout) ReplicaCount() int { return len(f.replicas) }
