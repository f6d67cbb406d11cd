// Package registry provides the keyed-mapping contract modules: a generic
// Map and membership Set, and the domain registries built on them
// (identity tokens, green certification, firewall allow-list, oracle
// values and the node bootstrap set).
//
// Inserts overwrite and removals of absent keys are no-ops; neither fails
// except on gas.
package registry

import (
	"cmp"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Map is a gas-gated K→V mapping with no ordering guarantee.
type Map[K comparable, V any] struct {
	gate    *gas.Gate
	entries map[K]V
}

// NewMap returns an empty map reporting to the gas gate as module.
func NewMap[K comparable, V any](module string, opts ...gas.Option) *Map[K, V] {
	return &Map[K, V]{
		gate:    gas.NewGate(module, opts...),
		entries: make(map[K]V),
	}
}

// Put stores v under k and reports whether k was new.
func (m *Map[K, V]) Put(g gas.Budget, k K, v V) (bool, error) {
	if err := m.gate.Check(g); err != nil {
		return false, err
	}
	_, existed := m.entries[k]
	m.entries[k] = v
	return !existed, nil
}

// Delete removes k. Removing an absent key is not an error.
func (m *Map[K, V]) Delete(g gas.Budget, k K) error {
	if err := m.gate.Check(g); err != nil {
		return err
	}
	delete(m.entries, k)
	return nil
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.entries[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.entries) }

// Set is a gas-gated membership registry.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet returns an empty set reporting to the gas gate as module.
func NewSet[K comparable](module string, opts ...gas.Option) *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}](module, opts...)}
}

// Add inserts k and reports whether it was new. Callers use the flag to
// detect duplicate registrations.
func (s *Set[K]) Add(g gas.Budget, k K) (bool, error) {
	return s.m.Put(g, k, struct{}{})
}

// Remove deletes k if present.
func (s *Set[K]) Remove(g gas.Budget, k K) error {
	return s.m.Delete(g, k)
}

// Contains reports membership of k.
func (s *Set[K]) Contains(k K) bool { return s.m.Contains(k) }

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.m.Len() }

func sortedKeys[K cmp.Ordered, V any](m *Map[K, V]) []K {
	out := make([]K, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// canonical normalises string keys to NFC so visually identical
// identifiers map to one entry.
func canonical(s string) string {
	return norm.NFC.String(s)
}
