package registry

import (
	"bytes"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Oracle is a key/value store for externally reported data. Values are
// copied on the way in and on the way out.
type Oracle struct {
	m *Map[string, []byte]
}

// NewOracle returns an empty oracle store.
func NewOracle(opts ...gas.Option) *Oracle {
	return &Oracle{m: NewMap[string, []byte]("oracle", opts...)}
}

// Set stores value under key.
func (o *Oracle) Set(g gas.Budget, key string, value []byte) error {
	_, err := o.m.Put(g, canonical(key), bytes.Clone(value))
	return err
}

// Delete removes key.
func (o *Oracle) Delete(g gas.Budget, key string) error {
	return o.m.Delete(g, canonical(key))
}

// Get returns a copy of the value for key.
func (o *Oracle) Get(key string) ([]byte, bool) {
	v, ok := o.m.Get(canonical(key))
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

// Keys returns the stored keys in sorted order.
func (o *Oracle) Keys() []string { return sortedKeys(o.m) }
