package registry

import "github.com/Mindburn-Labs/contracts/pkg/gas"

// membership is the shared shape of the string-keyed membership registries.
type membership struct {
	set *Set[string]
}

func newMembership(module string, opts ...gas.Option) membership {
	return membership{set: NewSet[string](module, opts...)}
}

func (m membership) add(g gas.Budget, k string) (bool, error) {
	return m.set.Add(g, canonical(k))
}

func (m membership) remove(g gas.Budget, k string) error {
	return m.set.Remove(g, canonical(k))
}

func (m membership) contains(k string) bool { return m.set.Contains(canonical(k)) }

func (m membership) list() []string { return sortedKeys(m.set.m) }

// Certifications records green-certified participants.
type Certifications struct{ membership }

// NewCertifications returns an empty certification registry.
func NewCertifications(opts ...gas.Option) *Certifications {
	return &Certifications{newMembership("certification", opts...)}
}

// Certify marks addr as certified and reports whether it was newly certified.
func (c *Certifications) Certify(g gas.Budget, addr string) (bool, error) { return c.add(g, addr) }

// Revoke withdraws the certification of addr.
func (c *Certifications) Revoke(g gas.Budget, addr string) error { return c.remove(g, addr) }

// IsCertified reports whether addr holds a certification.
func (c *Certifications) IsCertified(addr string) bool { return c.contains(addr) }

// List returns certified addresses in sorted order.
func (c *Certifications) List() []string { return c.list() }

// Allowlist is the firewall allow-list.
type Allowlist struct{ membership }

// NewAllowlist returns an empty allow-list.
func NewAllowlist(opts ...gas.Option) *Allowlist {
	return &Allowlist{newMembership("firewall", opts...)}
}

// Allow admits addr and reports whether it was newly added.
func (a *Allowlist) Allow(g gas.Budget, addr string) (bool, error) { return a.add(g, addr) }

// Remove drops addr from the allow-list.
func (a *Allowlist) Remove(g gas.Budget, addr string) error { return a.remove(g, addr) }

// Allowed reports whether addr passes the firewall.
func (a *Allowlist) Allowed(addr string) bool { return a.contains(addr) }

// List returns the allowed addresses in sorted order.
func (a *Allowlist) List() []string { return a.list() }

// Bootstrap is the set of nodes a new peer may bootstrap from.
type Bootstrap struct{ membership }

// NewBootstrap returns an empty bootstrap set.
func NewBootstrap(opts ...gas.Option) *Bootstrap {
	return &Bootstrap{newMembership("bootstrap", opts...)}
}

// AddNode registers node and reports whether it was new.
func (b *Bootstrap) AddNode(g gas.Budget, node string) (bool, error) { return b.add(g, node) }

// RemoveNode deregisters node.
func (b *Bootstrap) RemoveNode(g gas.Budget, node string) error { return b.remove(g, node) }

// Has reports whether node is registered.
func (b *Bootstrap) Has(node string) bool { return b.contains(node) }

// Nodes returns the registered nodes in sorted order.
func (b *Bootstrap) Nodes() []string { return b.list() }
