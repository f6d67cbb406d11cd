// Package contract holds the pieces every contract module shares: the
// construction errors and the descriptor a dispatcher uses to identify a
// module instance.
package contract

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrInvalidConstruction is returned by module constructors when a
	// configuration invariant is violated. No instance is created.
	ErrInvalidConstruction = errors.New("contract: invalid construction")
	// ErrOverflow is returned when an additive update would wrap a uint64 balance.
	ErrOverflow = errors.New("contract: balance overflow")
)

// Descriptor identifies a module to the external dispatcher.
type Descriptor struct {
	Name    string          `json:"name"`
	Version *semver.Version `json:"version"`
}

// NewDescriptor parses version and returns a descriptor for name.
func NewDescriptor(name, version string) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty module name", ErrInvalidConstruction)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: module %q version %q: %v", ErrInvalidConstruction, name, version, err)
	}
	return Descriptor{Name: name, Version: v}, nil
}

// MustDescriptor is NewDescriptor for package-level declarations.
func MustDescriptor(name, version string) Descriptor {
	d, err := NewDescriptor(name, version)
	if err != nil {
		panic(err)
	}
	return d
}

// Satisfies reports whether the descriptor's version meets constraint.
// An empty constraint is always satisfied.
func (d Descriptor) Satisfies(constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%w: constraint %q: %v", ErrInvalidConstruction, constraint, err)
	}
	return c.Check(d.Version), nil
}

func (d Descriptor) String() string {
	if d.Version == nil {
		return d.Name
	}
	return d.Name + "@" + d.Version.String()
}
