package bench

import (
	"fmt"
	"slices"
)

// Registry holds the benchmark targets in registration order. Registration
// order is the only defined order: it is stable across runs and drives both
// execution order and report order. Targets are fixed for the process
// lifetime; there is no removal.
type Registry struct {
	names   map[string]struct{}
	targets []Target
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a named target. Names must be unique; a second registration
// under the same name fails with ErrDuplicateName.
func (r *Registry) Register(name string, read ReadFunc) error {
	if name == "" {
		return fmt.Errorf("register target: name must not be empty")
	}
	if read == nil {
		return fmt.Errorf("register target %q: read func must not be nil", name)
	}
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("register target %q: %w", name, ErrDuplicateName)
	}
	r.names[name] = struct{}{}
	r.targets = append(r.targets, Target{Name: name, Read: read})
	return nil
}

// Targets returns the registered targets in registration order.
func (r *Registry) Targets() []Target {
	return slices.Clone(r.targets)
}

// Names returns the registered target names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.targets))
	for i, t := range r.targets {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// Filter returns a new Registry holding only the named targets, preserving
// this Registry's registration order regardless of the order names are given
// in. An unknown name is a configuration error.
func (r *Registry) Filter(names []string) (*Registry, error) {
	for _, name := range names {
		if _, ok := r.names[name]; !ok {
			return nil, &InvalidConfigError{
				Reason: fmt.Sprintf("unknown target %q (known: %v)", name, r.Names()),
			}
		}
	}
	keep := make(map[string]struct{}, len(names))
	for _, name := range names {
		keep[name] = struct{}{}
	}
	filtered := NewRegistry()
	for _, t := range r.targets {
		if _, ok := keep[t.Name]; ok {
			if err := filtered.Register(t.Name, t.Read); err != nil {
				return nil, err
			}
		}
	}
	return filtered, nil
}
