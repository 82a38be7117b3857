// Package probe defines the conformance probe framework: the probe contract,
// an ordered registry, the per-run scratch environment, and the sequential
// runner that turns probe outcomes into a process exit decision.
package probe

import (
	"fmt"
	"sort"

	"github.com/conformd/posixprobe/pkg/check"
)

// Probe is one self-contained conformance program. Run performs a fixed
// sequence of operations against the real operating system and records every
// expectation on the supplied state. Run must not panic on assertion
// failure; a probe that cannot acquire a resource records the failure and
// returns, leaving independent probes unaffected.
type Probe struct {
	Name    string
	Summary string
	Run     func(st *check.State, env *Env)
}

// Registry holds probes in registration order.
type Registry struct {
	order  []string
	byName map[string]Probe
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Probe)}
}

// Register adds a probe. Names must be unique.
func (r *Registry) Register(p Probe) error {
	if p.Name == "" {
		return fmt.Errorf("probe name is required")
	}
	if p.Run == nil {
		return fmt.Errorf("probe %s has no run function", p.Name)
	}
	if _, exists := r.byName[p.Name]; exists {
		return fmt.Errorf("probe %s is already registered", p.Name)
	}
	r.byName[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Lookup returns the probe registered under name.
func (r *Registry) Lookup(name string) (Probe, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns all registered probe names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Select resolves names to probes, preserving the requested order. An empty
// request selects every registered probe. Unknown names are a caller error,
// not a probe failure.
func (r *Registry) Select(names []string) ([]Probe, error) {
	if len(names) == 0 {
		names = r.order
	}
	probes := make([]Probe, 0, len(names))
	var unknown []string
	for _, name := range names {
		p, ok := r.byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		probes = append(probes, p)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown probe(s): %v", unknown)
	}
	return probes, nil
}
