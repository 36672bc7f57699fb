package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// MethodInfo is the discoverable identity of a registered method.
type MethodInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry is a name-keyed lookup over analysis methods. Registering the
// same name twice is a no-op, so listings never carry duplicates.
type Registry struct {
	methods map[string]Method
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Method)}
}

// Register adds a method under its own name. Re-registering a name keeps
// the first registration.
func (r *Registry) Register(m Method) {
	if _, ok := r.methods[m.Name()]; ok {
		return
	}
	r.methods[m.Name()] = m
}

// Get returns the method registered under name. An unknown name is a
// reported error listing the available methods, not a crash.
func (r *Registry) Get(name string) (Method, error) {
	m, ok := r.methods[name]
	if !ok {
		names := make([]string, 0, len(r.methods))
		for n := range r.methods {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown analysis method %q; available: %s", name, strings.Join(names, ", "))
	}
	return m, nil
}

// List returns the registered methods as {name, description} pairs in
// name order.
func (r *Registry) List() []MethodInfo {
	out := make([]MethodInfo, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, MethodInfo{Name: m.Name(), Description: m.Describe()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns a registry with all six analysis methods registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(&AsPlannedVsAsBuilt{})
	r.Register(&ImpactedAsPlanned{})
	r.Register(&CollapsedAsBuilt{})
	r.Register(&TimeImpact{})
	r.Register(&Windows{})
	r.Register(&Contemporaneous{})
	return r
}
