package capability

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps actor type names to their resolved profiles. It is built
// once at load time and read-only afterwards.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry resolves every definition. The first malformed definition
// aborts construction; a partially loaded registry is never returned.
func NewRegistry(defs map[string]Definition) (*Registry, error) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	// Deterministic error reporting when several definitions are broken.
	sort.Strings(names)

	r := &Registry{profiles: make(map[string]*Profile, len(defs))}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty actor type name", ErrMalformedTag)
		}
		p, err := defs[name].Resolve()
		if err != nil {
			return nil, fmt.Errorf("actor %q: %w", name, err)
		}
		r.profiles[key] = p
	}
	return r, nil
}

// Profile returns the profile for typeName, or nil if the type is not
// AI-queryable. Faction variants such as "fact.england" fall back to "fact".
func (r *Registry) Profile(typeName string) *Profile {
	if r == nil {
		return nil
	}
	key := strings.ToLower(typeName)
	if p, ok := r.profiles[key]; ok {
		return p
	}
	if idx := strings.IndexByte(key, '.'); idx >= 0 {
		return r.profiles[key[:idx]]
	}
	return nil
}

// Len returns the number of registered actor types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}
