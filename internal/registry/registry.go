package registry

// Entry records one discovered domain for the life of the process. Broken
// domains stay recorded as broken so diagnostics can explain what failed,
// rather than vanishing from listings.
type Entry struct {
	Name   string
	Path   string
	Module Module
	Loaded bool
	// Err is populated exactly when Loaded is false.
	Err string
}

// Registry holds one entry per discovered domain in discovery order. It is
// built once at startup and read-only afterwards, so concurrent reads need
// no synchronization.
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// Build constructs a registry from discovery results. Valid results become
// loaded entries carrying their module; invalid results become failed
// entries carrying the discovery error. Domain names share one global
// namespace: a duplicate fails the whole build with a *NameCollisionError.
func Build(results []DiscoveryResult) (*Registry, error) {
	registry := &Registry{
		entries: make([]Entry, 0, len(results)),
		byName:  make(map[string]int, len(results)),
	}

	for _, result := range results {
		if first, ok := registry.byName[result.Name]; ok {
			return nil, &NameCollisionError{
				Kind:   "domain",
				Name:   result.Name,
				First:  registry.entries[first].Path,
				Second: result.Path,
			}
		}

		entry := Entry{Name: result.Name, Path: result.Path}
		if result.IsValid {
			entry.Loaded = true
			entry.Module = result.module
		} else {
			entry.Err = result.Err
		}

		registry.byName[result.Name] = len(registry.entries)
		registry.entries = append(registry.entries, entry)
	}

	return registry, nil
}

// Entries returns the registry entries in discovery order. The returned
// slice is a copy; the registry itself never changes after Build.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Get returns the entry for a domain name.
func (r *Registry) Get(name string) (Entry, bool) {
	index, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[index], true
}

// Len returns the number of entries, loaded or not.
func (r *Registry) Len() int { return len(r.entries) }

// LoadedCount returns the number of successfully loaded domains.
func (r *Registry) LoadedCount() int {
	count := 0
	for _, entry := range r.entries {
		if entry.Loaded {
			count++
		}
	}
	return count
}
