package registry

import (
	"fmt"
	"sort"
	"strings"
)

// DiscoveryResult reports one probed domain. Results are transient: Build
// consumes them once to construct registry entries and they are not retained
// afterwards.
type DiscoveryResult struct {
	Name         string
	Path         string
	HasTools     bool
	HasCLI       bool
	HasResources bool
	IsValid      bool
	Err          string

	// module is the constructed module for valid results, moved into the
	// registry entry by Build.
	module Module
}

// Discover probes every descriptor in the catalog and returns one result per
// domain, ordered lexicographically by name so registration order is
// reproducible across runs. A bad domain never aborts the batch: its result
// carries IsValid=false and a human-readable error, and probing continues.
func Discover(catalog []Descriptor) []DiscoveryResult {
	ordered := make([]Descriptor, len(catalog))
	copy(ordered, catalog)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	results := make([]DiscoveryResult, 0, len(ordered))
	for _, descriptor := range ordered {
		results = append(results, probe(descriptor))
	}
	return results
}

func probe(descriptor Descriptor) DiscoveryResult {
	result := DiscoveryResult{Name: descriptor.Name, Path: descriptor.Path}

	if strings.TrimSpace(descriptor.Name) == "" {
		result.Err = "domain name is required"
		return result
	}
	if descriptor.New == nil {
		result.Err = fmt.Sprintf("domain %q has no factory", descriptor.Name)
		return result
	}

	module, err := construct(descriptor)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.IsValid = true
	result.HasTools = module.HasTools()
	result.HasCLI = module.HasCLI()
	result.HasResources = module.HasResources()
	result.module = module
	return result
}

// construct invokes the domain factory, converting a panic into an error so
// one broken constructor cannot take down discovery.
func construct(descriptor Descriptor) (module Module, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("construct domain %q: panic: %v", descriptor.Name, recovered)
		}
	}()
	module, err = descriptor.New()
	if err != nil {
		return Module{}, fmt.Errorf("construct domain %q: %w", descriptor.Name, err)
	}
	return module, nil
}
