package registry

import "fmt"

// NameCollisionError reports two domains claiming the same identifier in a
// shared namespace. Unlike per-domain failures it aborts the whole build or
// composition: an ambiguous namespace is worse than a missing domain.
type NameCollisionError struct {
	// Kind is the namespace: "domain", "tool", "command", or "resource".
	Kind string
	// Name is the colliding identifier.
	Name string
	// First and Second are the offending domain names in registration order.
	First  string
	Second string
}

func (e *NameCollisionError) Error() string {
	if e.Kind == "domain" {
		return fmt.Sprintf("duplicate domain name %q (declared at %s and %s)", e.Name, e.First, e.Second)
	}
	return fmt.Sprintf("%s name %q registered by both domain %q and domain %q", e.Kind, e.Name, e.First, e.Second)
}
