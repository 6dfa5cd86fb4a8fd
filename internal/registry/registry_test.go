package registry

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildSeparatesLoadedAndFailed(t *testing.T) {
	catalog := []Descriptor{
		moduleDescriptor("projects", Module{Tools: registerEchoTool("project_list")}),
		failingDescriptor("broken", "module not found"),
	}

	reg, err := Build(Discover(catalog))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if reg.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", reg.Len())
	}
	if reg.LoadedCount() != 1 {
		t.Fatalf("expected 1 loaded entry, got %d", reg.LoadedCount())
	}

	projects, ok := reg.Get("projects")
	if !ok {
		t.Fatal("projects entry missing")
	}
	if !projects.Loaded || projects.Err != "" {
		t.Errorf("projects should be loaded with empty error, got %+v", projects)
	}
	if !projects.Module.HasTools() {
		t.Error("projects module should carry its tool provider")
	}

	broken, ok := reg.Get("broken")
	if !ok {
		t.Fatal("broken entry missing")
	}
	if broken.Loaded {
		t.Error("broken should not be loaded")
	}
	if !strings.Contains(broken.Err, "module not found") {
		t.Errorf("broken error should carry discovery cause, got %q", broken.Err)
	}
}

func TestBuildRejectsDuplicateDomainName(t *testing.T) {
	results := []DiscoveryResult{
		{Name: "projects", Path: "internal/domains/projects", IsValid: true},
		{Name: "projects", Path: "internal/extra/projects", IsValid: true},
	}

	_, err := Build(results)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}

	var collision *NameCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected *NameCollisionError, got %T: %v", err, err)
	}
	if collision.Kind != "domain" || collision.Name != "projects" {
		t.Errorf("unexpected collision: %+v", collision)
	}
	if collision.First != "internal/domains/projects" || collision.Second != "internal/extra/projects" {
		t.Errorf("collision should name both declaration paths, got %+v", collision)
	}
	for _, path := range []string{"internal/domains/projects", "internal/extra/projects"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error message should mention %s, got %q", path, err.Error())
		}
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	reg, err := Build(Discover([]Descriptor{moduleDescriptor("projects", Module{})}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	entries := reg.Entries()
	entries[0].Name = "mutated"

	fresh := reg.Entries()
	if fresh[0].Name != "projects" {
		t.Errorf("mutating the returned slice should not affect the registry, got %q", fresh[0].Name)
	}
}

func TestGetUnknownDomain(t *testing.T) {
	reg, err := Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("expected lookup miss for unknown domain")
	}
}
