package registry

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolsFunc func(ToolHost) error

func (f toolsFunc) RegisterTools(host ToolHost) error { return f(host) }

type commandsFunc func(CommandHost) error

func (f commandsFunc) Register(program CommandHost) error { return f(program) }

type resourcesFunc func(ResourceHost) error

func (f resourcesFunc) RegisterResources(host ResourceHost) error { return f(host) }

type echoInput struct {
	Text string `json:"text"`
}

type echoOutput struct {
	Text string `json:"text"`
}

// registerEchoTool returns a tool provider contributing one tool with the
// given name.
func registerEchoTool(name string) toolsFunc {
	return func(host ToolHost) error {
		tool := &mcp.Tool{Name: name, Description: "echoes its input"}
		return AddTool(host, tool, func(_ context.Context, _ *mcp.CallToolRequest, in echoInput) (*mcp.CallToolResult, echoOutput, error) {
			return nil, echoOutput{Text: in.Text}, nil
		})
	}
}

func moduleDescriptor(name string, module Module) Descriptor {
	return Descriptor{
		Name: name,
		Path: "internal/domains/" + name,
		New:  func() (Module, error) { return module, nil },
	}
}

func failingDescriptor(name, message string) Descriptor {
	return Descriptor{
		Name: name,
		Path: "internal/domains/" + name,
		New:  func() (Module, error) { return Module{}, fmt.Errorf("%s", message) },
	}
}

func TestDiscoverOrdersByName(t *testing.T) {
	catalog := []Descriptor{
		moduleDescriptor("usergroups", Module{}),
		moduleDescriptor("projects", Module{}),
		moduleDescriptor("tasks", Module{}),
	}

	results := Discover(catalog)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"projects", "tasks", "usergroups"}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("result %d: expected %q, got %q", i, name, results[i].Name)
		}
	}

	again := Discover(catalog)
	for i := range results {
		if results[i].Name != again[i].Name {
			t.Fatalf("discovery order not stable at index %d: %q vs %q", i, results[i].Name, again[i].Name)
		}
	}
}

func TestDiscoverReportsCapabilities(t *testing.T) {
	catalog := []Descriptor{
		moduleDescriptor("tools-only", Module{Tools: registerEchoTool("x")}),
		moduleDescriptor("cli-only", Module{Commands: commandsFunc(func(CommandHost) error { return nil })}),
		moduleDescriptor("noop", Module{}),
	}

	results := Discover(catalog)

	byName := map[string]DiscoveryResult{}
	for _, result := range results {
		byName[result.Name] = result
	}

	toolsOnly := byName["tools-only"]
	if !toolsOnly.IsValid || !toolsOnly.HasTools || toolsOnly.HasCLI || toolsOnly.HasResources {
		t.Errorf("tools-only flags wrong: %+v", toolsOnly)
	}
	cliOnly := byName["cli-only"]
	if !cliOnly.IsValid || cliOnly.HasTools || !cliOnly.HasCLI {
		t.Errorf("cli-only flags wrong: %+v", cliOnly)
	}
	// A module with no providers is still structurally valid.
	noop := byName["noop"]
	if !noop.IsValid || noop.HasTools || noop.HasCLI || noop.HasResources {
		t.Errorf("noop flags wrong: %+v", noop)
	}
}

func TestDiscoverIsolatesFailures(t *testing.T) {
	catalog := []Descriptor{
		moduleDescriptor("healthy", Module{}),
		failingDescriptor("broken", "module not found"),
		{
			Name: "panicky",
			Path: "internal/domains/panicky",
			New:  func() (Module, error) { panic("boom") },
		},
		{Name: "nofactory", Path: "internal/domains/nofactory"},
	}

	results := Discover(catalog)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	for _, result := range results {
		switch result.Name {
		case "healthy":
			if !result.IsValid || result.Err != "" {
				t.Errorf("healthy should be valid, got %+v", result)
			}
		case "broken":
			if result.IsValid {
				t.Error("broken should be invalid")
			}
			if result.Err == "" || !strings.Contains(result.Err, "module not found") {
				t.Errorf("broken error should mention cause, got %q", result.Err)
			}
		case "panicky":
			if result.IsValid || !strings.Contains(result.Err, "panic") {
				t.Errorf("panicky should record panic, got %+v", result)
			}
		case "nofactory":
			if result.IsValid || !strings.Contains(result.Err, "no factory") {
				t.Errorf("nofactory should record missing factory, got %+v", result)
			}
		}
	}
}

func TestDiscoverAllInvalidCompletes(t *testing.T) {
	catalog := []Descriptor{
		failingDescriptor("a", "down"),
		failingDescriptor("b", "down"),
		failingDescriptor("c", "down"),
	}

	results := Discover(catalog)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, result := range results {
		if result.IsValid {
			t.Errorf("domain %s should be invalid", result.Name)
		}
	}
}

func TestDiscoverRejectsEmptyName(t *testing.T) {
	results := Discover([]Descriptor{{Name: "  ", Path: "somewhere"}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].IsValid {
		t.Error("blank name should be invalid")
	}
	if !strings.Contains(results[0].Err, "name is required") {
		t.Errorf("expected name error, got %q", results[0].Err)
	}
}
