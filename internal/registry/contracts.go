// Package registry discovers domain modules, validates the capabilities they
// implement, and composes their contributions onto the MCP server and CLI
// hosts. A failure in one domain never prevents the others from loading or
// registering.
package registry

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// Capability identifies one of the registration roles a domain may fulfill.
type Capability string

const (
	// CapabilityTools marks MCP tool registration.
	CapabilityTools Capability = "tools"
	// CapabilityCLI marks CLI command registration.
	CapabilityCLI Capability = "cli"
	// CapabilityResources marks MCP resource registration.
	CapabilityResources Capability = "resources"
)

// ToolHost receives MCP tool registrations. AddTool records the tool under
// its name and defers binding until the composer flushes the batch to the
// MCP server; a duplicate tool name returns a *NameCollisionError.
//
// Use the package-level AddTool helper to register typed handlers.
type ToolHost interface {
	AddTool(tool *mcp.Tool, bind func(*mcp.Server)) error
}

// AddTool registers a typed tool handler with a host. The bind closure keeps
// the handler's input/output types intact until the host applies it to the
// server.
func AddTool[In, Out any](host ToolHost, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) error {
	return host.AddTool(tool, func(server *mcp.Server) {
		mcp.AddTool(server, tool, handler)
	})
}

// CommandHost receives CLI command registrations. A duplicate command name
// returns a *NameCollisionError.
type CommandHost interface {
	AddCommand(cmd *cobra.Command) error
}

// ResourceHost receives MCP resource and resource-template registrations.
// Duplicate URIs return a *NameCollisionError.
type ResourceHost interface {
	AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) error
	AddResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) error
}

// ToolProvider is implemented by domains that contribute MCP tools.
// RegisterTools must be fast and non-blocking: it wires handlers, it does
// not call the translation API. Remote work belongs in the handlers, which
// receive contexts and apply their own timeouts.
type ToolProvider interface {
	RegisterTools(host ToolHost) error
}

// CommandProvider is implemented by domains that contribute CLI commands.
type CommandProvider interface {
	Register(program CommandHost) error
}

// ResourceProvider is implemented by domains that contribute browsable
// resources.
type ResourceProvider interface {
	RegisterResources(host ResourceHost) error
}

// Meta describes a domain for diagnostics. It is purely informational and
// never drives registration.
type Meta struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Version          string `json:"version"`
	ToolsCount       int    `json:"tools_count,omitempty"`
	CLICommandsCount int    `json:"cli_commands_count,omitempty"`
	ResourcesCount   int    `json:"resources_count,omitempty"`
}

// Module bundles the capability providers a domain contributes. Every field
// is optional; a module with no providers is a valid no-op domain.
type Module struct {
	Tools     ToolProvider
	Commands  CommandProvider
	Resources ResourceProvider
	Meta      *Meta
}

// HasTools reports whether the module contributes MCP tools.
func (m Module) HasTools() bool { return m.Tools != nil }

// HasCLI reports whether the module contributes CLI commands.
func (m Module) HasCLI() bool { return m.Commands != nil }

// HasResources reports whether the module contributes browsable resources.
func (m Module) HasResources() bool { return m.Resources != nil }

// Descriptor statically declares a domain known to the build. New constructs
// the domain's module; construction failures and panics are isolated per
// domain during discovery.
type Descriptor struct {
	Name string
	Path string
	New  func() (Module, error)
}
