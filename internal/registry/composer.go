package registry

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// Row records one attempted capability registration. The slice of rows
// returned by each compose step is the composition report consumed by
// startup logging and the domains diagnostics command.
type Row struct {
	Domain     string     `json:"domain"`
	Capability Capability `json:"capability"`
	Succeeded  bool       `json:"succeeded"`
	Err        string     `json:"error,omitempty"`
}

// namespace tracks identifier ownership for one capability kind. The first
// collision is kept so the composer aborts even when a provider swallows
// the returned error.
type namespace struct {
	kind      string
	owners    map[string]string
	collision *NameCollisionError
}

func newNamespace(kind string) *namespace {
	return &namespace{kind: kind, owners: make(map[string]string)}
}

func (n *namespace) claim(name, domain string) error {
	if owner, ok := n.owners[name]; ok {
		collision := &NameCollisionError{Kind: n.kind, Name: name, First: owner, Second: domain}
		if n.collision == nil {
			n.collision = collision
		}
		return collision
	}
	n.owners[name] = domain
	return nil
}

func (n *namespace) release(name string) {
	delete(n.owners, name)
}

// invoke runs one domain registration, converting a panic into an error so a
// broken provider cannot abort the rest of the batch.
func invoke(register func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()
	return register()
}

type stagedTool struct {
	name string
	bind func(*mcp.Server)
}

// toolStage buffers tool registrations so nothing reaches the MCP server
// until the whole batch is known to be collision-free.
type toolStage struct {
	names  *namespace
	staged []stagedTool
	domain string
	mark   int
}

func (s *toolStage) begin(domain string) {
	s.domain = domain
	s.mark = len(s.staged)
}

func (s *toolStage) rollback() {
	for _, tool := range s.staged[s.mark:] {
		s.names.release(tool.name)
	}
	s.staged = s.staged[:s.mark]
}

func (s *toolStage) AddTool(tool *mcp.Tool, bind func(*mcp.Server)) error {
	if tool == nil || strings.TrimSpace(tool.Name) == "" {
		return fmt.Errorf("tool name is required")
	}
	if bind == nil {
		return fmt.Errorf("tool %q has no binding", tool.Name)
	}
	if err := s.names.claim(tool.Name, s.domain); err != nil {
		return err
	}
	s.staged = append(s.staged, stagedTool{name: tool.Name, bind: bind})
	return nil
}

// ComposeTools registers every loaded tool-providing domain with the MCP
// server, in registry order. One domain's failure is logged, reported, and
// skipped; a tool name collision aborts composition before any registration
// reaches the server.
func ComposeTools(reg *Registry, server *mcp.Server) ([]Row, error) {
	stage := &toolStage{names: newNamespace("tool")}
	var rows []Row

	for _, entry := range reg.Entries() {
		if !entry.Loaded || !entry.Module.HasTools() {
			continue
		}
		stage.begin(entry.Name)
		err := invoke(func() error { return entry.Module.Tools.RegisterTools(stage) })
		row, fatal := settle(stage.names, entry.Name, CapabilityTools, err, stage.rollback)
		if fatal != nil {
			return nil, fatal
		}
		rows = append(rows, row)
	}

	for _, tool := range stage.staged {
		tool.bind(server)
	}
	return rows, nil
}

type stagedCommand struct {
	name string
	cmd  *cobra.Command
}

type commandStage struct {
	names  *namespace
	staged []stagedCommand
	domain string
	mark   int
}

func (s *commandStage) begin(domain string) {
	s.domain = domain
	s.mark = len(s.staged)
}

func (s *commandStage) rollback() {
	for _, command := range s.staged[s.mark:] {
		s.names.release(command.name)
	}
	s.staged = s.staged[:s.mark]
}

func (s *commandStage) AddCommand(cmd *cobra.Command) error {
	if cmd == nil || strings.TrimSpace(cmd.Name()) == "" {
		return fmt.Errorf("command name is required")
	}
	if err := s.names.claim(cmd.Name(), s.domain); err != nil {
		return err
	}
	s.staged = append(s.staged, stagedCommand{name: cmd.Name(), cmd: cmd})
	return nil
}

// ComposeCommands registers every loaded command-providing domain with the
// CLI program, in registry order, with the same isolation and collision
// semantics as ComposeTools.
func ComposeCommands(reg *Registry, program *cobra.Command) ([]Row, error) {
	stage := &commandStage{names: newNamespace("command")}
	var rows []Row

	for _, entry := range reg.Entries() {
		if !entry.Loaded || !entry.Module.HasCLI() {
			continue
		}
		stage.begin(entry.Name)
		err := invoke(func() error { return entry.Module.Commands.Register(stage) })
		row, fatal := settle(stage.names, entry.Name, CapabilityCLI, err, stage.rollback)
		if fatal != nil {
			return nil, fatal
		}
		rows = append(rows, row)
	}

	for _, command := range stage.staged {
		program.AddCommand(command.cmd)
	}
	return rows, nil
}

type stagedResource struct {
	uri      string
	resource *mcp.Resource
	template *mcp.ResourceTemplate
	handler  mcp.ResourceHandler
}

type resourceStage struct {
	names  *namespace
	staged []stagedResource
	domain string
	mark   int
}

func (s *resourceStage) begin(domain string) {
	s.domain = domain
	s.mark = len(s.staged)
}

func (s *resourceStage) rollback() {
	for _, resource := range s.staged[s.mark:] {
		s.names.release(resource.uri)
	}
	s.staged = s.staged[:s.mark]
}

func (s *resourceStage) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) error {
	if resource == nil || strings.TrimSpace(resource.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	if err := s.names.claim(resource.URI, s.domain); err != nil {
		return err
	}
	s.staged = append(s.staged, stagedResource{uri: resource.URI, resource: resource, handler: handler})
	return nil
}

func (s *resourceStage) AddResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) error {
	if template == nil || strings.TrimSpace(template.URITemplate) == "" {
		return fmt.Errorf("resource uri template is required")
	}
	if err := s.names.claim(template.URITemplate, s.domain); err != nil {
		return err
	}
	s.staged = append(s.staged, stagedResource{uri: template.URITemplate, template: template, handler: handler})
	return nil
}

// ComposeResources registers every loaded resource-providing domain with the
// MCP server, in registry order, with the same isolation and collision
// semantics as ComposeTools. Resources and resource templates share one URI
// namespace.
func ComposeResources(reg *Registry, server *mcp.Server) ([]Row, error) {
	stage := &resourceStage{names: newNamespace("resource")}
	var rows []Row

	for _, entry := range reg.Entries() {
		if !entry.Loaded || !entry.Module.HasResources() {
			continue
		}
		stage.begin(entry.Name)
		err := invoke(func() error { return entry.Module.Resources.RegisterResources(stage) })
		row, fatal := settle(stage.names, entry.Name, CapabilityResources, err, stage.rollback)
		if fatal != nil {
			return nil, fatal
		}
		rows = append(rows, row)
	}

	for _, resource := range stage.staged {
		if resource.template != nil {
			server.AddResourceTemplate(resource.template, resource.handler)
		} else {
			server.AddResource(resource.resource, resource.handler)
		}
	}
	return rows, nil
}

// settle turns the outcome of one domain registration into a report row, or
// into a fatal collision that aborts the whole composition. Non-collision
// failures roll back the domain's staged registrations so a partially
// registered domain leaves no trace on the host.
func settle(names *namespace, domain string, capability Capability, err error, rollback func()) (Row, *NameCollisionError) {
	if names.collision != nil {
		return Row{}, names.collision
	}
	var collision *NameCollisionError
	if errors.As(err, &collision) {
		return Row{}, collision
	}
	if err != nil {
		rollback()
		log.Printf("domain %s: register %s failed: %v", domain, capability, err)
		return Row{Domain: domain, Capability: capability, Err: err.Error()}, nil
	}
	return Row{Domain: domain, Capability: capability, Succeeded: true}, nil
}

// Summarize renders the one-line startup summary for a composition report.
func Summarize(reg *Registry, rows []Row) string {
	registered, failed := 0, 0
	for _, row := range rows {
		if row.Succeeded {
			registered++
		} else {
			failed++
		}
	}
	return fmt.Sprintf("%d/%d domains loaded, %d capability registrations, %d failures",
		reg.LoadedCount(), reg.Len(), registered, failed)
}
