package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localizer-dev/localizer/internal/translation"
)

func newTestServerInstance(t *testing.T) *Server {
	t.Helper()
	client, err := translation.NewClient(translation.Config{Token: "test-token"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	server, err := newServer(client)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func TestNewRequiresAPIToken(t *testing.T) {
	_, err := New(Config{})
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Errorf("error should mention the token, got %v", err)
	}
}

func TestNewServerLoadsEveryDomain(t *testing.T) {
	server := newTestServerInstance(t)

	reg := server.Registry()
	if reg.Len() != 7 {
		t.Fatalf("expected 7 domains, got %d", reg.Len())
	}
	if reg.LoadedCount() != 7 {
		t.Fatalf("expected all domains loaded, got %d", reg.LoadedCount())
	}

	for _, row := range server.Report() {
		if !row.Succeeded {
			t.Errorf("registration should succeed: %+v", row)
		}
	}
}

func TestServerExposesToolsAndResources(t *testing.T) {
	server := newTestServerInstance(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	if _, err := server.mcpServer.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("connect server: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	toolNames := map[string]bool{}
	for _, tool := range tools.Tools {
		toolNames[tool.Name] = true
	}
	for _, name := range []string{
		"project_list", "project_get", "project_progress",
		"file_list", "file_get",
		"translation_status", "pretranslate_apply",
		"language_list", "language_validate",
		"task_list", "task_create",
		"usergroup_list", "usergroup_members",
	} {
		if !toolNames[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(tools.Tools) != 13 {
		t.Errorf("expected 13 tools, got %d", len(tools.Tools))
	}

	resources, err := session.ListResources(ctx, nil)
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	resourceURIs := map[string]bool{}
	for _, resource := range resources.Resources {
		resourceURIs[resource.URI] = true
	}
	for _, uri := range []string{"localizer://projects", "localizer://languages", "localizer://glossaries"} {
		if !resourceURIs[uri] {
			t.Errorf("resource %s not registered", uri)
		}
	}

	templates, err := session.ListResourceTemplates(ctx, nil)
	if err != nil {
		t.Fatalf("list resource templates: %v", err)
	}
	templateURIs := map[string]bool{}
	for _, template := range templates.ResourceTemplates {
		templateURIs[template.URITemplate] = true
	}
	for _, uri := range []string{
		"localizer://projects/{project_id}",
		"localizer://projects/{project_id}/files",
		"localizer://projects/{project_id}/tasks",
		"localizer://glossaries/{glossary_id}/terms",
	} {
		if !templateURIs[uri] {
			t.Errorf("resource template %s not registered", uri)
		}
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	err := Run(context.Background(), Config{
		Transport: "carrier-pigeon",
		API:       translation.Config{Token: "test-token"},
	})
	if err == nil {
		t.Fatal("expected error for unknown transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServeWithTransportStopsOnCancel(t *testing.T) {
	server := newTestServerInstance(t)

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("cancellation should be a clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestCompletionHandlerReturnsEmptyValues(t *testing.T) {
	result, err := completionHandler(context.Background(), nil)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(result.Completion.Values) != 0 {
		t.Errorf("expected no completion values, got %v", result.Completion.Values)
	}
}

func TestSubscribeHandlersValidateURI(t *testing.T) {
	if err := resourceSubscribeHandler(context.Background(), &mcp.SubscribeRequest{Params: &mcp.SubscribeParams{URI: "localizer://projects"}}); err != nil {
		t.Errorf("subscribe with uri should succeed: %v", err)
	}
	if err := resourceSubscribeHandler(context.Background(), &mcp.SubscribeRequest{Params: &mcp.SubscribeParams{}}); err == nil {
		t.Error("subscribe without uri should fail")
	}
	if err := resourceUnsubscribeHandler(context.Background(), &mcp.UnsubscribeRequest{Params: &mcp.UnsubscribeParams{}}); err == nil {
		t.Error("unsubscribe without uri should fail")
	}
}
