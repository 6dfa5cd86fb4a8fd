package glossaries

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

func newTestClient(t *testing.T) *translation.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/glossaries":
			fmt.Fprint(w, `{"data":[{"data":{"id":1,"name":"Product terms","languageId":"en","termsCount":2}}]}`)
		case "/glossaries/1/terms":
			fmt.Fprint(w, `{"data":[
				{"data":{"id":11,"glossaryId":1,"text":"workspace","languageId":"en"}},
				{"data":{"id":12,"glossaryId":1,"text":"dashboard","languageId":"en"}}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := translation.NewClient(translation.Config{BaseURL: server.URL, Token: "test-token"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewExposesCommandsAndResourcesOnly(t *testing.T) {
	module, err := New(newTestClient(t))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.HasTools() {
		t.Error("glossaries should expose no tools")
	}
	if !module.HasCLI() || !module.HasResources() {
		t.Error("glossaries should expose commands and resources")
	}
	if module.Meta != nil {
		t.Error("glossaries should expose no metadata")
	}
}

func TestGlossariesCommands(t *testing.T) {
	module, err := New(newTestClient(t))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	root := &cobra.Command{Use: "localizer"}
	reg, err := registry.Build(registry.Discover([]registry.Descriptor{{
		Name: "glossaries",
		Path: "internal/domains/glossaries",
		New:  func() (registry.Module, error) { return module, nil },
	}}))
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if _, err := registry.ComposeCommands(reg, root); err != nil {
		t.Fatalf("compose commands: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		var out bytes.Buffer
		root.SetArgs([]string{"glossaries", "list"})
		root.SetOut(&out)
		if err := root.Execute(); err != nil {
			t.Fatalf("glossaries list: %v", err)
		}
		if !strings.Contains(out.String(), "Product terms") {
			t.Errorf("expected glossary name in output, got:\n%s", out.String())
		}
	})

	t.Run("terms", func(t *testing.T) {
		var out bytes.Buffer
		root.SetArgs([]string{"glossaries", "terms", "1"})
		root.SetOut(&out)
		if err := root.Execute(); err != nil {
			t.Fatalf("glossaries terms: %v", err)
		}
		if !strings.Contains(out.String(), "workspace") || !strings.Contains(out.String(), "dashboard") {
			t.Errorf("expected terms in output, got:\n%s", out.String())
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		root.SetArgs([]string{"glossaries", "terms", "abc"})
		root.SetOut(&bytes.Buffer{})
		if err := root.Execute(); err == nil {
			t.Fatal("expected error for non-numeric glossary id")
		}
	})
}

func TestTermListResourceHandler(t *testing.T) {
	client := newTestClient(t)

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "localizer://glossaries/1/terms"}}
	result, err := termListResourceHandler(client)(context.Background(), req)
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 || !strings.Contains(result.Contents[0].Text, "workspace") {
		t.Fatalf("unexpected resource contents: %+v", result.Contents)
	}
}

func TestParseGlossaryIDFromURI(t *testing.T) {
	if id, err := parseGlossaryIDFromURI("localizer://glossaries/7/terms"); err != nil || id != 7 {
		t.Errorf("parse = %d, %v; want 7, nil", id, err)
	}
	for _, uri := range []string{
		"localizer://glossaries/terms",
		"localizer://glossaries//terms",
		"localizer://glossaries/7",
		"localizer://glossaries/x/terms",
		"localizer://projects/7/terms",
	} {
		if _, err := parseGlossaryIDFromURI(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}
