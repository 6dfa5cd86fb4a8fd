package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/translation"
)

func newTestProgram(t *testing.T) *cobra.Command {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects":
			fmt.Fprint(w, `{"data":[{"data":{"id":1,"name":"website","identifier":"website","sourceLanguageId":"en","targetLanguageIds":["pt"]}}]}`)
		default:
			fmt.Fprint(w, `{"data":[]}`)
		}
	}))
	t.Cleanup(server.Close)

	client, err := translation.NewClient(translation.Config{BaseURL: server.URL, Token: "test-token"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	root, err := New(client)
	if err != nil {
		t.Fatalf("new program: %v", err)
	}
	return root
}

func runProgram(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestProgramComposesDomainCommands(t *testing.T) {
	root := newTestProgram(t)

	want := map[string]bool{
		"projects":   false,
		"files":      false,
		"tasks":      false,
		"usergroups": false,
		"glossaries": false,
		"domains":    false,
		"version":    false,
	}
	for _, command := range root.Commands() {
		if _, ok := want[command.Name()]; ok {
			want[command.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("command %s not composed", name)
		}
	}

	// Tools-only domains contribute no commands.
	for _, command := range root.Commands() {
		if command.Name() == "translations" || command.Name() == "languages" {
			t.Errorf("command %s should not exist", command.Name())
		}
	}
}

func TestDomainsCommandReportsRegistry(t *testing.T) {
	root := newTestProgram(t)

	output, err := runProgram(t, root, "domains")
	if err != nil {
		t.Fatalf("domains: %v", err)
	}
	if !strings.Contains(output, "7/7 domains loaded") {
		t.Errorf("summary line missing, got:\n%s", output)
	}
	if !strings.Contains(output, "tools,cli,resources") {
		t.Errorf("capability list missing, got:\n%s", output)
	}
	// glossaries contributes no metadata but still shows up loaded.
	if !strings.Contains(output, "glossaries") {
		t.Errorf("glossaries row missing, got:\n%s", output)
	}
}

func TestVersionCommand(t *testing.T) {
	root := newTestProgram(t)

	output, err := runProgram(t, root, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(output, "localizer 0.2.0") {
		t.Errorf("unexpected version output: %q", output)
	}
}

func TestProjectsListCommand(t *testing.T) {
	root := newTestProgram(t)

	output, err := runProgram(t, root, "projects", "list")
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	if !strings.Contains(output, "website") {
		t.Errorf("expected project name in output, got:\n%s", output)
	}
}
