package projects

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/localizer-dev/localizer/internal/translation"
)

func newTestClient(t *testing.T, handler http.Handler) *translation.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := translation.NewClient(translation.Config{BaseURL: server.URL, Token: "test-token"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestProjectListHandler(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[
			{"data":{"id":1,"name":"website","identifier":"website","sourceLanguageId":"en","targetLanguageIds":["pt"]}}
		]}`)
	}))

	_, result, err := projectListHandler(client)(context.Background(), nil, ProjectListInput{})
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	if len(result.Projects) != 1 {
		t.Fatalf("expected 1 project, got %+v", result.Projects)
	}
	project := result.Projects[0]
	if project.ID != 1 || project.Name != "website" || project.SourceLanguageID != "en" {
		t.Errorf("unexpected project: %+v", project)
	}
}

func TestProjectGetHandlerValidatesInput(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not call the API for invalid input")
	}))

	_, _, err := projectGetHandler(client)(context.Background(), nil, ProjectGetInput{})
	if err == nil || !strings.Contains(err.Error(), "project_id is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectProgressHandler(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/5/languages/progress" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[
			{"data":{"languageId":"pt","translationProgress":80,"approvalProgress":40,"words":{"total":100,"translated":80,"approved":40}}}
		]}`)
	}))

	_, result, err := projectProgressHandler(client)(context.Background(), nil, ProjectProgressInput{ProjectID: 5})
	if err != nil {
		t.Fatalf("project progress: %v", err)
	}
	if result.ProjectID != 5 || len(result.Languages) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	language := result.Languages[0]
	if language.LanguageID != "pt" || language.TranslationProgress != 80 || language.WordsTranslated != 80 {
		t.Errorf("unexpected language progress: %+v", language)
	}
}

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(nil, "0.2.0"); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestParseProjectIDFromURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    int64
		wantErr bool
	}{
		{uri: "localizer://projects/42", want: 42},
		{uri: "localizer://projects/", wantErr: true},
		{uri: "localizer://projects/abc", wantErr: true},
		{uri: "localizer://projects/0", wantErr: true},
		{uri: "localizer://projects/1/files", wantErr: true},
		{uri: "localizer://tasks/1", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.uri, func(t *testing.T) {
			got, err := parseProjectIDFromURI(test.uri)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", test.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", test.uri, err)
			}
			if got != test.want {
				t.Errorf("parse %q = %d, want %d", test.uri, got, test.want)
			}
		})
	}
}
