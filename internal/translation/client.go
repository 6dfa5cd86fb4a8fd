// Package translation is the REST client for the remote translation
// management API. It is constructed once at startup and injected into every
// domain factory; nothing in this package holds global state.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.localizer.dev/v2"

	defaultTimeout = 30 * time.Second
	maxAttempts    = 4
)

// Config configures the API client.
type Config struct {
	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string
	// Token is the personal access token sent as a bearer credential.
	Token string
	// Timeout bounds each HTTP call including retries.
	Timeout time.Duration
}

// Client calls the translation management API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient validates the configuration and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("translation api token is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// APIError is a non-2xx response from the translation service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("translation api: status %d", e.Status)
	}
	return fmt.Sprintf("translation api: status %d: %s", e.Status, e.Message)
}

// dataEnvelope is the service's single-object response wrapper.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// listEnvelope is the service's collection wrapper: each element is itself
// wrapped in a data envelope.
type listEnvelope[T any] struct {
	Data []dataEnvelope[T] `json:"data"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one request with retry on 429 and 5xx responses. The request
// body is kept as bytes so each attempt can resend it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return payload, nil
		}

		apiErr := &APIError{Status: resp.StatusCode}
		var parsed apiErrorBody
		if json.Unmarshal(payload, &parsed) == nil {
			apiErr.Message = parsed.Error.Message
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, apiErr
		}
		return nil, backoff.Permanent(apiErr)
	}

	payload, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxAttempts),
	)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// getOne fetches a single wrapped object.
func getOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	var envelope dataEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		var zero T
		return zero, err
	}
	return envelope.Data, nil
}

// getList fetches a wrapped collection and unwraps each element.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var envelope listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &envelope); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(envelope.Data))
	for _, element := range envelope.Data {
		items = append(items, element.Data)
	}
	return items, nil
}

// postOne sends a JSON body and decodes a single wrapped object.
func postOne[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	encoded, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("POST %s: encode request: %w", path, err)
	}
	var envelope dataEnvelope[T]
	if err := c.do(ctx, http.MethodPost, path, nil, encoded, &envelope); err != nil {
		return zero, err
	}
	return envelope.Data, nil
}

// ListProjects returns the projects visible to the token.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return getList[Project](ctx, c, "/projects", nil)
}

// GetProject returns one project by id.
func (c *Client) GetProject(ctx context.Context, projectID int64) (Project, error) {
	return getOne[Project](ctx, c, fmt.Sprintf("/projects/%d", projectID))
}

// ProjectProgress returns per-language translation progress for a project.
func (c *Client) ProjectProgress(ctx context.Context, projectID int64) ([]LanguageProgress, error) {
	return getList[LanguageProgress](ctx, c, fmt.Sprintf("/projects/%d/languages/progress", projectID), nil)
}

// ListFiles returns the source files of a project.
func (c *Client) ListFiles(ctx context.Context, projectID int64) ([]File, error) {
	return getList[File](ctx, c, fmt.Sprintf("/projects/%d/files", projectID), nil)
}

// GetFile returns one source file by id.
func (c *Client) GetFile(ctx context.Context, projectID, fileID int64) (File, error) {
	return getOne[File](ctx, c, fmt.Sprintf("/projects/%d/files/%d", projectID, fileID))
}

// ListLanguages returns every language the service supports.
func (c *Client) ListLanguages(ctx context.Context) ([]Language, error) {
	return getList[Language](ctx, c, "/languages", nil)
}

// ListTasks returns the tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	return getList[Task](ctx, c, fmt.Sprintf("/projects/%d/tasks", projectID), nil)
}

// CreateTask creates a translation or proofreading task.
func (c *Client) CreateTask(ctx context.Context, projectID int64, req CreateTaskRequest) (Task, error) {
	return postOne[Task](ctx, c, fmt.Sprintf("/projects/%d/tasks", projectID), req)
}

// ListGroups returns the user groups of the organization.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	return getList[Group](ctx, c, "/groups", nil)
}

// ListGroupMembers returns the members of a user group.
func (c *Client) ListGroupMembers(ctx context.Context, groupID int64) ([]GroupMember, error) {
	return getList[GroupMember](ctx, c, fmt.Sprintf("/groups/%d/members", groupID), nil)
}

// ListGlossaries returns the organization's glossaries.
func (c *Client) ListGlossaries(ctx context.Context) ([]Glossary, error) {
	return getList[Glossary](ctx, c, "/glossaries", nil)
}

// ListGlossaryTerms returns the terms of a glossary.
func (c *Client) ListGlossaryTerms(ctx context.Context, glossaryID int64) ([]Term, error) {
	return getList[Term](ctx, c, fmt.Sprintf("/glossaries/%d/terms", glossaryID), nil)
}

// ApplyPreTranslation starts machine pre-translation for the given target
// languages of a project.
func (c *Client) ApplyPreTranslation(ctx context.Context, projectID int64, req PreTranslateRequest) (PreTranslation, error) {
	return postOne[PreTranslation](ctx, c, fmt.Sprintf("/projects/%d/pre-translations", projectID), req)
}
