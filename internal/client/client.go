// Package client is an HTTP client for the tasksched server API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/airyra/tasksched/internal/domain"
)

// ClientHeader carries the caller's identity on every request.
const ClientHeader = "X-Tasksched-Client"

// Client is an HTTP client for the tasksched server API.
type Client struct {
	baseURL  string       // http://host:port
	clientID string       // X-Tasksched-Client header value
	http     *http.Client // HTTP client
}

// NewClient creates a new tasksched API client.
func NewClient(host string, port int, clientID string) *Client {
	return &Client{
		baseURL:  "http://" + net.JoinHostPort(host, strconv.Itoa(port)),
		clientID: clientID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// =============================================================================
// System
// =============================================================================

// Health checks if the server is healthy and reports its task counts.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	err := c.do(ctx, http.MethodGet, "/v1/health", nil, http.StatusOK, &health)
	if err != nil {
		if domain.CodeOf(err) != "" {
			return nil, ErrServerUnhealthy
		}
		return nil, err
	}
	return &health, nil
}

// SaveState asks the server to write its state to its store.
func (c *Client) SaveState(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/state/save", nil, http.StatusNoContent, nil)
}

// LoadState asks the server to replace its state from its store and returns
// the reloaded tasks.
func (c *Client) LoadState(ctx context.Context) ([]domain.TaskView, error) {
	var views []domain.TaskView
	if err := c.do(ctx, http.MethodPost, "/v1/state/load", nil, http.StatusOK, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// =============================================================================
// Tasks
// =============================================================================

// CreateTask admits a new task. A nil deadline records none.
func (c *Client) CreateTask(ctx context.Context, description string, priority int, deadline *string) (*domain.TaskView, error) {
	body := createTaskRequest{
		Description: description,
		Priority:    priority,
		Deadline:    deadline,
	}

	var view domain.TaskView
	if err := c.do(ctx, http.MethodPost, "/v1/tasks", body, http.StatusCreated, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.TaskView, error) {
	var view domain.TaskView
	if err := c.do(ctx, http.MethodGet, taskPath(id, ""), nil, http.StatusOK, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListTasks lists tasks, highest priority first, optionally filtered by status.
// Zero page or perPage selects the server default.
func (c *Client) ListTasks(ctx context.Context, status domain.TaskStatus, page, perPage int) (*TaskListResponse, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	path := "/v1/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list TaskListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Eligibility reports whether every dependency of the task has completed.
func (c *Client) Eligibility(ctx context.Context, id int) (*Eligibility, error) {
	var e Eligibility
	if err := c.do(ctx, http.MethodGet, taskPath(id, "/eligibility"), nil, http.StatusOK, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ExecuteNext runs one scheduling step on the server.
func (c *Client) ExecuteNext(ctx context.Context) (*Execution, error) {
	var exec Execution
	if err := c.do(ctx, http.MethodPost, "/v1/execute", nil, http.StatusOK, &exec); err != nil {
		return nil, err
	}
	return &exec, nil
}

// =============================================================================
// Dependencies
// =============================================================================

// AddDependency records that taskID depends on depID.
func (c *Client) AddDependency(ctx context.Context, taskID, depID int) error {
	body := addDependencyRequest{DepID: depID}
	return c.do(ctx, http.MethodPost, taskPath(taskID, "/deps"), body, http.StatusCreated, nil)
}

// ListDependencies returns the ids the task depends on.
func (c *Client) ListDependencies(ctx context.Context, taskID int) ([]int, error) {
	var deps []int
	if err := c.do(ctx, http.MethodGet, taskPath(taskID, "/deps"), nil, http.StatusOK, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

// Graph returns the dependency graph in Graphviz DOT format.
func (c *Client) Graph(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/graph", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("graph request failed: %w", wrapConnectionError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", parseErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read graph response: %w", err)
	}
	return string(data), nil
}

// =============================================================================
// Helper Methods
// =============================================================================

func taskPath(id int, suffix string) string {
	return "/v1/tasks/" + strconv.Itoa(id) + suffix
}

// do sends a request and decodes the response into out when the server
// answers with want. A nil body sends no payload; a nil out discards the reply.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, want int, out interface{}) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = c.newJSONRequest(ctx, method, path, body)
	} else {
		req, err = c.newRequest(ctx, method, path, nil)
	}
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, wrapConnectionError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return parseErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// newRequest creates a new HTTP request with common headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(ClientHeader, c.clientID)

	return req, nil
}

// newJSONRequest creates a new HTTP request with JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
