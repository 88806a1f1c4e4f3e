// Package api is a small client for the workspace backend's REST
// endpoints: workspaces, boards with their lists, task search and task
// creation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/pluqqy/cmdk/pkg/models"
)

const (
	// DefaultTimeout bounds every request except task creation.
	DefaultTimeout = 10 * time.Second

	// CreateTaskTimeout bounds task creation.
	CreateTaskTimeout = 15 * time.Second

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// SearchMode selects the backend's task search strategy.
type SearchMode string

const (
	SearchText     SearchMode = "text"
	SearchSemantic SearchMode = "semantic"
)

// ParseSearchMode validates a mode name; empty means text.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(s)) {
	case "", SearchText:
		return SearchText, nil
	case SearchSemantic:
		return SearchSemantic, nil
	default:
		return "", fmt.Errorf("invalid task search mode: %s (must be: text or semantic)", s)
	}
}

// Config configures a Client.
type Config struct {
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string

	Timeout           time.Duration
	CreateTaskTimeout time.Duration

	// HTTPClient overrides the transport, mainly for tests. The bearer
	// token is layered on top of it.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the workspace backend.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	timeout       time.Duration
	createTimeout time.Duration
	logger        *zap.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is not configured")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}

	c := &Client{
		baseURL:       base,
		http:          httpClient,
		timeout:       cfg.Timeout,
		createTimeout: cfg.CreateTaskTimeout,
		logger:        cfg.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.createTimeout <= 0 {
		c.createTimeout = CreateTaskTimeout
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// ListWorkspaces returns the workspaces the caller belongs to.
func (c *Client) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	var out []models.Workspace
	if err := c.do(ctx, c.timeout, http.MethodGet, c.path("workspaces"), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return out, nil
}

// ListBoards returns a workspace's boards along with their lists.
func (c *Client) ListBoards(ctx context.Context, workspaceID string) ([]models.Board, error) {
	if workspaceID == "" {
		return nil, ErrMissingWorkspace
	}

	var out []models.Board
	if err := c.do(ctx, c.timeout, http.MethodGet, c.path("workspaces", workspaceID, "boards-with-lists"), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return out, nil
}

// SearchTasks runs a text or semantic task search in a workspace.
func (c *Client) SearchTasks(ctx context.Context, workspaceID, query string, mode SearchMode, limit int) ([]models.Task, error) {
	if workspaceID == "" {
		return nil, ErrMissingWorkspace
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("mode", string(mode))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []models.Task
	if err := c.do(ctx, c.timeout, http.MethodGet, c.path("workspaces", workspaceID, "tasks", "search"), q, nil, &out); err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return out, nil
}

// CreateTaskRequest is the payload for CreateTask.
type CreateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BoardID     string `json:"boardId"`
	ListID      string `json:"listId"`
}

// Validate checks the required selections.
func (r CreateTaskRequest) Validate() error {
	switch {
	case r.BoardID == "":
		return ErrMissingBoard
	case r.ListID == "":
		return ErrMissingList
	case strings.TrimSpace(r.Name) == "":
		return ErrMissingName
	}
	return nil
}

// CreateTask validates req and creates the task. Failures wrap
// ErrTimeout, ErrOffline or a *StatusError.
func (c *Client) CreateTask(ctx context.Context, workspaceID string, req CreateTaskRequest) (models.Task, error) {
	if workspaceID == "" {
		return models.Task{}, ErrMissingWorkspace
	}
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}
	req.Name = strings.TrimSpace(req.Name)

	var out models.Task
	if err := c.do(ctx, c.createTimeout, http.MethodPost, c.path("workspaces", workspaceID, "tasks"), nil, req, &out); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return out, nil
}

func (c *Client) path(elem ...string) *url.URL {
	return c.baseURL.JoinPath(append([]string{"api", "v1"}, elem...)...)
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method string, u *url.URL, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Request failed",
			zap.String("method", method),
			zap.String("url", u.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return classify(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Request finished",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return classify(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// errorMessage pulls a message out of an error body of the form
// {"error": "..."} or {"message": "..."}, falling back to the raw text.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
