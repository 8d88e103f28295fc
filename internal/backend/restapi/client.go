// Package restapi implements the service.Service interface against the todo REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todosync/internal/config"
	"todosync/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for cfg.BaseURL. When a token is stored in the config
// directory every request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	token, err := cfg.LoadToken()
	if err != nil {
		return nil, service.Wrap(service.KindAuth, err, err.Error())
	}

	httpClient := http.DefaultClient
	if token != nil {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}
	return NewWithHTTPClient(cfg.BaseURL, httpClient), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ListTodos returns every todo in server order.
func (c *Client) ListTodos(ctx context.Context) ([]service.Todo, error) {
	var todos []service.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []service.Todo{}
	}
	return todos, nil
}

// GetTodo returns a single todo.
func (c *Client) GetTodo(ctx context.Context, id int) (service.Todo, error) {
	var todo service.Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// CreateTodo creates a todo and returns it with its server-assigned id.
func (c *Client) CreateTodo(ctx context.Context, draft service.Draft) (service.Todo, error) {
	var todo service.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", draft, &todo); err != nil {
		return service.Todo{}, err
	}
	return todo, nil
}

// UpdateTodo replaces title and completed of an existing todo.
func (c *Client) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	body := service.Draft{Title: todo.Title, Completed: todo.Completed}

	var updated service.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(todo.ID), body, &updated); err != nil {
		return service.Todo{}, err
	}
	return updated, nil
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

// AddComment adds a comment to a todo.
func (c *Client) AddComment(ctx context.Context, todoID int, text string) (service.Comment, error) {
	var comment service.Comment
	path := todoPath(todoID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, service.Comment{Text: text}, &comment); err != nil {
		return service.Comment{}, err
	}
	return comment, nil
}

// UpdateComment replaces the text of a comment.
func (c *Client) UpdateComment(ctx context.Context, todoID int, comment service.Comment) (service.Comment, error) {
	var updated service.Comment
	body := service.Comment{Text: comment.Text}
	if err := c.do(ctx, http.MethodPut, commentPath(todoID, comment.ID), body, &updated); err != nil {
		return service.Comment{}, err
	}
	return updated, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, todoID, commentID int) error {
	return c.do(ctx, http.MethodDelete, commentPath(todoID, commentID), nil, nil)
}

// do performs one JSON request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return service.Wrap(service.KindServer, err, fmt.Sprintf("invalid response: %v", err))
	}
	return nil
}

func todoPath(id int) string {
	return fmt.Sprintf("/todos/%d", id)
}

func commentPath(todoID, commentID int) string {
	return fmt.Sprintf("/todos/%d/comments/%d", todoID, commentID)
}

// wrapError classifies transport and HTTP failures into service error kinds.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiMessage(apiErr)
		switch {
		case apiErr.Code == http.StatusNotFound:
			return service.Wrap(service.KindNotFound, err, msg)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return service.Wrap(service.KindAuth, err, msg+" (run: todosync login)")
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return service.Wrap(service.KindInvalid, err, msg)
		default:
			return service.Wrap(service.KindServer, err, msg)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return service.Wrap(service.KindNetwork, err, "request timed out")
	}
	return service.Wrap(service.KindNetwork, err, err.Error())
}

// apiMessage extracts the server's {"error": "..."} message, falling back to
// the status text.
func apiMessage(e *googleapi.Error) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil && body.Error != "" {
		return body.Error
	}
	if e.Message != "" {
		return e.Message
	}
	if text := strings.TrimSpace(e.Body); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(e.Code)
}
