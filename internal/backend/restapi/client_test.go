package restapi_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"todosync/internal/backend/restapi"
	"todosync/internal/config"
	"todosync/internal/repo"
	"todosync/internal/server"
	"todosync/internal/service"
)

func newClient(t *testing.T) *restapi.Client {
	t.Helper()
	router := server.NewRouter(repo.NewMemory(), server.Options{Logger: slog.New(slog.DiscardHandler)})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return restapi.NewWithHTTPClient(srv.URL+server.APIPrefix, srv.Client())
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	todos, err := c.ListTodos(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", todos)
	}

	created, err := c.CreateTodo(ctx, service.Draft{Title: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 || created.Title != "A" || created.Completed {
		t.Errorf("unexpected created todo: %+v", created)
	}

	updated, err := c.UpdateTodo(ctx, service.Todo{ID: created.ID, Title: "A2", Completed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "A2" || !updated.Completed {
		t.Errorf("unexpected updated todo: %+v", updated)
	}

	comment, err := c.AddComment(ctx, created.ID, "note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID != 1 || comment.Text != "note" {
		t.Errorf("unexpected comment: %+v", comment)
	}

	comment, err = c.UpdateComment(ctx, created.ID, service.Comment{ID: comment.ID, Text: "edited"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.Text != "edited" {
		t.Errorf("expected edited comment, got %+v", comment)
	}

	got, err := c.GetTodo(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0].Text != "edited" {
		t.Errorf("expected comment on fetched todo, got %+v", got)
	}

	if err := c.DeleteComment(ctx, created.ID, comment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DeleteTodo(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	todos, _ = c.ListTodos(ctx)
	if len(todos) != 0 {
		t.Errorf("expected no todos after delete, got %d", len(todos))
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newClient(t)

	_, err := c.GetTodo(context.Background(), 42)
	if service.KindOf(err) != service.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != service.TodoNotFound {
		t.Errorf("expected server message, got %q", err.Error())
	}

	err = c.DeleteComment(context.Background(), 42, 1)
	if !service.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   service.Kind
	}{
		{http.StatusBadRequest, `{"error":"Invalid request payload"}`, service.KindInvalid},
		{http.StatusUnauthorized, `{"error":"Invalid token"}`, service.KindAuth},
		{http.StatusForbidden, ``, service.KindAuth},
		{http.StatusInternalServerError, `{"error":"Internal server error"}`, service.KindServer},
		{http.StatusBadGateway, `oops`, service.KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := restapi.NewWithHTTPClient(srv.URL, srv.Client())
			_, err := c.ListTodos(context.Background())
			if got := service.KindOf(err); got != tt.kind {
				t.Errorf("expected kind %v, got %v (%v)", tt.kind, got, err)
			}
		})
	}
}

func TestClient_InvalidResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := restapi.NewWithHTTPClient(srv.URL, srv.Client())
	_, err := c.ListTodos(context.Background())
	if service.KindOf(err) != service.KindServer {
		t.Errorf("expected server error, got %v", err)
	}
}

func TestClient_NetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := restapi.NewWithHTTPClient(url, http.DefaultClient)
	_, err := c.ListTodos(context.Background())
	if service.KindOf(err) != service.KindNetwork {
		t.Errorf("expected network error for closed server, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := restapi.NewWithHTTPClient(srv.URL, srv.Client())
	_, err := c.ListTodos(ctx)
	if service.KindOf(err) != service.KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
	if err.Error() != "request timed out" {
		t.Errorf("expected timeout message, got %q", err.Error())
	}
}

func TestNew_SendsStoredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg, err := config.New(t.TempDir(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	c, err := restapi.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ListTodos(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestNew_WithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg, _ := config.New(t.TempDir(), srv.URL)
	c, err := restapi.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ListTodos(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}
