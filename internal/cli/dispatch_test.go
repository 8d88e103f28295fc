package cli_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"todosync/internal/backend/restapi"
	"todosync/internal/cli"
	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/repo"
	"todosync/internal/server"
	"todosync/internal/service"
	"todosync/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !bytes.Contains([]byte(stdout), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todosync 0.1.0\n" {
		t.Errorf("expected 'todosync 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_InvalidURL(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--url", "ftp://example.com")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: invalid url: ftp://example.com\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsTodos(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTodo("Buy milk", false)

	stdout, _, code := run(t, testFactory(svc))
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_FactoryAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, service.Errorf(service.KindAuth, "invalid token.json: empty access token")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: auth error: invalid token.json: empty access token (run: todosync login)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FactoryBackendError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, service.Errorf(service.KindNetwork, "dial failed")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: dial failed\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_BackendNotNeededForLogout(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		t.Fatal("factory should not be called for logout")
		return nil, nil
	}

	stdout, _, code := run(t, factory, "logout", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

// TestDispatcher_EndToEnd drives the CLI against the REST server.
func TestDispatcher_EndToEnd(t *testing.T) {
	mem := repo.NewMemory()
	if err := repo.Seed(context.Background(), mem, repo.SampleTodos); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	srv := httptest.NewServer(server.NewRouter(mem, server.Options{Logger: slog.New(slog.DiscardHandler)}))
	defer srv.Close()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return restapi.New(ctx, cfg)
	}
	common := []string{"--config", t.TempDir(), "--url", srv.URL + server.APIPrefix}

	steps := []struct {
		args   []string
		stdout string
	}{
		{[]string{"list"}, "   1  [ ] Todo 1\n   2  [ ] Todo 2\n"},
		{[]string{"add", "Todo", "3"}, "ok 3\n"},
		{[]string{"done", "2"}, "ok\n"},
		{[]string{"rm", "#1"}, "ok\n"},
		{[]string{"ls"}, "   2  [x] Todo 2\n   3  [ ] Todo 3\n"},
		{[]string{"show", "2"}, "   2  [x] Todo 2\n        #1  Comment 3\n        #2  Comment 4\n"},
		{[]string{"editcomment", "2", "1", "Edited"}, "ok\n"},
		{[]string{"show", "2"}, "   2  [x] Todo 2\n        #1  Edited\n        #2  Comment 4\n"},
	}

	for _, step := range steps {
		args := append(append([]string{step.args[0]}, common...), step.args[1:]...)
		stdout, stderr, code := run(t, factory, args...)
		if code != exitcode.Success {
			t.Fatalf("%v: expected success, got %d: %s", step.args, code, stderr)
		}
		if stdout != step.stdout {
			t.Errorf("%v: expected %q, got %q", step.args, step.stdout, stdout)
		}
	}

	_, stderr, code := run(t, factory, append([]string{"show"}, append(common, "1")...)...)
	if code != exitcode.UserError {
		t.Errorf("expected not found exit code, got %d", code)
	}
	if stderr != "error: Todo not found\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
