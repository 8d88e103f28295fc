package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todosync/internal/commands"
	"todosync/internal/config"
	"todosync/internal/exitcode"
)

// TestLoginCommand_TokenFlag verifies --token is stored as a bearer token.
func TestLoginCommand_TokenFlag(t *testing.T) {
	cmd := &commands.LoginCmd{}
	args := parseFlags(t, cmd, []string{"--token", "abc.def.ghi"})

	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested")}
	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, args, &outBuf, &errBuf)

	expectCode(t, exitcode.Success, code)
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	token, err := cfg.LoadToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken != "abc.def.ghi" || token.TokenType != "Bearer" {
		t.Errorf("unexpected stored token: %+v", token)
	}

	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatalf("token.json not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

// TestLoginCommand_Stdin verifies the token is read from input when no flag is given.
func TestLoginCommand_Stdin(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader("Bearer xyz\n"))

	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}
	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, exitcode.Success, code)
	if outBuf.String() != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", outBuf.String())
	}

	token, err := cfg.LoadToken()
	if err != nil || token == nil {
		t.Fatalf("expected stored token, got %v, %v", token, err)
	}
	if token.AccessToken != "xyz" {
		t.Errorf("expected prefix stripped, got %q", token.AccessToken)
	}
}

// TestLoginCommand_EmptyToken verifies login fails when no token is supplied.
func TestLoginCommand_EmptyToken(t *testing.T) {
	cmd := &commands.LoginCmd{}
	cmd.SetInput(strings.NewReader(""))

	cfg := &config.Config{Dir: t.TempDir()}
	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, exitcode.AuthError, code)
	if !strings.HasSuffix(errBuf.String(), "error: token required\n") {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
	if cfg.HasToken() {
		t.Error("no token should have been written")
	}
}

// TestLogoutCommand_RemovesToken verifies logout deletes token.json.
func TestLogoutCommand_RemovesToken(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	tmpDir := t.TempDir()
	tokenPath := filepath.Join(tmpDir, "token.json")
	if err := os.WriteFile(tokenPath, []byte(`{"access_token":"test","token_type":"Bearer"}`), 0600); err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, exitcode.Success, code)
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, exitcode.Success, code)
	if outBuf.String() != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", outBuf.String())
	}
}

// TestLogoutCommand_NotLoggedInQuiet verifies logout is quiet when not logged in
func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	cmd := &commands.LogoutCmd{}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, exitcode.Success, code)
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
}
