// Package main runs the todo REST API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todosync/internal/auth"
	"todosync/internal/logging"
	"todosync/internal/repo"
	"todosync/internal/server"
	"todosync/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := mainInner(os.Args[1:]); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner(args []string) error {
	fs := flag.NewFlagSet("todoserver", flag.ContinueOnError)
	addr := fs.String("addr", envOr("TODOSERVER_ADDR", ":3000"), "the address to listen on")
	dbPath := fs.String("db", os.Getenv("TODOSERVER_DB"), "sqlite database path; in-memory store when empty")
	secret := fs.String("jwt-secret", os.Getenv("TODOSERVER_JWT_SECRET"), "HS256 secret; enables bearer auth when set")
	seed := fs.Bool("seed", false, "create the sample todos on startup")
	debug := fs.Bool("debug", false, "enable debug logging")
	issue := fs.String("issue-token", "", "print a token for this subject and exit")
	ttl := fs.Duration("token-ttl", 30*24*time.Hour, "lifetime of issued tokens")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log := logging.NewServer(os.Stderr, *debug)
	slog.SetDefault(log)

	if *issue != "" {
		token, err := auth.Issue(*secret, *issue, *ttl, time.Now())
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Println(token)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, closeStore, err := openStore(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer closeStore()

	if *seed {
		todos, err := svc.ListTodos(ctx)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if len(todos) == 0 {
			if err := repo.Seed(ctx, svc, repo.SampleTodos); err != nil {
				return err
			}
			log.Info("seeded sample todos", "count", len(repo.SampleTodos))
		}
	}

	opts := server.Options{Logger: log}
	if *secret != "" {
		if opts.Verifier, err = auth.NewVerifier(*secret); err != nil {
			return err
		}
		log.Info("bearer auth enabled")
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.NewRouter(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen failed: %w", err)
	case <-ctx.Done():
		log.Info("signal caught, shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore returns the sqlite store at path, or an in-memory one when path
// is empty.
func openStore(ctx context.Context, path string) (service.Service, func(), error) {
	if path == "" {
		slog.Info("using in-memory store")
		return repo.NewMemory(), func() {}, nil
	}

	slog.Info("opening database", "path", path)
	db, err := repo.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "err", err)
		}
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
