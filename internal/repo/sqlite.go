package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"todosync/internal/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT    NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS comments (
	todo_id INTEGER NOT NULL,
	id      INTEGER NOT NULL,
	text    TEXT    NOT NULL,
	PRIMARY KEY (todo_id, id)
);`

// SQLite is a todo repository backed by a sqlite database file.
// AUTOINCREMENT keeps todo ids from being reused after a delete.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// path may be ":memory:".
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ListTodos implements service.Service.
func (s *SQLite) ListTodos(ctx context.Context) ([]service.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, completed FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []service.Todo{}
	index := make(map[int]int)
	for rows.Next() {
		var t service.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		index[t.ID] = len(todos)
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `SELECT todo_id, id, text FROM comments ORDER BY todo_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var todoID int
		var c service.Comment
		if err := crows.Scan(&todoID, &c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if i, ok := index[todoID]; ok {
			todos[i].Comments = append(todos[i].Comments, c)
		}
	}
	return todos, crows.Err()
}

// GetTodo implements service.Service.
func (s *SQLite) GetTodo(ctx context.Context, id int) (service.Todo, error) {
	return s.getTodo(ctx, s.db, id)
}

// CreateTodo implements service.Service.
func (s *SQLite) CreateTodo(ctx context.Context, draft service.Draft) (service.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, completed) VALUES (?, ?)`,
		draft.Title, draft.Completed,
	)
	if err != nil {
		return service.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return service.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return service.Todo{ID: int(id), Title: draft.Title, Completed: draft.Completed}, nil
}

// UpdateTodo implements service.Service.
func (s *SQLite) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, completed = ? WHERE id = ?`,
		todo.Title, todo.Completed, todo.ID,
	)
	if err != nil {
		return service.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.Todo{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	return s.GetTodo(ctx, todo.ID)
}

// DeleteTodo implements service.Service.
func (s *SQLite) DeleteTodo(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE todo_id = ?`, id); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return tx.Commit()
}

// AddComment implements service.Service.
func (s *SQLite) AddComment(ctx context.Context, todoID int, text string) (service.Comment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return service.Comment{}, err
	}
	defer tx.Rollback()

	if err := s.requireTodo(ctx, tx, todoID); err != nil {
		return service.Comment{}, err
	}

	var id int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM comments WHERE todo_id = ?`, todoID,
	).Scan(&id)
	if err != nil {
		return service.Comment{}, fmt.Errorf("next comment id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO comments (todo_id, id, text) VALUES (?, ?, ?)`,
		todoID, id, text,
	); err != nil {
		return service.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return service.Comment{}, err
	}
	return service.Comment{ID: id, Text: text}, nil
}

// UpdateComment implements service.Service.
func (s *SQLite) UpdateComment(ctx context.Context, todoID int, c service.Comment) (service.Comment, error) {
	if err := s.requireTodo(ctx, s.db, todoID); err != nil {
		return service.Comment{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE comments SET text = ? WHERE todo_id = ? AND id = ?`,
		c.Text, todoID, c.ID,
	)
	if err != nil {
		return service.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.Comment{}, service.Errorf(service.KindNotFound, service.CommentNotFound)
	}
	return c, nil
}

// DeleteComment implements service.Service.
func (s *SQLite) DeleteComment(ctx context.Context, todoID, commentID int) error {
	if err := s.requireTodo(ctx, s.db, todoID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE todo_id = ? AND id = ?`, todoID, commentID,
	)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.Errorf(service.KindNotFound, service.CommentNotFound)
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLite) requireTodo(ctx context.Context, q querier, id int) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM todos WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	return err
}

func (s *SQLite) getTodo(ctx context.Context, q querier, id int) (service.Todo, error) {
	var t service.Todo
	err := q.QueryRowContext(ctx,
		`SELECT id, title, completed FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Todo{}, service.Errorf(service.KindNotFound, service.TodoNotFound)
	}
	if err != nil {
		return service.Todo{}, fmt.Errorf("query todo: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, text FROM comments WHERE todo_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return service.Todo{}, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c service.Comment
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return service.Todo{}, fmt.Errorf("scan comment: %w", err)
		}
		t.Comments = append(t.Comments, c)
	}
	return t, rows.Err()
}
