package repo

import (
	"context"
	"fmt"

	"todosync/internal/service"
)

// SampleTodos is the fixture the demo backend starts with when seeded.
var SampleTodos = []service.Todo{
	{
		Title:    "Todo 1",
		Comments: []service.Comment{{Text: "Comment 1"}, {Text: "Comment 2"}},
	},
	{
		Title:    "Todo 2",
		Comments: []service.Comment{{Text: "Comment 3"}, {Text: "Comment 4"}},
	},
}

// Seed creates todos (and their comments) through svc, in order.
func Seed(ctx context.Context, svc service.Service, todos []service.Todo) error {
	for _, t := range todos {
		created, err := svc.CreateTodo(ctx, service.Draft{Title: t.Title, Completed: t.Completed})
		if err != nil {
			return fmt.Errorf("seed todo %q: %w", t.Title, err)
		}
		for _, c := range t.Comments {
			if _, err := svc.AddComment(ctx, created.ID, c.Text); err != nil {
				return fmt.Errorf("seed comment on todo %d: %w", created.ID, err)
			}
		}
	}
	return nil
}
