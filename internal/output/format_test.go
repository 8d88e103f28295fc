package output

import (
	"bytes"
	"testing"

	"todosync/internal/service"
	"todosync/internal/store"
)

func TestFormatTodo(t *testing.T) {
	tests := []struct {
		name string
		todo service.Todo
		want string
	}{
		{"open", service.Todo{ID: 3, Title: "Buy milk"}, "   3  [ ] Buy milk\n"},
		{"done", service.Todo{ID: 12, Title: "Ship it", Completed: true}, "  12  [x] Ship it\n"},
		{"empty title", service.Todo{ID: 1, Title: "  "}, "   1  [ ] (untitled)\n"},
		{"newlines", service.Todo{ID: 1, Title: "a\nb\r\nc"}, "   1  [ ] a b  c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTodo(&buf, tt.todo)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatTodoDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTodoDetail(&buf, service.Todo{
		ID:    1,
		Title: "Todo 1",
		Comments: []service.Comment{
			{ID: 1, Text: "Comment 1"},
			{ID: 2, Text: "Comment 2"},
		},
	})

	want := "   1  [ ] Todo 1\n        #1  Comment 1\n        #2  Comment 2\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name string
		snap store.Snapshot
		want string
	}{
		{"idle", store.Snapshot{Status: store.Idle}, ""},
		{"succeeded", store.Snapshot{Status: store.Succeeded}, ""},
		{"loading", store.Snapshot{Status: store.Loading}, "loading...\n"},
		{"failed", store.Snapshot{Status: store.Failed, Err: "Todo not found"}, "error: Todo not found\n"},
		{
			"loading wins over failed",
			store.Snapshot{
				Status: store.Failed,
				Err:    "boom",
				Ops: map[store.Op]store.Request{
					store.OpList:   {Status: store.Loading},
					store.OpCreate: {Status: store.Failed, Err: "boom"},
				},
			},
			"loading...\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatStatus(&buf, tt.snap)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}
