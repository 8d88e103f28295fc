// Package service defines the backend-agnostic interface for todo operations.
package service

// Todo represents a single todo item.
// ID is zero until the server assigns one.
type Todo struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Comments  []Comment `json:"comments,omitempty"`
}

// Draft is the payload for creating a todo.
type Draft struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Comment is a note attached to a todo.
type Comment struct {
	ID   int    `json:"id,omitempty"`
	Text string `json:"text"`
}

// Clone returns a deep copy of t.
func (t Todo) Clone() Todo {
	if t.Comments != nil {
		t.Comments = append([]Comment(nil), t.Comments...)
	}
	return t
}
