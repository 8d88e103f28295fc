// Package server exposes a service.Service as the todo REST API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todosync/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// TodoHandler handles HTTP requests for todos and their comments.
type TodoHandler struct {
	svc service.Service
	log *slog.Logger
}

// NewTodoHandler creates a TodoHandler backed by svc.
func NewTodoHandler(svc service.Service, log *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// ListTodos handles GET /todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// GetTodo handles GET /todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	todo, err := h.svc.GetTodo(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var draft service.Draft
	if !decode(w, r, &draft) {
		return
	}
	todo, err := h.svc.CreateTodo(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// UpdateTodo handles PUT /todos/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	var body service.Draft
	if !decode(w, r, &body) {
		return
	}
	todo, err := h.svc.UpdateTodo(r.Context(), service.Todo{
		ID:        id,
		Title:     body.Title,
		Completed: body.Completed,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteTodo(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddComment handles POST /todos/{id}/comments.
func (h *TodoHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	var body service.Comment
	if !decode(w, r, &body) {
		return
	}
	comment, err := h.svc.AddComment(r.Context(), todoID, body.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// UpdateComment handles PUT /todos/{id}/comments/{commentID}.
func (h *TodoHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID", service.CommentNotFound)
	if !ok {
		return
	}
	var body service.Comment
	if !decode(w, r, &body) {
		return
	}
	comment, err := h.svc.UpdateComment(r.Context(), todoID, service.Comment{ID: commentID, Text: body.Text})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// DeleteComment handles DELETE /todos/{id}/comments/{commentID}.
func (h *TodoHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(w, r, "id", service.TodoNotFound)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID", service.CommentNotFound)
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(r.Context(), todoID, commentID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps a service error onto a status code and {"error": msg} body.
func (h *TodoHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		writeErrorJSON(w, http.StatusNotFound, err.Error())
	case service.KindInvalid:
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed", "method", r.Method, "url", r.URL.String(), "err", err)
		writeErrorJSON(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses an integer route variable; on failure it writes a 404 with notFound.
func pathID(w http.ResponseWriter, r *http.Request, name, notFound string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		writeErrorJSON(w, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
