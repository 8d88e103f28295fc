package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"todosync/internal/auth"
	"todosync/internal/service"
)

// APIPrefix is the path every todo route lives under.
const APIPrefix = "/api"

// Options configures the router.
type Options struct {
	// Logger receives request logs and internal errors. Defaults to slog.Default().
	Logger *slog.Logger

	// Verifier, when set, requires a valid bearer token on every API request.
	Verifier *auth.Verifier
}

// RegisterRoutes sets up the todo routes on router.
func RegisterRoutes(router *mux.Router, h *TodoHandler) {
	router.HandleFunc("/todos", h.ListTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", h.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos/{id}", h.GetTodo).Methods(http.MethodGet)
	router.HandleFunc("/todos/{id}", h.UpdateTodo).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}", h.DeleteTodo).Methods(http.MethodDelete)
	router.HandleFunc("/todos/{id}/comments", h.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/todos/{id}/comments/{commentID}", h.UpdateComment).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}/comments/{commentID}", h.DeleteComment).Methods(http.MethodDelete)

	// Preflight routes; CORSMethodMiddleware fills in Access-Control-Allow-Methods.
	for _, path := range []string{"/todos", "/todos/{id}", "/todos/{id}/comments", "/todos/{id}/comments/{commentID}"} {
		router.HandleFunc(path, preflight).Methods(http.MethodOptions)
	}
}

// NewRouter builds the full HTTP handler for svc.
func NewRouter(svc service.Service, opts Options) *mux.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	router := mux.NewRouter()
	router.NotFoundHandler = requestLogger(log)(http.HandlerFunc(notFound))
	router.Use(requestLogger(log))

	api := router.PathPrefix(APIPrefix).Subrouter()
	// Method mismatches are resolved by the subrouter that owns the routes.
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.Use(mux.CORSMethodMiddleware(api))
	api.Use(allowOrigin)
	if opts.Verifier != nil {
		api.Use(requireToken(opts.Verifier))
	}

	RegisterRoutes(api, NewTodoHandler(svc, log))
	return router
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeErrorJSON(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorJSON(w, http.StatusMethodNotAllowed, "Method not allowed")
}
