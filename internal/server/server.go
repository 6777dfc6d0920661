// Package server exposes the delegation engine over a JSON HTTP API.
// Handlers translate between wire payloads and the engine; no delegation
// logic lives here.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hiveworks/swarmrouter/internal/delegate"
	"github.com/hiveworks/swarmrouter/internal/ledger"
	"github.com/hiveworks/swarmrouter/internal/version"
	"github.com/hiveworks/swarmrouter/pkg/models"
)

// Server handles HTTP requests for the delegation API.
type Server struct {
	delegator *delegate.Delegator
	mux       *http.ServeMux
}

// New creates a server around the given delegator and registers routes.
func New(d *delegate.Delegator) *Server {
	s := &Server{
		delegator: d,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/v1/tasks", s.handleDelegate)
	s.mux.HandleFunc("GET /api/v1/tasks", s.handleListTasks)
	s.mux.HandleFunc("GET /api/v1/tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/start", s.handleStartTask)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/complete", s.handleCompleteTask)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/fail", s.handleFailTask)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/cancel", s.handleCancelTask)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/bees/{bee_id}/complete", s.handleCompleteBee)
	s.mux.HandleFunc("POST /api/v1/tasks/{id}/bees/{bee_id}/fail", s.handleFailBee)
	s.mux.HandleFunc("GET /api/v1/statistics", s.handleStatistics)
}

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}

func (s *Server) handleDelegate(w http.ResponseWriter, r *http.Request) {
	var req delegate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	resp, err := s.delegator.Delegate(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.delegator.Tasks())
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task := s.delegator.Task(r.PathValue("id"))
	if task == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "task " + r.PathValue("id") + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, taskView(task))
}

func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	s.lifecycle(w, s.delegator.StartTask(r.PathValue("id")))
}

// completionBody carries the optional result/error text for lifecycle posts.
type completionBody struct {
	Result       string `json:"result,omitempty"`
	Error        string `json:"error,omitempty"`
	ActualTokens int    `json:"actual_tokens,omitempty"`
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.lifecycle(w, s.delegator.CompleteTask(r.PathValue("id"), body.Result))
}

func (s *Server) handleFailTask(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.lifecycle(w, s.delegator.FailTask(r.PathValue("id"), body.Error))
}

func (s *Server) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	s.lifecycle(w, s.delegator.CancelTask(r.PathValue("id")))
}

func (s *Server) handleCompleteBee(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.lifecycle(w, s.delegator.CompleteBee(r.PathValue("id"), r.PathValue("bee_id"), body.Result, body.ActualTokens))
}

func (s *Server) handleFailBee(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.lifecycle(w, s.delegator.FailBee(r.PathValue("id"), r.PathValue("bee_id"), body.Error))
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.delegator.Statistics())
}

// lifecycle writes the uniform reply for state-changing requests.
func (s *Server) lifecycle(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody parses an optional JSON body. An empty body is allowed.
func decodeBody(w http.ResponseWriter, r *http.Request) (completionBody, bool) {
	var body completionBody
	if r.Body == nil {
		return body, true
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return body, true
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return body, false
	}
	return body, true
}

// taskStatusView is the snapshot shape returned for a single task.
type taskStatusView struct {
	TaskID       string              `json:"task_id"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Dance        models.Dance        `json:"dance_type"`
	Priority     models.TaskPriority `json:"priority"`
	MaxTokens    int                 `json:"max_tokens"`
	AssignedBees []*models.Bee       `json:"assigned_bees"`
	CreatedAt    string              `json:"created_at"`
	CompletedAt  *string             `json:"completed_at,omitempty"`
	TokenSavings float64             `json:"token_savings"`
	Result       string              `json:"result,omitempty"`
	Error        string              `json:"error,omitempty"`
}

func taskView(t *models.Task) taskStatusView {
	view := taskStatusView{
		TaskID:       t.ID,
		Description:  t.Description,
		Status:       t.Status,
		Dance:        t.Dance,
		Priority:     t.Priority,
		MaxTokens:    t.MaxTokens,
		AssignedBees: t.Bees,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		TokenSavings: t.TokenSavings(),
		Result:       t.Result,
		Error:        t.Error,
	}
	if t.CompletedAt != nil {
		v := t.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
		view.CompletedAt = &v
	}
	return view
}

// writeError maps engine errors to HTTP status codes: validation → 400,
// unknown ids → 404, invalid lifecycle transitions → 409, anything else
// is treated as a defect and surfaces as 500.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *delegate.ValidationError
	var stateErr *models.InvalidStateError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrTaskNotFound), errors.Is(err, ledger.ErrBeeNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
