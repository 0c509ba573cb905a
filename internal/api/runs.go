package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rosseoko/erandi/internal/engine"
	"github.com/Rosseoko/erandi/internal/model"
	"github.com/Rosseoko/erandi/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxBodySize      = 1 << 20 // 1 MB

	timeFormat = time.RFC3339
)

// runResponse augments the stored run with the progress checkpoints
// derived from its state blob. The raw state is not exposed.
type runResponse struct {
	ID            string           `json:"id"`
	SessionID     string           `json:"session_id"`
	Status        string           `json:"status"`
	Stage         string           `json:"stage"`
	AwaitingInput string           `json:"awaiting_input,omitempty"`
	Language      string           `json:"language,omitempty"`
	ClassProfile  string           `json:"class_profile,omitempty"`
	Error         string           `json:"error,omitempty"`
	Progress      *engine.Progress `json:"progress,omitempty"`

	DurationMS *int    `json:"duration_ms,omitempty"`
	CreatedAt  string  `json:"created_at"`
	StartedAt  *string `json:"started_at,omitempty"`
	FinishedAt *string `json:"finished_at,omitempty"`
}

func (s *Server) runResponse(run *model.Run) runResponse {
	resp := runResponse{
		ID:            run.ID,
		SessionID:     run.SessionID,
		Status:        run.Status,
		Stage:         run.Stage,
		AwaitingInput: run.AwaitingInput,
		Language:      run.Language,
		ClassProfile:  run.ClassProfile,
		Error:         run.Error,
		DurationMS:    run.DurationMS,
		CreatedAt:     run.CreatedAt.Format(timeFormat),
	}
	if run.StartedAt != nil {
		v := run.StartedAt.Format(timeFormat)
		resp.StartedAt = &v
	}
	if run.FinishedAt != nil {
		v := run.FinishedAt.Format(timeFormat)
		resp.FinishedAt = &v
	}
	if state, err := engine.UnmarshalState(run.State); err == nil {
		p := state.Progress()
		resp.Progress = &p
	}
	return resp
}

// listRunsResponse wraps the paginated list response.
type listRunsResponse struct {
	Runs   []runResponse `json:"runs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req engine.SubmitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RawMessage == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "raw_message is required")
		return
	}

	run, err := s.engine.Submit(r.Context(), req)
	if err != nil {
		s.logger.Error("submit run", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to submit run")
		return
	}

	s.writeJSON(w, http.StatusAccepted, s.runResponse(run))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("get run", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	s.writeJSON(w, http.StatusOK, s.runResponse(run))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", defaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	runs, total, err := s.store.ListRuns(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	items := make([]runResponse, len(runs))
	for i, run := range runs {
		items[i] = s.runResponse(run)
	}

	s.writeJSON(w, http.StatusOK, listRunsResponse{
		Runs:   items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Server) handleRunInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input engine.Input
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if input.Kind == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "kind is required")
		return
	}

	run, err := s.engine.Resume(r.Context(), id, input)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	case errors.Is(err, engine.ErrNotAwaiting):
		s.writeError(w, http.StatusConflict, "run is not awaiting input")
		return
	case errors.Is(err, store.ErrRunFinished):
		s.writeError(w, http.StatusConflict, "run already finished")
		return
	case err != nil:
		// Mismatched input kind, bad selection index, missing feedback.
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, s.runResponse(run))
}

func (s *Server) handleCancelRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.engine.Cancel(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "run not found")
		case errors.Is(err, store.ErrInvalidTransition), errors.Is(err, store.ErrRunFinished):
			s.writeError(w, http.StatusConflict, "run already finished")
		default:
			s.logger.Error("cancel run", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to cancel run")
		}
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("get cancelled run", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to retrieve run")
		return
	}

	s.writeJSON(w, http.StatusOK, s.runResponse(run))
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
