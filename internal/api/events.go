package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rosseoko/erandi/internal/model"
	"github.com/Rosseoko/erandi/internal/store"
)

func (s *Server) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Verify run exists.
	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("get run for events", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	// Set SSE headers.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// If already terminal, return empty stream immediately.
	if model.TerminalStatus(run.Status) {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Disable write timeout for long-lived SSE connections.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Error("set write deadline for SSE", "error", err)
	}

	// Safe even if the run finished between the status check above and
	// this call: Subscribe on a closed topic returns a closed channel,
	// so the loop below exits immediately.
	ch, unsub := s.engine.Broker().Subscribe(id)
	defer unsub()

	w.WriteHeader(http.StatusOK)
	flusher, canFlush := w.(http.Flusher)
	if canFlush {
		flusher.Flush()
	}

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				// Run finished; send explicit done event before closing.
				_ = writeSSEEvent(w, "done", "stream complete")
				if canFlush {
					flusher.Flush()
				}
				return
			}
			if err := writeSSEData(w, msg); err != nil {
				return // Write failed (e.g. client gone).
			}
			if canFlush {
				flusher.Flush()
			}
		case <-r.Context().Done():
			return // Client disconnected.
		}
	}
}

// eventHistoryEntry is a single timeline entry in the history response.
type eventHistoryEntry struct {
	Seq       int    `json:"seq"`
	Node      string `json:"node"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// eventHistoryResponse is the JSON response for GET /v1/runs/:id/events/history.
type eventHistoryResponse struct {
	RunID  string              `json:"run_id"`
	Events []eventHistoryEntry `json:"events"`
}

func (s *Server) handleGetEventHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Verify run exists.
	_, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("get run for event history", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	timeline, err := s.store.ListEvents(r.Context(), id)
	if err != nil {
		s.logger.Error("list run events", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	events := make([]eventHistoryEntry, len(timeline))
	for i, ev := range timeline {
		events[i] = eventHistoryEntry{
			Seq:       ev.Seq,
			Node:      ev.Node,
			Message:   ev.Message,
			CreatedAt: ev.CreatedAt.Format(timeFormat),
		}
	}

	s.writeJSON(w, http.StatusOK, eventHistoryResponse{
		RunID:  id,
		Events: events,
	})
}

// writeSSEData writes a timeline message as an SSE data event. Multi-line
// strings are split so that each segment gets its own "data:" prefix, per
// the SSE spec.
func writeSSEData(w http.ResponseWriter, msg string) error {
	for seg := range strings.SplitSeq(msg, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", seg); err != nil {
			return err
		}
	}
	// Blank line terminates the event.
	_, err := fmt.Fprint(w, "\n")
	return err
}

// writeSSEEvent writes a named SSE event (event: <type>\ndata: <data>\n\n).
func writeSSEEvent(w http.ResponseWriter, eventType, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
