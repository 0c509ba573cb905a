package store

import (
	"context"
	"errors"

	"github.com/Rosseoko/erandi/internal/model"
)

// ErrInvalidTransition is returned when a run status transition is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// RunStats holds aggregate authoring-run statistics.
type RunStats struct {
	Total         int            `json:"total"`
	CountByStatus map[string]int `json:"count_by_status"`
	CountByStage  map[string]int `json:"count_by_stage"`
	AvgDurationMS float64        `json:"avg_duration_ms"`
}

// Store defines the persistence operations for runs and their timelines.
type Store interface {
	CreateRun(ctx context.Context, r *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*model.Run, int, error)
	UpdateRun(ctx context.Context, r *model.Run) error
	UpdateRunStatus(ctx context.Context, id, status string) error
	GetRunStats(ctx context.Context) (*RunStats, error)
	AppendEvent(ctx context.Context, runID string, seq int, node, message string) error
	ListEvents(ctx context.Context, runID string) ([]model.RunEvent, error)
	Close() error
}
