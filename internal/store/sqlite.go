package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rosseoko/erandi/internal/model"

	_ "modernc.org/sqlite"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    id             TEXT PRIMARY KEY,
    session_id     TEXT NOT NULL,
    status         TEXT NOT NULL,
    stage          TEXT NOT NULL,
    awaiting_input TEXT,
    language       TEXT,
    class_profile  TEXT,
    state          BLOB,
    error          TEXT,
    duration_ms    INTEGER,
    created_at     DATETIME NOT NULL,
    started_at     DATETIME,
    finished_at    DATETIME
)`

const createRunEventsTable = `
CREATE TABLE IF NOT EXISTS run_events (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id     TEXT NOT NULL,
    seq        INTEGER NOT NULL,
    node       TEXT NOT NULL,
    message    TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    UNIQUE (run_id, seq)
)`

// ErrNotFound is returned when a run is not found.
var ErrNotFound = errors.New("run not found")

// ErrRunFinished is returned when an update targets a run that already
// reached a terminal status. Terminal statuses are write-once: a
// concurrent cancel must not be overwritten by an in-flight walk.
var ErrRunFinished = errors.New("run already finished")

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	if _, err := db.Exec(createRunEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create run_events table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRun inserts a new run record.
func (s *SQLiteStore) CreateRun(ctx context.Context, r *model.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
			id, session_id, status, stage, awaiting_input, language,
			class_profile, state, error, duration_ms, created_at,
			started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, r.Status, r.Stage, r.AwaitingInput, r.Language,
		r.ClassProfile, r.State, r.Error, r.DurationMS, r.CreatedAt,
		r.StartedAt, r.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	r := &model.Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, status, stage, awaiting_input, language,
			class_profile, state, error, duration_ms, created_at,
			started_at, finished_at
		FROM runs WHERE id = ?`, id,
	).Scan(
		&r.ID, &r.SessionID, &r.Status, &r.Stage, &r.AwaitingInput, &r.Language,
		&r.ClassProfile, &r.State, &r.Error, &r.DurationMS, &r.CreatedAt,
		&r.StartedAt, &r.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns a paginated list of runs ordered by created_at DESC,
// along with the total count of all runs.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit, offset int) ([]*model.Run, int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count runs: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, session_id, status, stage, awaiting_input, language,
			class_profile, state, error, duration_ms, created_at,
			started_at, finished_at
		FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		r := &model.Run{}
		if err := rows.Scan(
			&r.ID, &r.SessionID, &r.Status, &r.Stage, &r.AwaitingInput, &r.Language,
			&r.ClassProfile, &r.State, &r.Error, &r.DurationMS, &r.CreatedAt,
			&r.StartedAt, &r.FinishedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, total, nil
}

// UpdateRun persists the mutable fields of a run: status, stage, awaited
// input, state blob, error, and timing.
func (s *SQLiteStore) UpdateRun(ctx context.Context, r *model.Run) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, stage = ?, awaiting_input = ?, state = ?,
			error = ?, duration_ms = ?, started_at = ?, finished_at = ?
		WHERE id = ? AND status NOT IN ('completed', 'failed', 'cancelled')`,
		r.Status, r.Stage, r.AwaitingInput, r.State,
		r.Error, r.DurationMS, r.StartedAt, r.FinishedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return s.checkRunAffected(ctx, result, r.ID)
}

// UpdateRunStatus updates the status of a run. Terminal statuses also
// set finished_at.
func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, id, status string) error {
	var result sql.Result
	var err error

	if model.TerminalStatus(status) {
		result, err = s.db.ExecContext(ctx,
			`UPDATE runs SET status = ?, finished_at = ?
			WHERE id = ? AND status NOT IN ('completed', 'failed', 'cancelled')`,
			status, time.Now().UTC(), id,
		)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE runs SET status = ?
			WHERE id = ? AND status NOT IN ('completed', 'failed', 'cancelled')`,
			status, id,
		)
	}

	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return s.checkRunAffected(ctx, result, id)
}

// GetRunStats aggregates run counts by status and stage plus the average
// duration of finished runs.
func (s *SQLiteStore) GetRunStats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{
		CountByStatus: make(map[string]int),
		CountByStage:  make(map[string]int),
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT status, COUNT(*) FROM runs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.CountByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	stageRows, err := tx.QueryContext(ctx, "SELECT stage, COUNT(*) FROM runs GROUP BY stage")
	if err != nil {
		return nil, fmt.Errorf("count by stage: %w", err)
	}
	defer stageRows.Close()
	for stageRows.Next() {
		var stage string
		var count int
		if err := stageRows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		stats.CountByStage[stage] = count
	}
	if err := stageRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage counts: %w", err)
	}

	var avg sql.NullFloat64
	if err := tx.QueryRowContext(ctx,
		"SELECT AVG(duration_ms) FROM runs WHERE duration_ms IS NOT NULL",
	).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average duration: %w", err)
	}
	if avg.Valid {
		stats.AvgDurationMS = avg.Float64
	}

	return stats, nil
}

// AppendEvent adds one timeline entry for a run. Sequence numbers are
// assigned by the caller and unique per run.
func (s *SQLiteStore) AppendEvent(ctx context.Context, runID string, seq int, node, message string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO run_events (run_id, seq, node, message, created_at) VALUES (?, ?, ?, ?, ?)",
		runID, seq, node, message, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run event: %w", err)
	}
	return nil
}

// ListEvents returns a run's timeline in sequence order.
func (s *SQLiteStore) ListEvents(ctx context.Context, runID string) ([]model.RunEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, seq, node, message, created_at
		FROM run_events WHERE run_id = ? ORDER BY seq ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run events: %w", err)
	}
	defer rows.Close()

	var events []model.RunEvent
	for rows.Next() {
		var e model.RunEvent
		if err := rows.Scan(&e.ID, &e.RunID, &e.Seq, &e.Node, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run events: %w", err)
	}

	return events, nil
}

// checkRunAffected distinguishes a missing run from one the terminal
// guard rejected.
func (s *SQLiteStore) checkRunAffected(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	var status string
	err = s.db.QueryRowContext(ctx, "SELECT status FROM runs WHERE id = ?", id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check run status: %w", err)
	}
	return ErrRunFinished
}
