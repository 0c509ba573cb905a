package model

import "time"

// Run status constants.
const (
	StatusPending       = "pending"
	StatusRunning       = "running"
	StatusAwaitingInput = "awaiting_input"
	StatusCompleted     = "completed"
	StatusFailed        = "failed"
	StatusCancelled     = "cancelled"
)

// Authoring stage constants, in pipeline order.
const (
	StageProfiling     = "profiling"
	StageStandards     = "standards"
	StageKnowledge     = "knowledge_graph"
	StageDesignOptions = "design_options"
	StageSelection     = "selection"
	StageDevelopment   = "development"
	StageFinalAssembly = "final_assembly"
)

// Input kinds a parked run may be awaiting.
const (
	InputProfileDetails   = "profile_details"
	InputDesignFeedback   = "design_feedback"
	InputOptionSelection  = "option_selection"
	InputCurriculumReview = "curriculum_review"
	InputAssessmentReview = "assessment_review"
	InputResourcesReview  = "resources_review"
	InputFinalReview      = "final_review"
)

// validTransitions maps each status to the set of statuses it may transition to.
var validTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusRunning:   true,
		StatusFailed:    true,
		StatusCancelled: true,
	},
	StatusRunning: {
		StatusAwaitingInput: true,
		StatusCompleted:     true,
		StatusFailed:        true,
		StatusCancelled:     true,
	},
	StatusAwaitingInput: {
		StatusRunning:   true,
		StatusFailed:    true,
		StatusCancelled: true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// TerminalStatus reports whether a status is terminal.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusCancelled
}

// RunEvent is one entry in a run's timeline: a node entered, an interrupt,
// an approval, a failure.
type RunEvent struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	Node      string    `json:"node"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Run is a persistent authoring run walked by the orchestration engine.
// State carries the serialized engine state so a parked run can resume
// after teacher input, or after a restart.
type Run struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Stage     string `json:"stage"`

	// AwaitingInput names the input kind the run is parked on, empty
	// unless Status is awaiting_input.
	AwaitingInput string `json:"awaiting_input,omitempty"`

	Language     string `json:"language,omitempty"`
	ClassProfile string `json:"class_profile,omitempty"`

	State []byte `json:"state,omitempty"`
	Error string `json:"error,omitempty"`

	DurationMS *int       `json:"duration_ms,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
