package model

// Development component kinds.
const (
	ComponentCurriculum = "curriculum"
	ComponentAssessment = "assessment"
	ComponentResources  = "resources"
)

// ComponentPlan is one developed slice of the final unit: the
// curriculum sequence, the assessment plan, or the resource kit.
type ComponentPlan struct {
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Items    []string `json:"items"`
	Notes    string   `json:"notes,omitempty"`
	Revision int      `json:"revision"`
}

// FinalUnit is the assembled project unit delivered at the end of a
// run: the selected option plus the three approved component plans.
type FinalUnit struct {
	Title      string        `json:"title"`
	Overview   string        `json:"overview"`
	Option     ProjectOption `json:"option"`
	Curriculum ComponentPlan `json:"curriculum"`
	Assessment ComponentPlan `json:"assessment"`
	Resources  ComponentPlan `json:"resources"`

	RevisionHistory []string `json:"revision_history,omitempty"`
}

// Final review revision type constants. The final review decision
// carries one of these to pick the re-entry point.
const (
	RevisionGlobal        = "global"
	RevisionSelection     = "selection"
	RevisionClarification = "clarification"
)
