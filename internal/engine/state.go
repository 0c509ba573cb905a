package engine

import (
	"encoding/json"
	"fmt"

	"github.com/Rosseoko/erandi/internal/model"
)

// ProfileState tracks the profiling phase. Clarifications collects the
// extra detail messages supplied while the profile was incomplete; they
// are appended to the original request on each profiling pass.
type ProfileState struct {
	Data           *model.ProjectProfile `json:"data,omitempty"`
	Complete       bool                  `json:"complete"`
	Clarifications []string              `json:"clarifications,omitempty"`
}

// DesignState tracks the design phase through validation and option
// generation.
type DesignState struct {
	Standards *model.StandardsAlignment   `json:"standards,omitempty"`
	Knowledge *model.KnowledgeGraphResult `json:"knowledge_graph,omitempty"`
	Options   *model.ProjectOptionsResult `json:"options,omitempty"`
	Valid     bool                        `json:"valid"`

	// Feedback collects design-feedback messages that restart the
	// design phase after a failed validation.
	Feedback []string `json:"feedback,omitempty"`
}

// ComponentState is one development component and its approval loop.
type ComponentState struct {
	Plan      *model.ComponentPlan `json:"plan,omitempty"`
	Approved  bool                 `json:"approved"`
	Feedback  string               `json:"feedback,omitempty"`
	Revisions int                  `json:"revisions"`
}

// DevelopmentState tracks the three parallel components.
type DevelopmentState struct {
	Curriculum ComponentState `json:"curriculum"`
	Assessment ComponentState `json:"assessment"`
	Resources  ComponentState `json:"resources"`
}

// Component returns the state for the given component kind.
func (d *DevelopmentState) Component(kind string) *ComponentState {
	switch kind {
	case model.ComponentCurriculum:
		return &d.Curriculum
	case model.ComponentAssessment:
		return &d.Assessment
	case model.ComponentResources:
		return &d.Resources
	}
	return nil
}

// AllApproved reports whether every component passed review.
func (d *DevelopmentState) AllApproved() bool {
	return d.Curriculum.Approved && d.Assessment.Approved && d.Resources.Approved
}

// FinalState tracks assembly and the final review loop.
type FinalState struct {
	Unit     *model.FinalUnit `json:"unit,omitempty"`
	Approved bool             `json:"approved"`

	// Feedback carries the pending global-refinement or clarification
	// notes for the next assembly pass.
	Feedback        string   `json:"feedback,omitempty"`
	RevisionHistory []string `json:"revision_history,omitempty"`
}

// RunState is the full serialized state of an authoring run. It is
// persisted as the run's state blob after every node so a parked or
// restarted run resumes exactly where it stopped.
type RunState struct {
	Request model.TeacherRequest `json:"request"`

	Profile     ProfileState     `json:"profile"`
	Design      DesignState      `json:"design"`
	Development DevelopmentState `json:"development"`
	Final       FinalState       `json:"final"`

	// Node is the next graph node to execute.
	Node string `json:"node"`

	// EventSeq is the next timeline sequence number.
	EventSeq int `json:"event_seq"`
}

// progressSteps are the checkpoints counted toward run progress, in
// pipeline order.
var progressSteps = []struct {
	name string
	done func(*RunState) bool
}{
	{"profile_created", func(s *RunState) bool { return s.Profile.Data != nil }},
	{"profile_complete", func(s *RunState) bool { return s.Profile.Complete }},
	{"standards_aligned", func(s *RunState) bool { return s.Design.Standards != nil }},
	{"knowledge_graph_built", func(s *RunState) bool { return s.Design.Knowledge != nil }},
	{"design_validated", func(s *RunState) bool { return s.Design.Valid }},
	{"options_generated", func(s *RunState) bool { return s.Design.Options != nil }},
	{"option_selected", func(s *RunState) bool { return s.Design.Options != nil && s.Design.Options.SelectionComplete }},
	{"curriculum_approved", func(s *RunState) bool { return s.Development.Curriculum.Approved }},
	{"assessment_approved", func(s *RunState) bool { return s.Development.Assessment.Approved }},
	{"resources_approved", func(s *RunState) bool { return s.Development.Resources.Approved }},
	{"unit_assembled", func(s *RunState) bool { return s.Final.Unit != nil }},
	{"final_approved", func(s *RunState) bool { return s.Final.Approved }},
}

// Progress summarizes how far a run has advanced.
type Progress struct {
	Step      int      `json:"step"`
	Total     int      `json:"total"`
	Percent   float64  `json:"percent"`
	Completed []string `json:"completed"`
}

// Progress reports the run's completed checkpoints out of the twelve
// the pipeline defines.
func (s *RunState) Progress() Progress {
	p := Progress{Total: len(progressSteps)}
	for _, step := range progressSteps {
		if step.done(s) {
			p.Step++
			p.Completed = append(p.Completed, step.name)
		}
	}
	p.Percent = float64(p.Step) / float64(p.Total) * 100
	return p
}

// SelectedOption returns the teacher's chosen option, or nil before
// selection.
func (s *RunState) SelectedOption() *model.ProjectOption {
	if s.Design.Options == nil {
		return nil
	}
	return s.Design.Options.Selected()
}

// DesignContext assembles the context handed to the design-phase and
// development-phase agents.
func (s *RunState) DesignContext(classProfile string) *model.DesignContext {
	dc := &model.DesignContext{ClassProfile: classProfile}
	if s.Profile.Data != nil {
		dc.ProjectProfile = *s.Profile.Data
	}
	if s.Design.Standards != nil {
		dc.StandardsAlignment = *s.Design.Standards
	}
	if s.Design.Knowledge != nil {
		dc.KGInsights = *s.Design.Knowledge
	}
	return dc
}

// Marshal serializes the state for the run's state blob.
func (s *RunState) Marshal() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal run state: %w", err)
	}
	return b, nil
}

// UnmarshalState restores a run state from its persisted blob. A nil
// or empty blob yields a fresh state at the profile node.
func UnmarshalState(b []byte) (*RunState, error) {
	s := &RunState{Node: NodeProfile}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("unmarshal run state: %w", err)
	}
	return s, nil
}
