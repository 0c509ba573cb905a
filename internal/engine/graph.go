package engine

import "github.com/Rosseoko/erandi/internal/model"

// Graph node names. Await* nodes park the run on teacher input; the
// rest execute an agent or a pure decision.
const (
	NodeProfile           = "profile"
	NodeAwaitProfileInput = "await_profile_input"
	NodeStandards         = "standards"
	NodeKnowledge         = "knowledge_graph"
	NodeValidateDesign    = "validate_design"
	NodeAwaitDesignInput  = "await_design_input"
	NodeDesignOptions     = "design_options"
	NodeAwaitSelection    = "await_selection"
	NodeDevelopment       = "development"
	NodeAwaitReview       = "await_component_review"
	NodeAssembly          = "final_assembly"
	NodeAwaitFinalReview  = "await_final_review"
	NodeDone              = "done"
)

// routeAfterProfile decides whether profiling loops for more detail or
// the design phase starts.
func routeAfterProfile(s *RunState) string {
	if !s.Profile.Complete {
		return NodeAwaitProfileInput
	}
	return NodeStandards
}

// routeAfterValidation decides whether the design phase restarts on
// teacher feedback or proceeds to option generation.
func routeAfterValidation(s *RunState) string {
	if !s.Design.Valid {
		return NodeAwaitDesignInput
	}
	return NodeDesignOptions
}

// routeAfterSelection decides whether a confirmed selection moves the
// run into development or options are regenerated.
func routeAfterSelection(s *RunState) string {
	if s.Design.Options != nil && s.Design.Options.SelectionComplete {
		return NodeDevelopment
	}
	return NodeDesignOptions
}

// nextComponentReview returns the awaited input kind for the first
// component still lacking approval, reviewing in the fixed order
// curriculum, assessment, resources. Empty when all are approved.
func nextComponentReview(s *RunState) string {
	switch {
	case !s.Development.Curriculum.Approved:
		return model.InputCurriculumReview
	case !s.Development.Assessment.Approved:
		return model.InputAssessmentReview
	case !s.Development.Resources.Approved:
		return model.InputResourcesReview
	}
	return ""
}

// componentKindForInput maps a review input kind back to its component.
func componentKindForInput(kind string) string {
	switch kind {
	case model.InputCurriculumReview:
		return model.ComponentCurriculum
	case model.InputAssessmentReview:
		return model.ComponentAssessment
	case model.InputResourcesReview:
		return model.ComponentResources
	}
	return ""
}

// routeAfterDevelopment moves to assembly once every component is
// approved, otherwise parks on the next pending review.
func routeAfterDevelopment(s *RunState) string {
	if s.Development.AllApproved() {
		return NodeAssembly
	}
	return NodeAwaitReview
}

// routeFinalDecision picks the re-entry point for a rejected final
// review. Global refinement and clarification both loop through
// assembly; re-selection unwinds to the option choice with the
// development phase reset.
func routeFinalDecision(revisionType string) string {
	switch revisionType {
	case model.RevisionSelection:
		return NodeAwaitSelection
	case model.RevisionGlobal, model.RevisionClarification:
		return NodeAssembly
	}
	return NodeAssembly
}

// awaitedInput maps an await node to the input kind it parks on.
func awaitedInput(node string, s *RunState) string {
	switch node {
	case NodeAwaitProfileInput:
		return model.InputProfileDetails
	case NodeAwaitDesignInput:
		return model.InputDesignFeedback
	case NodeAwaitSelection:
		return model.InputOptionSelection
	case NodeAwaitReview:
		return nextComponentReview(s)
	case NodeAwaitFinalReview:
		return model.InputFinalReview
	}
	return ""
}
