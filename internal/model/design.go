package model

// DesignContext bundles everything the design stage needs: the profile,
// the standards alignment, and the knowledge-graph insights.
type DesignContext struct {
	ProjectProfile     ProjectProfile       `json:"project_profile"`
	StandardsAlignment StandardsAlignment   `json:"standards_alignment"`
	KGInsights         KnowledgeGraphResult `json:"kg_insights"`
	ClassProfile       string               `json:"class_profile,omitempty"`
}

// ProjectOption is one candidate project design built on a template.
type ProjectOption struct {
	TemplateID        string `json:"template_id"`
	TemplateName      string `json:"template_name"`
	TemplateRationale string `json:"template_rationale"`

	Title                string   `json:"title"`
	FocusApproach        string   `json:"focus_approach"`
	DrivingQuestion      string   `json:"driving_question"`
	EndProduct           string   `json:"end_product"`
	KeySkills            []string `json:"key_skills"`
	LearningObjectives   []string `json:"learning_objectives"`
	KeyActivities        []string `json:"key_activities"`
	AssessmentHighlights []string `json:"assessment_highlights"`
	AssessmentSummary    string   `json:"assessment_summary"`
	DifferentiationNotes string   `json:"differentiation_notes,omitempty"`
}

// ProjectOptionsResult is the design stage output: three options on three
// distinct templates, plus the derived configuration details. Selection
// fields are filled in once the teacher chooses.
type ProjectOptionsResult struct {
	ProjectOptions       []ProjectOption `json:"project_options"`
	ConfigurationDetails map[string]any  `json:"configuration_details"`

	UserSelectedOption *int   `json:"user_selected_option,omitempty"`
	SelectionComplete  bool   `json:"selection_complete"`
	Response           string `json:"response,omitempty"`
	SelectedTemplate   string `json:"selected_template,omitempty"`
}

// Selected returns the chosen option, or nil when no valid selection exists.
func (r *ProjectOptionsResult) Selected() *ProjectOption {
	if r.UserSelectedOption == nil {
		return nil
	}
	i := *r.UserSelectedOption
	if i < 0 || i >= len(r.ProjectOptions) {
		return nil
	}
	return &r.ProjectOptions[i]
}
