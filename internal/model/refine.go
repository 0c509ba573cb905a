package model

// Refinement warning constants.
const (
	WarnNoChangeDetected = "no_change_detected"
	WarnFallbackPatch    = "llm_fallback_patch_applied"
	WarnMissingRequest   = "missing_change_request"
	WarnRefinerError     = "refining_agent_error"
)

// RefinementContext is everything the refiner needs to apply a teacher's
// change request to a selected project option.
type RefinementContext struct {
	CurrentProject ProjectOption `json:"current_project"`
	Language       string        `json:"language,omitempty"`
	ClassProfile   string        `json:"class_profile,omitempty"`

	// Optional alignment context used to keep refinements coherent with
	// the standards and knowledge-graph insights already established.
	StandardsAlignment *StandardsAlignment   `json:"standards_alignment,omitempty"`
	KGInsights         *KnowledgeGraphResult `json:"kg_insights,omitempty"`

	// Strict restricts changes to explicitly requested fields only,
	// disabling coherence cascades.
	Strict bool `json:"strict"`
}

// RefinementResult is the full-rewrite outcome of a refinement pass.
type RefinementResult struct {
	UpdatedProject ProjectOption `json:"updated_project"`
	ChangeSummary  string        `json:"change_summary"`
	AffectedFields []string      `json:"affected_fields"`
	Warnings       []string      `json:"warnings"`
}

// DiffOptionFields returns the names of option fields that differ between
// a and b, in a stable order. Used when the refiner omits affected_fields.
func DiffOptionFields(a, b *ProjectOption) []string {
	var fields []string
	if a.Title != b.Title {
		fields = append(fields, "title")
	}
	if a.FocusApproach != b.FocusApproach {
		fields = append(fields, "focus_approach")
	}
	if a.DrivingQuestion != b.DrivingQuestion {
		fields = append(fields, "driving_question")
	}
	if a.EndProduct != b.EndProduct {
		fields = append(fields, "end_product")
	}
	if !equalStrings(a.KeySkills, b.KeySkills) {
		fields = append(fields, "key_skills")
	}
	if !equalStrings(a.LearningObjectives, b.LearningObjectives) {
		fields = append(fields, "learning_objectives")
	}
	if !equalStrings(a.KeyActivities, b.KeyActivities) {
		fields = append(fields, "key_activities")
	}
	if !equalStrings(a.AssessmentHighlights, b.AssessmentHighlights) {
		fields = append(fields, "assessment_highlights")
	}
	if a.AssessmentSummary != b.AssessmentSummary {
		fields = append(fields, "assessment_summary")
	}
	if a.TemplateName != b.TemplateName {
		fields = append(fields, "template_name")
	}
	if a.TemplateRationale != b.TemplateRationale {
		fields = append(fields, "template_rationale")
	}
	if a.DifferentiationNotes != b.DifferentiationNotes {
		fields = append(fields, "differentiation_notes")
	}
	return fields
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
