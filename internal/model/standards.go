package model

// Standard type constants.
const (
	StandardNGSS     = "ngss"
	StandardCCSSMath = "ccss_math"
	StandardCCSSELA  = "ccss_ela"
	StandardNCSS     = "ncss"
	StandardOther    = "other"
)

// Bloom's taxonomy level constants.
const (
	BloomRemember   = "remember"
	BloomUnderstand = "understand"
	BloomApply      = "apply"
	BloomAnalyze    = "analyze"
	BloomEvaluate   = "evaluate"
	BloomCreate     = "create"
)

// Depth-of-knowledge level constants.
const (
	DOKRecall            = "recall"
	DOKSkillConcept      = "skill_concept"
	DOKStrategicThinking = "strategic_thinking"
	DOKExtendedThinking  = "extended_thinking"
)

// FallbackStandardCode marks an alignment synthesized after an agent
// failure rather than produced by the model.
const FallbackStandardCode = "DEFAULT-001"

// ContextualStandard is a curriculum standard contextualized to a project.
type ContextualStandard struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Description string `json:"description"`
	GradeLevel  string `json:"grade_level"`
	IsValid     bool   `json:"is_valid"`

	PrimaryBloomLevel         string   `json:"primary_bloom_level"`
	DOKLevel                  string   `json:"dok_level"`
	ProjectSpecificVocabulary []string `json:"project_specific_vocabulary"`
}

// StandardsAlignment is the standards stage result: one or more standards
// plus alignment metadata.
type StandardsAlignment struct {
	Standards                  []ContextualStandard `json:"standards"`
	Prerequisites              []string             `json:"prerequisites"`
	CrossCurricularConnections []string             `json:"cross_curricular_connections"`
	AlignmentConfidence        float64              `json:"alignment_confidence"`
	ValidationIssues           []string             `json:"validation_issues"`
}

// PrimaryStandard returns the first standard, which downstream stages treat
// as the anchor for knowledge-graph analysis. Returns nil when empty.
func (a *StandardsAlignment) PrimaryStandard() *ContextualStandard {
	if len(a.Standards) == 0 {
		return nil
	}
	return &a.Standards[0]
}

// StandardByCode returns the standard with the given code, or nil.
func (a *StandardsAlignment) StandardByCode(code string) *ContextualStandard {
	for i := range a.Standards {
		if a.Standards[i].Code == code {
			return &a.Standards[i]
		}
	}
	return nil
}

// FallbackAlignment builds the minimal alignment used when the standards
// agent fails. Confidence is zero and the failure is recorded as a
// validation issue so callers can tell it apart from a real alignment.
func FallbackAlignment(gradeLevel, issue string) *StandardsAlignment {
	return &StandardsAlignment{
		Standards: []ContextualStandard{{
			Code:                      FallbackStandardCode,
			Type:                      StandardOther,
			Description:               "Fallback alignment used due to an internal error during standards retrieval.",
			GradeLevel:                gradeLevel,
			IsValid:                   false,
			PrimaryBloomLevel:         BloomUnderstand,
			DOKLevel:                  DOKRecall,
			ProjectSpecificVocabulary: []string{},
		}},
		Prerequisites:              []string{},
		CrossCurricularConnections: []string{},
		AlignmentConfidence:        0,
		ValidationIssues:           []string{issue},
	}
}
