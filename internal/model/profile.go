package model

// Project intent constants. The profiler classifies a teacher request into
// one primary intent plus any number of secondary intents.
const (
	IntentScientificInquiry     = "Scientific Inquiry"
	IntentEngineeringDesign     = "Engineering Design"
	IntentCreativeExpression    = "Creative Expression"
	IntentResearchInvestigation = "Research Investigation"
	IntentCommunityAction       = "Community Action"
	IntentSkillApplication      = "Skill Application"
	IntentInterdisciplinary     = "Interdisciplinary"
	IntentTechnologyFocused     = "Technology Focused"
	IntentHistoricalInquiry     = "Historical Inquiry"
	IntentMathematicalModeling  = "Mathematical Modeling"
)

// Content area focus constants.
const (
	ContentSTEMHeavy           = "STEM Heavy"
	ContentHumanitiesFocused   = "Humanities Focused"
	ContentBalancedIntegration = "Balanced Integration"
	ContentCareerTechnical     = "Career/Technical"
	ContentLifeSkills          = "Life Skills"
)

// TeacherRequest is the raw input to the profiling stage.
type TeacherRequest struct {
	RawMessage string `json:"raw_message"`
}

// AgeRange is an approximate student age band extracted from the request.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ProjectProfile is the profiler's structured analysis of a teacher request.
// It is the input to standards alignment and carries everything downstream
// stages need about the project itself.
type ProjectProfile struct {
	Response        string `json:"response,omitempty"`
	AllDetailsGiven bool   `json:"all_details_given"`

	Topic              string `json:"topic,omitempty"`
	GradeLevel         string `json:"grade_level,omitempty"`
	DurationPreference string `json:"duration_preference,omitempty"`
	ClassProfile       string `json:"class_profile,omitempty"`

	// Language handling: requests arrive in any language; analysis is
	// always in English, with the original preserved.
	OriginalLanguage  string `json:"original_language,omitempty"`
	OriginalUtterance string `json:"original_utterance,omitempty"`
	Translation       string `json:"translation,omitempty"`

	AgeRange *AgeRange `json:"age_range,omitempty"`

	PrimaryIntent    string   `json:"primary_intent,omitempty"`
	SecondaryIntents []string `json:"secondary_intents,omitempty"`
	ContentAreaFocus string   `json:"content_area_focus,omitempty"`
	LearningOutcomes []string `json:"learning_outcomes,omitempty"`

	// STEM integration indicators.
	RequiresExperimentation   bool `json:"requires_experimentation"`
	InvolvesDataCollection    bool `json:"involves_data_collection"`
	NeedsMathematicalAnalysis bool `json:"needs_mathematical_analysis"`
	IncludesDesignChallenge   bool `json:"includes_design_challenge"`
	UsesTechnologyTools       bool `json:"uses_technology_tools"`

	// Learning approach indicators.
	CommunityConnectionDesired bool `json:"community_connection_desired"`
	HandsOnEmphasis            bool `json:"hands_on_emphasis"`
	ResearchIntensive          bool `json:"research_intensive"`
	PresentationFocused        bool `json:"presentation_focused"`
	CollaborativeEmphasis      bool `json:"collaborative_emphasis"`

	// Constraint detection.
	MaterialsMentioned            bool     `json:"materials_mentioned"`
	ResourceLimitationsMentioned  bool     `json:"resource_limitations_mentioned"`
	TimeConstraintsNoted          bool     `json:"time_constraints_noted"`
	AssessmentRequirements        []string `json:"assessment_requirements,omitempty"`
	CulturalConsiderations        []string `json:"cultural_considerations,omitempty"`

	ImplicitGoals  []string `json:"implicit_goals,omitempty"`
	ClassInterests []string `json:"class_interests,omitempty"`

	// StandardCodes are specific standards the teacher asked for, to be
	// validated rather than recommended.
	StandardCodes []string `json:"standard_codes,omitempty"`

	RealWorldExploration bool     `json:"real_world_exploration"`
	PlacesToVisit        []string `json:"places_to_visit,omitempty"`
	SkillsToDevelop      []string `json:"skills_to_develop,omitempty"`

	EndProduct string `json:"end_product,omitempty"`

	IterativeEmphasis         bool `json:"iterative_emphasis"`
	InterdisciplinaryEmphasis bool `json:"interdisciplinary_emphasis"`
}

// MissingDetails reports which of the required profile slots (topic, grade
// level, duration) are still empty. The profile loop keeps asking the
// teacher until this is empty.
func (p *ProjectProfile) MissingDetails() []string {
	var missing []string
	if p.Topic == "" {
		missing = append(missing, "topic")
	}
	if p.GradeLevel == "" {
		missing = append(missing, "grade level")
	}
	if p.DurationPreference == "" {
		missing = append(missing, "duration")
	}
	return missing
}

// Complete reports whether all required profile slots are filled.
func (p *ProjectProfile) Complete() bool {
	return len(p.MissingDetails()) == 0
}

// Merge overlays non-empty fields of other onto p, returning a new profile.
// Used when the teacher supplies missing slots across several turns.
func (p ProjectProfile) Merge(other *ProjectProfile) ProjectProfile {
	merged := p
	if other == nil {
		return merged
	}
	if other.Topic != "" {
		merged.Topic = other.Topic
	}
	if other.GradeLevel != "" {
		merged.GradeLevel = other.GradeLevel
	}
	if other.DurationPreference != "" {
		merged.DurationPreference = other.DurationPreference
	}
	if other.ClassProfile != "" {
		merged.ClassProfile = other.ClassProfile
	}
	if other.PrimaryIntent != "" {
		merged.PrimaryIntent = other.PrimaryIntent
	}
	if other.ContentAreaFocus != "" {
		merged.ContentAreaFocus = other.ContentAreaFocus
	}
	if other.EndProduct != "" {
		merged.EndProduct = other.EndProduct
	}
	if len(other.LearningOutcomes) > 0 {
		merged.LearningOutcomes = other.LearningOutcomes
	}
	if len(other.StandardCodes) > 0 {
		merged.StandardCodes = other.StandardCodes
	}
	if other.AgeRange != nil {
		merged.AgeRange = other.AgeRange
	}
	merged.AllDetailsGiven = merged.Complete()
	return merged
}
