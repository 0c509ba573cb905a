// Package template holds the catalog of project design templates, the
// dimensional configuration model, and the fit scoring used to rank
// templates against a project profile.
package template

// Complexity buckets templates by how demanding they are to run.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// CompatibilityMatrix lists the dimension values a template supports.
// A configuration is compatible when every axis value appears in the
// matching list.
type CompatibilityMatrix struct {
	Durations             []Duration             `json:"duration_compatible"`
	SocialStructures      []SocialStructure      `json:"social_structure_compatible"`
	CognitiveComplexities []CognitiveComplexity  `json:"cognitive_complexity_range"`
	AuthenticityLevels    []AuthenticityLevel    `json:"authenticity_compatible"`
	Scaffolding           []ScaffoldingIntensity `json:"scaffolding_compatible"`
	ProductComplexities   []ProductComplexity    `json:"product_complexity_compatible"`
	DeliveryModes         []DeliveryMode         `json:"delivery_mode_compatible"`
}

// Template describes one entry in the design catalog.
type Template struct {
	ID                  string              `json:"id"`
	DisplayName         string              `json:"display_name"`
	Description         string              `json:"description"`
	Intent              string              `json:"intent"`
	Strengths           []string            `json:"strengths"`
	SubjectAreas        []string            `json:"subject_areas"`
	Complexity          Complexity          `json:"complexity"`
	CommunityEngagement string              `json:"community_engagement"`
	Compatibility       CompatibilityMatrix `json:"compatibility_matrix"`
}

// HasStrength reports whether the template carries the given strength tag.
func (t *Template) HasStrength(tag string) bool {
	for _, s := range t.Strengths {
		if s == tag {
			return true
		}
	}
	return false
}

// CoversSubject reports whether the template serves the given content
// area. Templates tagged "multiple" cover every subject.
func (t *Template) CoversSubject(area string) bool {
	for _, s := range t.SubjectAreas {
		if s == area || s == "multiple" {
			return true
		}
	}
	return false
}

// CompatibleWith reports whether every axis of the configuration is
// permitted by the template's matrix. Empty axis lists permit anything,
// so partially specified matrices stay permissive.
func (t *Template) CompatibleWith(cfg Configuration) bool {
	m := t.Compatibility
	if !axisAllows(m.Durations, cfg.Duration) {
		return false
	}
	if !axisAllows(m.SocialStructures, cfg.SocialStructure) {
		return false
	}
	if !axisAllows(m.CognitiveComplexities, cfg.CognitiveComplexity) {
		return false
	}
	if !axisAllows(m.AuthenticityLevels, cfg.AuthenticityLevel) {
		return false
	}
	if !axisAllows(m.Scaffolding, cfg.ScaffoldingIntensity) {
		return false
	}
	if !axisAllows(m.ProductComplexities, cfg.ProductComplexity) {
		return false
	}
	return axisAllows(m.DeliveryModes, cfg.DeliveryMode)
}

func axisAllows[T comparable](allowed []T, value T) bool {
	var zero T
	if value == zero || len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

// MatchesIntent reports whether the template was built for the given
// teaching intent, e.g. "Engineering Design".
func (t *Template) MatchesIntent(intent string) bool {
	return t.Intent == intent
}
