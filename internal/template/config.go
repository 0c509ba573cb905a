package template

import (
	"fmt"
	"strings"

	"github.com/Rosseoko/erandi/internal/model"
)

// Configuration pins a project design to one value per dimension.
type Configuration struct {
	Duration             Duration             `json:"duration"`
	SocialStructure      SocialStructure      `json:"social_structure"`
	CognitiveComplexity  CognitiveComplexity  `json:"cognitive_complexity"`
	AuthenticityLevel    AuthenticityLevel    `json:"authenticity_level"`
	ScaffoldingIntensity ScaffoldingIntensity `json:"scaffolding_intensity"`
	ProductComplexity    ProductComplexity    `json:"product_complexity"`
	DeliveryMode         DeliveryMode         `json:"delivery_mode"`
	Rationale            string               `json:"rationale,omitempty"`
}

// Describe renders the configuration as a short human-readable block
// for prompt context.
func (c Configuration) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Duration: %s\n", DisplayName(string(c.Duration)))
	fmt.Fprintf(&b, "Social structure: %s\n", DisplayName(string(c.SocialStructure)))
	fmt.Fprintf(&b, "Cognitive complexity: %s\n", DisplayName(string(c.CognitiveComplexity)))
	fmt.Fprintf(&b, "Authenticity level: %s\n", DisplayName(string(c.AuthenticityLevel)))
	fmt.Fprintf(&b, "Scaffolding: %s\n", DisplayName(string(c.ScaffoldingIntensity)))
	fmt.Fprintf(&b, "Product complexity: %s\n", DisplayName(string(c.ProductComplexity)))
	fmt.Fprintf(&b, "Delivery mode: %s", DisplayName(string(c.DeliveryMode)))
	return b.String()
}

// Details flattens the configuration into the map shape carried on
// design option results.
func (c Configuration) Details() map[string]any {
	return map[string]any{
		"duration":              string(c.Duration),
		"social_structure":      string(c.SocialStructure),
		"cognitive_complexity":  string(c.CognitiveComplexity),
		"authenticity_level":    string(c.AuthenticityLevel),
		"scaffolding_intensity": string(c.ScaffoldingIntensity),
		"product_complexity":    string(c.ProductComplexity),
		"delivery_mode":         string(c.DeliveryMode),
		"rationale":             c.Rationale,
	}
}

// durationByPhrase maps duration preference phrases to time scales.
// Matched as substrings, in order, so "2-3 weeks" lands on UNIT before
// the JOURNEY entries are consulted.
var durationByPhrase = []struct {
	phrase string
	value  Duration
}{
	{"1-2 days", DurationSprint},
	{"1 week", DurationUnit},
	{"2-3 weeks", DurationUnit},
	{"1 month", DurationJourney},
	{"semester", DurationCampaign},
}

// DeriveConfiguration picks a dimensional configuration from the
// project profile. Defaults are conservative: facilitated scaffolding,
// face-to-face delivery, portfolio products.
func DeriveConfiguration(p *model.ProjectProfile) Configuration {
	cfg := Configuration{
		Duration:             DurationUnit,
		SocialStructure:      SocialIndividual,
		CognitiveComplexity:  CognitiveAnalysis,
		AuthenticityLevel:    AuthenticityAnchored,
		ScaffoldingIntensity: ScaffoldingFacilitated,
		ProductComplexity:    ProductPortfolio,
		DeliveryMode:         DeliveryFaceToFace,
	}

	pref := strings.ToLower(p.DurationPreference)
	for _, d := range durationByPhrase {
		if strings.Contains(pref, d.phrase) {
			cfg.Duration = d.value
			break
		}
	}

	if p.CollaborativeEmphasis {
		cfg.SocialStructure = SocialCollaborative
	}
	if p.IncludesDesignChallenge || p.RequiresExperimentation {
		cfg.CognitiveComplexity = CognitiveSynthesis
	}
	if p.CommunityConnectionDesired {
		cfg.AuthenticityLevel = AuthenticityApplied
	}
	if p.IncludesDesignChallenge {
		cfg.ProductComplexity = ProductSystem
	}

	cfg.Rationale = fmt.Sprintf("Configuration optimized for %s with %s duration", p.Topic, p.DurationPreference)
	return cfg
}
