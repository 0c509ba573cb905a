package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rosseoko/erandi/internal/model"
)

// Fit is the score a template earned against a project profile, with
// the reasons that produced it.
type Fit struct {
	TemplateID   string   `json:"template_id"`
	TemplateName string   `json:"template_name"`
	Score        int      `json:"score"`
	Reasons      []string `json:"reasons"`
}

// EvaluateFit scores how well a template matches the project profile.
// Strength matches add points weighted by how decisive each signal is,
// subject alignment adds two, and high-complexity templates lose a
// point per mentioned constraint.
func EvaluateFit(t *Template, p *model.ProjectProfile) Fit {
	fit := Fit{TemplateID: t.ID, TemplateName: t.DisplayName}

	add := func(points int, reason string) {
		fit.Score += points
		fit.Reasons = append(fit.Reasons, reason)
	}

	if p.CommunityConnectionDesired && t.HasStrength("community_connection") {
		add(3, "Strong community engagement match")
	}
	if p.HandsOnEmphasis && t.HasStrength("hands_on") {
		add(2, "Hands-on activity alignment")
	}
	if p.ResearchIntensive && t.HasStrength("research") {
		add(2, "Research focus alignment")
	}
	if p.IncludesDesignChallenge && t.HasStrength("design_challenge") {
		add(3, "Design challenge perfect match")
	}
	if p.RequiresExperimentation && t.HasStrength("experimentation") {
		add(3, "Experimentation requirement match")
	}
	if p.CollaborativeEmphasis && t.HasStrength("collaboration") {
		add(1, "Collaboration support")
	}
	if p.IterativeEmphasis && t.HasStrength("iteration") {
		add(1, "Iteration support")
	}
	if p.InterdisciplinaryEmphasis && t.HasStrength("interdisciplinary") {
		add(1, "Interdisciplinary support")
	}
	if p.CommunityConnectionDesired && t.HasStrength("community_connection") {
		add(1, "Community connection support")
	}

	area := strings.ToLower(p.ContentAreaFocus)
	if area != "" && t.CoversSubject(area) {
		add(2, fmt.Sprintf("Subject area alignment (%s)", area))
	}

	if t.Complexity == ComplexityHigh {
		if p.ResourceLimitationsMentioned {
			add(-1, "May be challenging with resource limitations")
		}
		if p.TimeConstraintsNoted {
			add(-1, "May be challenging with time constraints")
		}
	}

	return fit
}

// RankTemplates scores every template in the registry against the
// profile and returns the fits sorted best first. Ties break on
// template id so the ranking is stable.
func RankTemplates(r *Registry, p *model.ProjectProfile) []Fit {
	fits := make([]Fit, 0, r.Len())
	for _, t := range r.List() {
		fits = append(fits, EvaluateFit(t, p))
	}
	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].Score != fits[j].Score {
			return fits[i].Score > fits[j].Score
		}
		return fits[i].TemplateID < fits[j].TemplateID
	})
	return fits
}
