package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rosseoko/erandi/internal/model"
	"github.com/Rosseoko/erandi/internal/template"
)

const designerSystem = `Your name is Erandi, you are an energetic and friendly expert PBL designer.
You receive a project design context with the teacher's project profile, the aligned
standards, knowledge-graph insights, and a ranked list of candidate design templates.

Select the three best-fitting templates from the candidates (no repeats) and produce one
fully fleshed-out project option per template. Each option is a JSON object with:
  template_id, template_name, template_rationale, title, focus_approach,
  driving_question, end_product, key_skills (3-5), learning_objectives (each tied
  explicitly to one of the aligned standards), key_activities, assessment_highlights,
  assessment_summary, differentiation_notes.

Ensure every option is adequate for the class profile, in particular the age of the
students. Return strictly valid JSON: {"project_options": [option, option, option]}.`

// Designer generates three project design options on three distinct
// templates, ranked against the profile.
type Designer struct {
	client   Client
	registry *template.Registry
	log      *slog.Logger
}

// NewDesigner creates a designer over the given template registry.
func NewDesigner(client Client, registry *template.Registry, log *slog.Logger) *Designer {
	return &Designer{client: client, registry: registry, log: log}
}

// Design produces the options result for the given context. The
// dimensional configuration derived from the profile is attached as
// configuration_details. On model failure the top three ranked
// templates yield skeleton options so selection can still proceed.
func (d *Designer) Design(ctx context.Context, dc *model.DesignContext) (*model.ProjectOptionsResult, error) {
	cfg := template.DeriveConfiguration(&dc.ProjectProfile)
	fits := template.RankTemplates(d.registry, &dc.ProjectProfile)

	prompt, err := d.buildPrompt(dc, cfg, fits)
	if err != nil {
		return d.fallbackResult(dc, cfg, fits), fmt.Errorf("design options: %w", err)
	}

	raw, err := d.client.Generate(ctx, Request{
		System:      designerSystem,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err != nil {
		d.log.Warn("design option generation failed, using fallback", "error", err)
		return d.fallbackResult(dc, cfg, fits), fmt.Errorf("design options: %w", err)
	}

	var result model.ProjectOptionsResult
	if err := decodeJSON(raw, &result); err != nil {
		d.log.Warn("design options unparseable, using fallback", "error", err)
		return d.fallbackResult(dc, cfg, fits), fmt.Errorf("design options: %w", err)
	}
	if len(result.ProjectOptions) < 3 {
		d.log.Warn("design options incomplete, using fallback", "options", len(result.ProjectOptions))
		return d.fallbackResult(dc, cfg, fits), nil
	}
	result.ProjectOptions = result.ProjectOptions[:3]
	result.ConfigurationDetails = cfg.Details()

	d.log.Debug("generated design options",
		"topic", dc.ProjectProfile.Topic,
		"templates", optionTemplates(result.ProjectOptions))
	return &result, nil
}

func (d *Designer) buildPrompt(dc *model.DesignContext, cfg template.Configuration, fits []template.Fit) (string, error) {
	p := dc.ProjectProfile

	var chars []string
	if p.HandsOnEmphasis {
		chars = append(chars, "hands-on")
	}
	if p.CommunityConnectionDesired {
		chars = append(chars, "community")
	}
	if p.ResearchIntensive {
		chars = append(chars, "research")
	}
	if p.IncludesDesignChallenge {
		chars = append(chars, "design-challenge")
	}
	if p.RequiresExperimentation {
		chars = append(chars, "experimentation")
	}
	if p.CollaborativeEmphasis {
		chars = append(chars, "collaboration")
	}
	if len(chars) == 0 {
		chars = append(chars, "general")
	}

	var std strings.Builder
	for _, s := range dc.StandardsAlignment.Standards {
		desc := s.Description
		if len(desc) > 80 {
			desc = desc[:77] + "..."
		}
		fmt.Fprintf(&std, "- %s (%s): %s\n", s.Code, s.GradeLevel, desc)
	}

	kgJSON, err := json.Marshal(dc.KGInsights)
	if err != nil {
		return "", err
	}
	fitsJSON, err := json.Marshal(fits)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PROJECT CONTEXT\n")
	fmt.Fprintf(&b, "Topic: %s\nGrade level: %s\nDuration: %s\nCharacteristics: %s\n\n",
		p.Topic, p.GradeLevel, p.DurationPreference, strings.Join(chars, ", "))
	fmt.Fprintf(&b, "STANDARDS ALIGNMENT (%d):\n%s\n", len(dc.StandardsAlignment.Standards), std.String())
	fmt.Fprintf(&b, "KNOWLEDGE GRAPH INSIGHTS:\n%s\n\n", kgJSON)
	fmt.Fprintf(&b, "DIMENSIONAL CONFIGURATION:\n%s\n\n", cfg.Describe())
	fmt.Fprintf(&b, "CANDIDATE TEMPLATES (ranked by fit):\n%s\n\n", fitsJSON)
	if dc.ClassProfile != "" {
		fmt.Fprintf(&b, "CLASS PROFILE (adapt all options to its limitations and capabilities):\n%s\n\n", dc.ClassProfile)
	}
	b.WriteString("For each of 3 options, pick a different template, name it and give a rationale, then describe that option's driving question, end product, skills, objectives, and assessment.")
	return b.String(), nil
}

// fallbackResult builds skeleton options on the three best-ranked
// templates so the teacher can still pick a direction.
func (d *Designer) fallbackResult(dc *model.DesignContext, cfg template.Configuration, fits []template.Fit) *model.ProjectOptionsResult {
	topic := dc.ProjectProfile.Topic
	n := 3
	if len(fits) < n {
		n = len(fits)
	}

	options := make([]model.ProjectOption, 0, n)
	for _, fit := range fits[:n] {
		tmpl, err := d.registry.Get(fit.TemplateID)
		if err != nil {
			continue
		}
		options = append(options, model.ProjectOption{
			TemplateID:        tmpl.ID,
			TemplateName:      tmpl.DisplayName,
			TemplateRationale: strings.Join(fit.Reasons, "; "),
			Title:             fmt.Sprintf("%s: %s", tmpl.DisplayName, topic),
			FocusApproach:     tmpl.Description,
			DrivingQuestion:   fmt.Sprintf("How can we explore %s in a way that matters to our community?", topic),
			EndProduct:        "A student-created product presenting findings to an authentic audience.",
			KeySkills:         append([]string{}, tmpl.Strengths...),
			AssessmentSummary: "Assess process, product, and presentation against the aligned standards.",
		})
	}

	return &model.ProjectOptionsResult{
		ProjectOptions:       options,
		ConfigurationDetails: cfg.Details(),
		Response:             "Generated outline options; full generation was unavailable.",
	}
}

func optionTemplates(options []model.ProjectOption) []string {
	ids := make([]string, len(options))
	for i, o := range options {
		ids[i] = o.TemplateID
	}
	return ids
}
