package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Rosseoko/erandi/internal/model"
)

const developerSystem = `Your name is Erandi, you are an energetic and friendly expert PBL designer developing one
component of a project unit.

You receive the selected project option, the aligned standards, knowledge-graph insights,
the class profile, and the component kind to develop:
  - curriculum: a sequenced list of lessons/milestones covering the project arc.
  - assessment: formative checkpoints plus summative moments with rubric guidance.
  - resources: the materials, readings, tools, and community contacts the project needs.

Return strictly valid JSON: {"kind": "...", "title": "...", "summary": "...",
"items": ["..."], "notes": "..."} with 5-8 concrete, age-appropriate items.`

// Developer builds one component plan of the final unit. Rejected
// plans are revised with the reviewer's feedback folded into the
// prompt.
type Developer struct {
	client Client
	log    *slog.Logger
}

// NewDeveloper creates a developer backed by the given client.
func NewDeveloper(client Client, log *slog.Logger) *Developer {
	return &Developer{client: client, log: log}
}

// Develop produces the plan for one component kind. feedback carries
// reviewer notes when this is a revision pass; empty on the first
// pass. The plan is never nil: failures yield a skeleton plan plus a
// non-nil error.
func (d *Developer) Develop(ctx context.Context, kind string, dc *model.DesignContext, opt *model.ProjectOption, feedback string) (*model.ComponentPlan, error) {
	ctxJSON, err := json.Marshal(struct {
		Option    *model.ProjectOption       `json:"selected_option"`
		Standards model.StandardsAlignment   `json:"standards_alignment"`
		KG        model.KnowledgeGraphResult `json:"kg_insights"`
		Class     string                     `json:"class_profile,omitempty"`
	}{opt, dc.StandardsAlignment, dc.KGInsights, dc.ClassProfile})
	if err != nil {
		return fallbackPlan(kind, opt), fmt.Errorf("develop %s: %w", kind, err)
	}

	prompt := fmt.Sprintf("## Component To Develop\n%s\n\n## Design Context\n%s", kind, ctxJSON)
	if feedback != "" {
		prompt += fmt.Sprintf("\n\n## Reviewer Feedback To Address\n%s", feedback)
	}

	raw, err := d.client.Generate(ctx, Request{
		System:      developerSystem,
		Prompt:      prompt,
		Temperature: 0.5,
	})
	if err != nil {
		d.log.Warn("component development failed, using fallback", "kind", kind, "error", err)
		return fallbackPlan(kind, opt), fmt.Errorf("develop %s: %w", kind, err)
	}

	var plan model.ComponentPlan
	if err := decodeJSON(raw, &plan); err != nil {
		d.log.Warn("component plan unparseable, using fallback", "kind", kind, "error", err)
		return fallbackPlan(kind, opt), fmt.Errorf("develop %s: %w", kind, err)
	}
	plan.Kind = kind

	d.log.Debug("developed component", "kind", kind, "items", len(plan.Items))
	return &plan, nil
}

func fallbackPlan(kind string, opt *model.ProjectOption) *model.ComponentPlan {
	plan := &model.ComponentPlan{
		Kind:    kind,
		Title:   fmt.Sprintf("%s plan for %s", kind, opt.Title),
		Summary: "Outline plan generated without model assistance; review before use.",
		Notes:   "fallback",
	}
	switch kind {
	case model.ComponentCurriculum:
		plan.Items = []string{
			"Launch: introduce the driving question and surface prior knowledge",
			"Investigate: research and hands-on exploration of the topic",
			"Create: build the end product iteratively with peer feedback",
			"Share: present the product to an authentic audience",
			"Reflect: connect outcomes back to the learning objectives",
		}
	case model.ComponentAssessment:
		plan.Items = []string{
			"Formative: weekly check-ins against the learning objectives",
			"Formative: peer feedback protocol at each milestone",
			"Summative: rubric-scored end product",
			"Summative: individual reflection tied to the driving question",
		}
	case model.ComponentResources:
		plan.Items = []string{
			"Core reading and reference materials for the topic",
			"Hands-on materials for building the end product",
			"Digital tools for research and data collection",
			"Community contacts or field experiences where available",
		}
	}
	return plan
}
