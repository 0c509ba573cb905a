package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Rosseoko/erandi/internal/model"
)

const assemblerSystem = `Your name is Erandi, you are an energetic and friendly expert PBL designer assembling a
complete project unit from its approved pieces.

You receive the selected project option and the approved curriculum, assessment, and
resources plans. Write a cohesive unit: a short title, a 2-4 sentence overview that ties
the driving question to the end product, and the three plans carried over with any wording
polished for consistency. Do not drop or invent plan items.

Return strictly valid JSON matching: {"title": "...", "overview": "...", "option": {...},
"curriculum": {...}, "assessment": {...}, "resources": {...}}.`

// Assembler merges the approved components into the final unit.
type Assembler struct {
	client Client
	log    *slog.Logger
}

// NewAssembler creates an assembler backed by the given client.
func NewAssembler(client Client, log *slog.Logger) *Assembler {
	return &Assembler{client: client, log: log}
}

// Assemble builds the final unit. On model failure the unit is
// stitched together mechanically from the inputs so a run can always
// finish. globalFeedback carries the teacher's notes when this is a
// global-refinement pass.
func (a *Assembler) Assemble(ctx context.Context, opt *model.ProjectOption, curriculum, assessment, resources *model.ComponentPlan, globalFeedback string) (*model.FinalUnit, error) {
	fallback := stitchUnit(opt, curriculum, assessment, resources)

	in, err := json.Marshal(struct {
		Option     *model.ProjectOption `json:"option"`
		Curriculum *model.ComponentPlan `json:"curriculum"`
		Assessment *model.ComponentPlan `json:"assessment"`
		Resources  *model.ComponentPlan `json:"resources"`
	}{opt, curriculum, assessment, resources})
	if err != nil {
		return fallback, fmt.Errorf("assemble: %w", err)
	}

	prompt := fmt.Sprintf("## Approved Pieces\n%s", in)
	if globalFeedback != "" {
		prompt += fmt.Sprintf("\n\n## Global Refinement Feedback To Apply\n%s", globalFeedback)
	}

	raw, err := a.client.Generate(ctx, Request{
		System: assemblerSystem,
		Prompt: prompt,
	})
	if err != nil {
		a.log.Warn("final assembly failed, stitching unit mechanically", "error", err)
		return fallback, fmt.Errorf("assemble: %w", err)
	}

	var unit model.FinalUnit
	if err := decodeJSON(raw, &unit); err != nil {
		a.log.Warn("assembled unit unparseable, stitching mechanically", "error", err)
		return fallback, fmt.Errorf("assemble: %w", err)
	}
	if unit.Title == "" {
		unit.Title = fallback.Title
	}

	a.log.Debug("assembled final unit", "title", unit.Title)
	return &unit, nil
}

func stitchUnit(opt *model.ProjectOption, curriculum, assessment, resources *model.ComponentPlan) *model.FinalUnit {
	return &model.FinalUnit{
		Title:      opt.Title,
		Overview:   fmt.Sprintf("%s Students answer %q by creating %s.", opt.FocusApproach, opt.DrivingQuestion, opt.EndProduct),
		Option:     *opt,
		Curriculum: *curriculum,
		Assessment: *assessment,
		Resources:  *resources,
	}
}
