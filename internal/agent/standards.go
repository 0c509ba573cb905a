package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rosseoko/erandi/internal/model"
)

const alignerSystem = `Your name is Erandi, you are an energetic and friendly standards alignment expert for Project-Based Learning.

Your task: create a comprehensive standards alignment for the given project.

KEY RULES:
1. If standard codes are provided, validate them and suggest corrections if needed.
2. If no standard codes are given, recommend appropriate standards based on topic and grade.
3. All standards MUST match the project's grade level.
4. Focus on NGSS and Common Core standards.
5. Make learning objectives specific to the project topic and end product.

OUTPUT: strictly valid JSON with fields standards (array of {code, type, description,
grade_level, is_valid, primary_bloom_level, dok_level, project_specific_vocabulary}),
prerequisites, cross_curricular_connections, alignment_confidence, validation_issues.
Type must be one of ngss, ccss_math, ccss_ela, ncss, other.`

// Aligner produces a standards alignment for a profiled project. On
// model failure it falls back to a single default standard so
// downstream stages always have something to work with.
type Aligner struct {
	client Client
	log    *slog.Logger
}

// NewAligner creates an aligner backed by the given client.
func NewAligner(client Client, log *slog.Logger) *Aligner {
	return &Aligner{client: client, log: log}
}

// Align maps the project onto educational standards. The returned
// alignment is never nil: failures produce the fallback alignment and
// a non-nil error describing what went wrong.
func (a *Aligner) Align(ctx context.Context, profile *model.ProjectProfile) (*model.StandardsAlignment, error) {
	msg := "Create standards alignment for this project."
	if len(profile.StandardCodes) > 0 {
		msg += fmt.Sprintf(" Validate these provided standards: %s", strings.Join(profile.StandardCodes, ", "))
	} else {
		msg += " Find appropriate standards based on the project content."
	}

	ctxJSON, err := json.Marshal(profile)
	if err != nil {
		return model.FallbackAlignment(profile.GradeLevel, err.Error()), fmt.Errorf("standards alignment: %w", err)
	}

	raw, err := a.client.Generate(ctx, Request{
		System: alignerSystem,
		Prompt: fmt.Sprintf("%s\n\n## Project Profile\n%s", msg, ctxJSON),
	})
	if err != nil {
		a.log.Warn("standards alignment failed, using fallback", "error", err)
		return model.FallbackAlignment(profile.GradeLevel, err.Error()), fmt.Errorf("standards alignment: %w", err)
	}

	var alignment model.StandardsAlignment
	if err := decodeJSON(raw, &alignment); err != nil {
		a.log.Warn("standards alignment unparseable, using fallback", "error", err)
		return model.FallbackAlignment(profile.GradeLevel, err.Error()), fmt.Errorf("standards alignment: %w", err)
	}
	if len(alignment.Standards) == 0 {
		a.log.Warn("standards alignment returned no standards, using fallback")
		return model.FallbackAlignment(profile.GradeLevel, "no standards returned"), nil
	}

	a.log.Debug("aligned standards",
		"topic", profile.Topic,
		"standards", len(alignment.Standards))
	return &alignment, nil
}
