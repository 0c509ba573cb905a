package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rosseoko/erandi/internal/model"
)

const enricherSystem = `Your name is Erandi, you are an energetic and friendly expert in PBL design and knowledge graphs.
Only analyze the single standard provided; do not introduce or fetch any other standard codes.

Produce a knowledge graph result with non-empty fields, relating all insights to the
project topic and the standard:

1. standard_code and standard_description: copy exactly from the given standard.
2. project_topics (3 entries): {name, description} for key concepts tied to the standard.
3. cross_subject_connections (2 entries): {subject, connection} for other disciplines.
4. real_world_applications (2 entries): {application, details, sdg} including a related UN SDG.
5. curriculum_resources (2 entries): {title, url} for high-quality existing resources.
6. pbl_integration_ideas (3 entries): short bullet ideas for project-based activities.
7. relevance_confidence: a number between 0.0 and 1.0.

Return strictly valid JSON. Do not leave any list empty.`

// Enricher runs knowledge-graph analysis on one aligned standard.
type Enricher struct {
	client Client
	log    *slog.Logger
}

// NewEnricher creates an enricher backed by the given client.
func NewEnricher(client Client, log *slog.Logger) *Enricher {
	return &Enricher{client: client, log: log}
}

// Enrich analyzes the standard identified by code, or the primary
// standard when code is empty. The result is never nil: failures
// produce the fallback result plus a non-nil error.
func (e *Enricher) Enrich(ctx context.Context, alignment *model.StandardsAlignment, code string) (*model.KnowledgeGraphResult, error) {
	std := alignment.PrimaryStandard()
	if code != "" {
		if found := alignment.StandardByCode(code); found != nil {
			std = found
		}
	}
	if std == nil {
		return model.FallbackKnowledgeGraph(nil), fmt.Errorf("knowledge graph: alignment has no standards")
	}

	prompt := fmt.Sprintf("## Standard To Analyze\ncode: %s\ngrade_level: %s\ndescription: %s\n\nProduce the knowledge graph result for this standard.",
		std.Code, std.GradeLevel, std.Description)

	raw, err := e.client.Generate(ctx, Request{
		System: enricherSystem,
		Prompt: prompt,
	})
	if err != nil {
		e.log.Warn("knowledge graph enrichment failed, using fallback", "standard", std.Code, "error", err)
		return model.FallbackKnowledgeGraph(std), fmt.Errorf("knowledge graph: %w", err)
	}

	var result model.KnowledgeGraphResult
	if err := decodeJSON(raw, &result); err != nil {
		e.log.Warn("knowledge graph response unparseable, using fallback", "standard", std.Code, "error", err)
		return model.FallbackKnowledgeGraph(std), fmt.Errorf("knowledge graph: %w", err)
	}

	// The analyzed standard anchors the result regardless of what the
	// model echoed back.
	result.StandardCode = std.Code
	result.StandardDescription = std.Description

	e.log.Debug("enriched standard",
		"standard", std.Code,
		"topics", len(result.ProjectTopics),
		"confidence", result.RelevanceConfidence)
	return &result, nil
}
