package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rosseoko/erandi/internal/model"
)

const profilerSystem = `You are an expert at analyzing educational project requests and creating detailed project profiles.

CRITICAL INSTRUCTIONS FOR NON-ENGLISH REQUESTS:
1. First, detect if the request is in a language other than English.
2. If it is not English, you MUST:
   - Set original_language to the language code (e.g. 'es', 'fr', 'de', 'zh')
   - Set original_utterance to the exact original text
   - Translate the text to English and set translated_utterance
   - Base ALL your analysis on the English translation
3. If it is already English, set original_language to 'en' and leave
   original_utterance and translated_utterance empty.

ALWAYS create your project profile analysis in English, regardless of input language.
Be thorough and detailed. Return strictly valid JSON matching the project profile schema:
topic, grade_level, duration_preference, class_profile, primary_intent, secondary_intents,
content_area_focus, learning_outcomes, requires_experimentation, involves_data_collection,
needs_mathematical_analysis, includes_design_challenge, uses_technology_tools,
community_connection_desired, hands_on_emphasis, research_intensive, presentation_focused,
collaborative_emphasis, materials_mentioned, resource_limitations_mentioned,
time_constraints_noted, implicit_goals, class_interests, standard_codes,
real_world_exploration, places_to_visit, skills_to_develop, end_product,
iterative_emphasis, interdisciplinary_emphasis, all_details_given, response.`

// Profiler turns a raw teacher request into a structured project
// profile.
type Profiler struct {
	client Client
	log    *slog.Logger
}

// NewProfiler creates a profiler backed by the given client.
func NewProfiler(client Client, log *slog.Logger) *Profiler {
	return &Profiler{client: client, log: log}
}

// CreateProfile analyzes the teacher's request. Age hints found in the
// raw text supplement whatever the model extracted.
func (p *Profiler) CreateProfile(ctx context.Context, req model.TeacherRequest) (*model.ProjectProfile, error) {
	prompt := fmt.Sprintf("## Teacher's Project Request\n%s\n\nAnalyze this request carefully and create a detailed project profile. Remember to handle language translation as specified in your instructions.", req.RawMessage)

	raw, err := p.client.Generate(ctx, Request{
		System: profilerSystem,
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("profiling: %w", err)
	}

	var profile model.ProjectProfile
	if err := decodeJSON(raw, &profile); err != nil {
		return nil, fmt.Errorf("profiling: %w", err)
	}

	supplementAges(&profile, req.RawMessage)

	p.log.Debug("created project profile",
		"topic", profile.Topic,
		"grade_level", profile.GradeLevel,
		"language", profile.OriginalLanguage)
	return &profile, nil
}
