package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Rosseoko/erandi/internal/model"
	"github.com/Rosseoko/erandi/internal/template"
)

// stubClient returns canned responses in order, or an error.
type stubClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (s *stubClient) Generate(_ context.Context, req Request) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return "", s.err
	}
	i := s.calls - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProfilerDecodesProfile(t *testing.T) {
	stub := &stubClient{responses: []string{
		`{"topic": "volcanoes", "grade_level": "5", "duration_preference": "2-3 weeks", "original_language": "en", "requires_experimentation": true}`,
	}}
	p := NewProfiler(stub, testLogger())

	profile, err := p.CreateProfile(context.Background(), model.TeacherRequest{RawMessage: "I want a volcano project"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if profile.Topic != "volcanoes" {
		t.Errorf("Topic = %q, want volcanoes", profile.Topic)
	}
	if !profile.RequiresExperimentation {
		t.Error("RequiresExperimentation not decoded")
	}
}

func TestProfilerSupplementsAges(t *testing.T) {
	stub := &stubClient{responses: []string{`{"topic": "water cycle"}`}}
	p := NewProfiler(stub, testLogger())

	profile, err := p.CreateProfile(context.Background(), model.TeacherRequest{
		RawMessage: "a project about the water cycle for ages 10-12",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if profile.AgeRange == nil || profile.AgeRange.Min != 10 || profile.AgeRange.Max != 12 {
		t.Fatalf("AgeRange = %+v, want 10-12", profile.AgeRange)
	}
	if profile.GradeLevel != "5-7" {
		t.Errorf("GradeLevel = %q, want 5-7", profile.GradeLevel)
	}
}

func TestProfilerToleratesFencedJSON(t *testing.T) {
	stub := &stubClient{responses: []string{"```json\n{\"topic\": \"bees\"}\n```"}}
	p := NewProfiler(stub, testLogger())

	profile, err := p.CreateProfile(context.Background(), model.TeacherRequest{RawMessage: "bees"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if profile.Topic != "bees" {
		t.Errorf("Topic = %q, want bees", profile.Topic)
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"for my 13 year olds", 13},
		{"students are 9 years old", 9},
		{"age: 11", 11},
		{"no ages here", 0},
	}
	for _, tt := range tests {
		if got := ExtractAge(tt.text); got != tt.want {
			t.Errorf("ExtractAge(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestExtractAgeRange(t *testing.T) {
	r := ExtractAgeRange("a unit for ages 10-12 on ecosystems")
	if r == nil || r.Min != 10 || r.Max != 12 {
		t.Fatalf("ExtractAgeRange = %+v, want {10 12}", r)
	}
	if ExtractAgeRange("a unit on ecosystems") != nil {
		t.Error("expected nil for text without an age range")
	}
}

func TestGradesForAges(t *testing.T) {
	grades := GradesForAges([]int{5, 6, 18})
	want := []string{"K", "1", "12", "College"}
	if len(grades) != len(want) {
		t.Fatalf("GradesForAges = %v, want %v", grades, want)
	}
	for i := range want {
		if grades[i] != want[i] {
			t.Fatalf("GradesForAges = %v, want %v", grades, want)
		}
	}
}

func TestAlignerFallbackOnError(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	a := NewAligner(stub, testLogger())

	alignment, err := a.Align(context.Background(), &model.ProjectProfile{Topic: "soil", GradeLevel: "4"})
	if err == nil {
		t.Fatal("expected error from failed alignment")
	}
	if alignment == nil {
		t.Fatal("fallback alignment is nil")
	}
	std := alignment.PrimaryStandard()
	if std == nil || std.Code != model.FallbackStandardCode {
		t.Fatalf("fallback standard = %+v, want code %s", std, model.FallbackStandardCode)
	}
	if std.GradeLevel != "4" {
		t.Errorf("fallback GradeLevel = %q, want 4", std.GradeLevel)
	}
}

func TestAlignerValidatesProvidedCodes(t *testing.T) {
	stub := &stubClient{responses: []string{
		`{"standards": [{"code": "5-ESS2-1", "type": "ngss", "description": "Earth systems", "grade_level": "5", "is_valid": true}], "alignment_confidence": 0.9}`,
	}}
	a := NewAligner(stub, testLogger())

	alignment, err := a.Align(context.Background(), &model.ProjectProfile{
		Topic:         "earth systems",
		StandardCodes: []string{"5-ESS2-1"},
	})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := alignment.PrimaryStandard().Code; got != "5-ESS2-1" {
		t.Errorf("primary standard = %q, want 5-ESS2-1", got)
	}
	if !strings.Contains(stub.prompts[0], "Validate these provided standards: 5-ESS2-1") {
		t.Error("prompt does not ask to validate provided codes")
	}
}

func TestEnricherAnchorsStandard(t *testing.T) {
	stub := &stubClient{responses: []string{
		`{"standard_code": "WRONG", "standard_description": "wrong", "project_topics": [{"name": "plate tectonics", "description": "..."}], "relevance_confidence": 0.8}`,
	}}
	e := NewEnricher(stub, testLogger())

	alignment := &model.StandardsAlignment{Standards: []model.ContextualStandard{
		{Code: "5-ESS2-1", Description: "Earth systems interactions", GradeLevel: "5"},
		{Code: "5-PS1-1", Description: "Matter models", GradeLevel: "5"},
	}}

	kg, err := e.Enrich(context.Background(), alignment, "5-PS1-1")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	// The analyzed standard wins over whatever the model echoed.
	if kg.StandardCode != "5-PS1-1" {
		t.Errorf("StandardCode = %q, want 5-PS1-1", kg.StandardCode)
	}
	if kg.StandardDescription != "Matter models" {
		t.Errorf("StandardDescription = %q, want the selected standard's description", kg.StandardDescription)
	}
}

func TestEnricherFallback(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	e := NewEnricher(stub, testLogger())

	alignment := &model.StandardsAlignment{Standards: []model.ContextualStandard{
		{Code: "5-ESS2-1", Description: "Earth systems", GradeLevel: "5"},
	}}
	kg, err := e.Enrich(context.Background(), alignment, "")
	if err == nil {
		t.Fatal("expected error from failed enrichment")
	}
	if kg.StandardCode != "5-ESS2-1" {
		t.Errorf("fallback StandardCode = %q, want 5-ESS2-1", kg.StandardCode)
	}
	if kg.RelevanceConfidence != 0 {
		t.Errorf("fallback confidence = %v, want 0", kg.RelevanceConfidence)
	}
}

func designContext() *model.DesignContext {
	return &model.DesignContext{
		ProjectProfile: model.ProjectProfile{
			Topic:                   "bridges",
			GradeLevel:              "6",
			DurationPreference:      "2-3 weeks",
			ContentAreaFocus:        "science",
			IncludesDesignChallenge: true,
			HandsOnEmphasis:         true,
		},
		StandardsAlignment: model.StandardsAlignment{Standards: []model.ContextualStandard{
			{Code: "MS-ETS1-1", Description: "Define criteria and constraints", GradeLevel: "6"},
		}},
		KGInsights: model.KnowledgeGraphResult{StandardCode: "MS-ETS1-1"},
	}
}

func TestDesignerThreeOptions(t *testing.T) {
	opts := `{"project_options": [` +
		`{"template_id": "engineering_design", "template_name": "Engineering Design Challenge", "title": "Bridge Builders", "driving_question": "q1"},` +
		`{"template_id": "design_thinking", "template_name": "Design Thinking Project", "title": "Crossing Designs", "driving_question": "q2"},` +
		`{"template_id": "mathematical_modeling", "template_name": "Mathematical Modeling", "title": "Load Models", "driving_question": "q3"}]}`
	stub := &stubClient{responses: []string{opts}}
	d := NewDesigner(stub, template.DefaultRegistry(), testLogger())

	result, err := d.Design(context.Background(), designContext())
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if len(result.ProjectOptions) != 3 {
		t.Fatalf("got %d options, want 3", len(result.ProjectOptions))
	}
	if result.ConfigurationDetails["product_complexity"] != "SYSTEM" {
		t.Errorf("configuration_details[product_complexity] = %v, want SYSTEM (design challenge)", result.ConfigurationDetails["product_complexity"])
	}
}

func TestDesignerFallbackTrio(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	d := NewDesigner(stub, template.DefaultRegistry(), testLogger())

	result, err := d.Design(context.Background(), designContext())
	if err == nil {
		t.Fatal("expected error when generation fails")
	}
	if len(result.ProjectOptions) != 3 {
		t.Fatalf("fallback produced %d options, want 3", len(result.ProjectOptions))
	}
	// Best-fit template comes first: design challenge + hands-on + science.
	if result.ProjectOptions[0].TemplateID != "engineering_design" {
		t.Errorf("first fallback option template = %q, want engineering_design", result.ProjectOptions[0].TemplateID)
	}
	seen := map[string]bool{}
	for _, o := range result.ProjectOptions {
		if seen[o.TemplateID] {
			t.Errorf("duplicate template %q in fallback options", o.TemplateID)
		}
		seen[o.TemplateID] = true
	}
}

func selectedOption() model.ProjectOption {
	return model.ProjectOption{
		TemplateID:      "scientific_inquiry",
		TemplateName:    "Scientific Inquiry Project",
		Title:           "Junior Astronomers",
		FocusApproach:   "Modeling celestial phenomena.",
		DrivingQuestion: "How can we investigate brightness and motion in the solar system?",
		EndProduct:      "Interactive exhibit with models and data findings.",
		KeyActivities:   []string{"Test light sources", "Build scale models"},
	}
}

func TestRefinerMissingRequest(t *testing.T) {
	r := NewRefiner(&stubClient{}, testLogger())

	result, err := r.Refine(context.Background(), "  ", &model.RefinementContext{CurrentProject: selectedOption()})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != model.WarnMissingRequest {
		t.Errorf("Warnings = %v, want [%s]", result.Warnings, model.WarnMissingRequest)
	}
	if result.UpdatedProject.Title != "Junior Astronomers" {
		t.Error("project changed despite missing request")
	}
}

func TestRefinerAppliesModelResult(t *testing.T) {
	updated := selectedOption()
	updated.DrivingQuestion = "How can we explore Mars?"
	resp := `{"updated_project": {"template_id": "scientific_inquiry", "template_name": "Scientific Inquiry Project", "title": "Junior Astronomers", "focus_approach": "Modeling celestial phenomena.", "driving_question": "How can we explore Mars?", "end_product": "Interactive exhibit with models and data findings.", "key_activities": ["Test light sources", "Build scale models"]}, "change_summary": "Refocused the driving question on Mars.", "affected_fields": ["driving_question"], "warnings": []}`
	stub := &stubClient{responses: []string{resp}}
	r := NewRefiner(stub, testLogger())

	result, err := r.Refine(context.Background(), "focus the driving question on Mars", &model.RefinementContext{CurrentProject: selectedOption()})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if result.UpdatedProject.DrivingQuestion != "How can we explore Mars?" {
		t.Errorf("DrivingQuestion = %q", result.UpdatedProject.DrivingQuestion)
	}
	if stub.calls != 1 {
		t.Errorf("client called %d times, want 1", stub.calls)
	}
}

func TestRefinerFallbackPatchOnFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	r := NewRefiner(stub, testLogger())

	result, err := r.Refine(context.Background(),
		"change the driving question to focus on pollinators in Mexico City",
		&model.RefinementContext{CurrentProject: selectedOption()})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if !strings.Contains(result.UpdatedProject.DrivingQuestion, "pollinators in Mexico City") {
		t.Errorf("DrivingQuestion = %q, want pollinator focus", result.UpdatedProject.DrivingQuestion)
	}
	found := false
	for _, w := range result.Warnings {
		if w == model.WarnFallbackPatch {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want %s", result.Warnings, model.WarnFallbackPatch)
	}
	// Ripple effects follow the new focus.
	if !anyContains(result.UpdatedProject.KeyActivities, "pollinator") {
		t.Error("key activities not aligned with pollinator focus")
	}
}

func TestRefinerSecondPassWhenUnchanged(t *testing.T) {
	same := `{"updated_project": {"template_id": "scientific_inquiry", "template_name": "Scientific Inquiry Project", "title": "Junior Astronomers", "focus_approach": "Modeling celestial phenomena.", "driving_question": "How can we investigate brightness and motion in the solar system?", "end_product": "Interactive exhibit with models and data findings.", "key_activities": ["Test light sources", "Build scale models"]}, "change_summary": "", "affected_fields": [], "warnings": []}`
	changed := `{"updated_project": {"template_id": "scientific_inquiry", "template_name": "Scientific Inquiry Project", "title": "Mars Explorers", "focus_approach": "Modeling celestial phenomena.", "driving_question": "How can we investigate brightness and motion in the solar system?", "end_product": "Interactive exhibit with models and data findings.", "key_activities": ["Test light sources", "Build scale models"]}, "change_summary": "Renamed the unit.", "affected_fields": ["title"], "warnings": []}`
	stub := &stubClient{responses: []string{same, changed}}
	r := NewRefiner(stub, testLogger())

	result, err := r.Refine(context.Background(), "rename the unit to Mars Explorers", &model.RefinementContext{CurrentProject: selectedOption()})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("client called %d times, want 2 (second firmer pass)", stub.calls)
	}
	if result.UpdatedProject.Title != "Mars Explorers" {
		t.Errorf("Title = %q, want Mars Explorers", result.UpdatedProject.Title)
	}
}

func TestDeveloperFallbackPlans(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	d := NewDeveloper(stub, testLogger())
	opt := selectedOption()

	for _, kind := range []string{model.ComponentCurriculum, model.ComponentAssessment, model.ComponentResources} {
		plan, err := d.Develop(context.Background(), kind, designContext(), &opt, "")
		if err == nil {
			t.Fatalf("%s: expected error", kind)
		}
		if plan.Kind != kind {
			t.Errorf("%s: plan.Kind = %q", kind, plan.Kind)
		}
		if len(plan.Items) == 0 {
			t.Errorf("%s: fallback plan has no items", kind)
		}
	}
}

func TestDeveloperFeedbackInPrompt(t *testing.T) {
	stub := &stubClient{responses: []string{`{"kind": "curriculum", "title": "t", "summary": "s", "items": ["a"]}`}}
	d := NewDeveloper(stub, testLogger())
	opt := selectedOption()

	if _, err := d.Develop(context.Background(), model.ComponentCurriculum, designContext(), &opt, "add more field work"); err != nil {
		t.Fatalf("Develop: %v", err)
	}
	if !strings.Contains(stub.prompts[0], "add more field work") {
		t.Error("reviewer feedback missing from prompt")
	}
}

func TestAssemblerStitchesOnFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("model unavailable")}
	a := NewAssembler(stub, testLogger())
	opt := selectedOption()
	cur := &model.ComponentPlan{Kind: model.ComponentCurriculum, Items: []string{"launch"}}
	ass := &model.ComponentPlan{Kind: model.ComponentAssessment, Items: []string{"rubric"}}
	res := &model.ComponentPlan{Kind: model.ComponentResources, Items: []string{"materials"}}

	unit, err := a.Assemble(context.Background(), &opt, cur, ass, res, "")
	if err == nil {
		t.Fatal("expected error when assembly fails")
	}
	if unit.Title != opt.Title {
		t.Errorf("stitched Title = %q, want %q", unit.Title, opt.Title)
	}
	if len(unit.Curriculum.Items) != 1 || unit.Curriculum.Items[0] != "launch" {
		t.Error("stitched unit lost curriculum items")
	}
}
