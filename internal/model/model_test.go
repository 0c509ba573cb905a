package model

import (
	"regexp"
	"testing"
)

// crockfordBase32 matches valid ULID strings (26 chars, Crockford Base32 alphabet).
var crockfordBase32 = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

func TestNewIDFormat(t *testing.T) {
	id := NewID()
	if !crockfordBase32.MatchString(id) {
		t.Errorf("NewID() = %q, does not match Crockford Base32 ULID format", id)
	}
}

func TestNewSessionIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewSessionID()
		if seen[id] {
			t.Fatalf("NewSessionID() produced duplicate: %s", id)
		}
		seen[id] = true
	}
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusRunning, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusRunning, StatusAwaitingInput, true},
		{StatusRunning, StatusCompleted, true},
		{StatusRunning, StatusFailed, true},
		{StatusAwaitingInput, StatusRunning, true},
		{StatusAwaitingInput, StatusCompleted, false},
		{StatusCompleted, StatusRunning, false},
		{StatusFailed, StatusRunning, false},
		{"bogus", StatusRunning, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	for _, status := range []string{StatusCompleted, StatusFailed, StatusCancelled} {
		if !TerminalStatus(status) {
			t.Errorf("TerminalStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{StatusPending, StatusRunning, StatusAwaitingInput} {
		if TerminalStatus(status) {
			t.Errorf("TerminalStatus(%q) = true, want false", status)
		}
	}
}

func TestMissingDetails(t *testing.T) {
	var p ProjectProfile
	missing := p.MissingDetails()
	if len(missing) != 3 {
		t.Fatalf("MissingDetails() on empty profile = %v, want 3 entries", missing)
	}

	p.Topic = "solar system"
	p.GradeLevel = "5"
	missing = p.MissingDetails()
	if len(missing) != 1 || missing[0] != "duration" {
		t.Errorf("MissingDetails() = %v, want [duration]", missing)
	}

	p.DurationPreference = "2 weeks"
	if !p.Complete() {
		t.Error("Complete() = false after filling all required slots")
	}
}

func TestMergeOverlaysNonEmpty(t *testing.T) {
	base := ProjectProfile{Topic: "volcanoes", GradeLevel: "4"}
	merged := base.Merge(&ProjectProfile{DurationPreference: "3 weeks", GradeLevel: "5"})

	if merged.Topic != "volcanoes" {
		t.Errorf("Topic = %q, want %q", merged.Topic, "volcanoes")
	}
	if merged.GradeLevel != "5" {
		t.Errorf("GradeLevel = %q, want overlay value %q", merged.GradeLevel, "5")
	}
	if merged.DurationPreference != "3 weeks" {
		t.Errorf("DurationPreference = %q, want %q", merged.DurationPreference, "3 weeks")
	}
	if !merged.AllDetailsGiven {
		t.Error("AllDetailsGiven = false, want true after merge fills every slot")
	}
}

func TestPrimaryStandard(t *testing.T) {
	var empty StandardsAlignment
	if empty.PrimaryStandard() != nil {
		t.Error("PrimaryStandard() on empty alignment should be nil")
	}

	a := StandardsAlignment{Standards: []ContextualStandard{
		{Code: "5-PS1-1"},
		{Code: "5-ESS1-2"},
	}}
	primary := a.PrimaryStandard()
	if primary == nil || primary.Code != "5-PS1-1" {
		t.Errorf("PrimaryStandard() = %+v, want code 5-PS1-1", primary)
	}

	if std := a.StandardByCode("5-ESS1-2"); std == nil || std.Code != "5-ESS1-2" {
		t.Errorf("StandardByCode(5-ESS1-2) = %+v", std)
	}
	if a.StandardByCode("missing") != nil {
		t.Error("StandardByCode(missing) should be nil")
	}
}

func TestFallbackAlignment(t *testing.T) {
	a := FallbackAlignment("5", "Error: upstream timeout")

	if len(a.Standards) != 1 {
		t.Fatalf("fallback has %d standards, want 1", len(a.Standards))
	}
	std := a.Standards[0]
	if std.Code != FallbackStandardCode {
		t.Errorf("Code = %q, want %q", std.Code, FallbackStandardCode)
	}
	if std.IsValid {
		t.Error("fallback standard should not be marked valid")
	}
	if a.AlignmentConfidence != 0 {
		t.Errorf("AlignmentConfidence = %v, want 0", a.AlignmentConfidence)
	}
	if len(a.ValidationIssues) != 1 {
		t.Errorf("ValidationIssues = %v, want one entry", a.ValidationIssues)
	}
}

func TestSelectedOption(t *testing.T) {
	r := ProjectOptionsResult{ProjectOptions: []ProjectOption{
		{Title: "A"}, {Title: "B"}, {Title: "C"},
	}}
	if r.Selected() != nil {
		t.Error("Selected() with no choice should be nil")
	}

	one := 1
	r.UserSelectedOption = &one
	if sel := r.Selected(); sel == nil || sel.Title != "B" {
		t.Errorf("Selected() = %+v, want title B", sel)
	}

	out := 7
	r.UserSelectedOption = &out
	if r.Selected() != nil {
		t.Error("Selected() with out-of-range index should be nil")
	}
}

func TestDiffOptionFields(t *testing.T) {
	a := ProjectOption{
		Title:           "Pollinator Watch",
		DrivingQuestion: "How do pollinators shape our city?",
		KeySkills:       []string{"observation"},
	}
	b := a
	b.DrivingQuestion = "How can we protect pollinators in Mexico City?"
	b.KeySkills = []string{"observation", "data collection"}

	fields := DiffOptionFields(&a, &b)
	want := map[string]bool{"driving_question": true, "key_skills": true}
	if len(fields) != len(want) {
		t.Fatalf("DiffOptionFields = %v, want keys %v", fields, want)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected diff field %q", f)
		}
	}

	if diff := DiffOptionFields(&a, &a); len(diff) != 0 {
		t.Errorf("DiffOptionFields(a, a) = %v, want empty", diff)
	}
}
