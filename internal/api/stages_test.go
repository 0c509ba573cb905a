package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rosseoko/erandi/internal/model"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestProfilingEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/profiling", `{"raw_message":"a pollinator project for 3rd grade"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body profilingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Profile == nil || body.Profile.Topic != "pollinators" {
		t.Errorf("profile = %+v, want the stub profile", body.Profile)
	}
}

func TestProfilingValidation(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"blank message", `{"raw_message":"  "}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/profiling", tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestProfilingAgentFailure(t *testing.T) {
	agents := defaultFakeAgents()
	agents.profile = nil
	agents.profileErr = errAgentDown
	srv, _ := newTestServer(t, agents)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/profiling", `{"raw_message":"anything"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestStandardsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/standards",
		`{"topic":"pollinators","grade_level":"3","content_area_focus":"STEM Heavy"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body standardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.ProjectTopic != "pollinators" {
		t.Errorf("project_topic = %q, want pollinators", body.ProjectTopic)
	}
	if len(body.Alignment.Standards) != 1 || body.Alignment.Standards[0].Code != "3-LS4-3" {
		t.Errorf("alignment = %+v, want the stub standard", body.Alignment)
	}
}

func TestStandardsRequiresProfileFields(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/standards", `{"topic":"pollinators"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestStandardsFallbackCollapsesToSuccess(t *testing.T) {
	agents := defaultFakeAgents()
	agents.alignment = model.FallbackAlignment("3", "provider unavailable")
	agents.alignmentErr = errAgentDown
	srv, _ := newTestServer(t, agents)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/standards",
		`{"topic":"pollinators","grade_level":"3","content_area_focus":"STEM Heavy"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a fallback alignment", resp.StatusCode)
	}
	var body standardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true for a fallback alignment")
	}
	if got := body.Alignment.Standards[0].Code; got != model.FallbackStandardCode {
		t.Errorf("standard code = %q, want %q", got, model.FallbackStandardCode)
	}
	if len(body.Alignment.ValidationIssues) == 0 {
		t.Error("validation_issues empty, want the degradation recorded")
	}
}

func TestKnowledgeGraphEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/knowledge_graph?standard_code=3-LS4-3",
		`{"standards":[{"code":"3-LS4-3","type":"ngss"}]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body knowledgeGraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.StandardAnalyzed != "3-LS4-3" {
		t.Errorf("standard_analyzed = %q, want 3-LS4-3", body.StandardAnalyzed)
	}
}

func TestKnowledgeGraphRequiresStandards(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/knowledge_graph", `{"standards":[]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestDesignOptionsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/design_options",
		`{"project_profile":{"topic":"pollinators","grade_level":"3"},"standards_alignment":{"standards":[{"code":"3-LS4-3"}]},"kg_insights":{"standard_code":"3-LS4-3"}}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body designOptionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if len(body.Options.ProjectOptions) != 3 {
		t.Errorf("options = %d, want 3", len(body.Options.ProjectOptions))
	}
	if body.SelectedTemplate != "scientific_inquiry" {
		t.Errorf("selected_template = %q, want scientific_inquiry", body.SelectedTemplate)
	}
	if body.ProjectTopic != "pollinators" {
		t.Errorf("project_topic = %q, want pollinators", body.ProjectTopic)
	}
}

func TestDesignOptionsRequiresTopic(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/design_options", `{"project_profile":{}}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestRefineEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/refine",
		`{"project":{"title":"Pollinator Patrol","driving_question":"How do bees help us?"},"change_request":"make the driving question sharper"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body refineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Refinement.UpdatedProject.Title != "Pollinator Patrol 2.0" {
		t.Errorf("updated title = %q, want the stub result", body.Refinement.UpdatedProject.Title)
	}
}

func TestRefineRequiresProject(t *testing.T) {
	srv, _ := newTestServer(t, defaultFakeAgents())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/refine", `{"change_request":"change something"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}
