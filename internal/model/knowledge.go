package model

// ProjectTopic is a knowledge-graph concept tied to the analyzed standard.
type ProjectTopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CrossSubjectConnection links the standard to another discipline.
type CrossSubjectConnection struct {
	Subject    string `json:"subject"`
	Connection string `json:"connection"`
}

// RealWorldApplication is a real-world use of the standard, typically tied
// to a UN sustainable development goal.
type RealWorldApplication struct {
	Application string `json:"application"`
	Details     string `json:"details"`
	SDG         string `json:"sdg,omitempty"`
}

// CurriculumResource is an existing external resource supporting the standard.
type CurriculumResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// KnowledgeGraphResult holds the enrichment insights for one standard:
// related topics, cross-subject links, real-world relevance, resources,
// and concrete PBL integration ideas.
type KnowledgeGraphResult struct {
	StandardCode        string `json:"standard_code"`
	StandardDescription string `json:"standard_description"`

	ProjectTopics           []ProjectTopic           `json:"project_topics"`
	CrossSubjectConnections []CrossSubjectConnection `json:"cross_subject_connections"`
	RealWorldApplications   []RealWorldApplication   `json:"real_world_applications"`
	CurriculumResources     []CurriculumResource     `json:"curriculum_resources"`
	PBLIntegrationIdeas     []string                 `json:"pbl_integration_ideas"`

	RelevanceConfidence float64 `json:"relevance_confidence"`
}

// FallbackKnowledgeGraph builds the placeholder result used when the
// knowledge-graph agent fails, keyed to the standard that was analyzed.
func FallbackKnowledgeGraph(std *ContextualStandard) *KnowledgeGraphResult {
	code, desc := "UNKNOWN", "No description available."
	if std != nil {
		code, desc = std.Code, std.Description
	}
	return &KnowledgeGraphResult{
		StandardCode:            code,
		StandardDescription:     desc,
		ProjectTopics:           []ProjectTopic{{Name: "<no data>", Description: "<none>"}},
		CrossSubjectConnections: []CrossSubjectConnection{{Subject: "<no data>", Connection: "<none>"}},
		RealWorldApplications:   []RealWorldApplication{{Application: "<no data>", Details: "<none>"}},
		CurriculumResources:     []CurriculumResource{{Title: "<no data>"}},
		PBLIntegrationIdeas:     []string{"(no implementation ideas)"},
		RelevanceConfidence:     0,
	}
}
