package template

// DefaultRegistry returns a registry populated with the built-in
// catalog.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range Catalog() {
		r.Register(t)
	}
	return r
}

// Catalog returns the built-in design template catalog.
func Catalog() []*Template {
	return []*Template{
		{
			ID:                  "community_action",
			DisplayName:         "Community Action Project",
			Description:         "Students identify local issues, research root causes, and develop actionable solutions with community stakeholders",
			Intent:              "Community Action",
			Strengths:           []string{"civic_engagement", "community_connection", "research", "stakeholder_collaboration", "public_presentation"},
			SubjectAreas:        []string{"social_studies", "english_language_arts", "civics"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "high",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialCommunityConnected},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityApplied, AuthenticityImpact},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductSystem, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid},
			},
		},
		{
			ID:                  "creative_expression",
			DisplayName:         "Creative Expression Project",
			Description:         "Students explore ideas through art and creative work shared with authentic audiences",
			Intent:              "Creative Expression",
			Strengths:           []string{"artistic_creation", "self_expression", "reflection", "presentation"},
			SubjectAreas:        []string{"arts", "english_language_arts"},
			Complexity:          ComplexityLow,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveApplication, CognitiveSynthesis},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingGuided, ScaffoldingFacilitated},
				ProductComplexities:   []ProductComplexity{ProductArtifact, ProductPortfolio, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliveryAsyncRemote},
			},
		},
		{
			ID:                  "entrepreneurship",
			DisplayName:         "Entrepreneurship Project",
			Description:         "Students identify real-world problems or opportunities and develop sustainable, viable ventures to address them",
			Intent:              "Entrepreneurship",
			Strengths:           []string{"market_research", "ideation", "business_modeling", "financial_planning", "marketing", "pitching", "reflection"},
			SubjectAreas:        []string{"social_studies", "mathematics", "english_language_arts"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied, AuthenticityImpact},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductPortfolio, ProductSystem, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "service_learning",
			DisplayName:         "Service Learning Project",
			Description:         "Students engage in hands-on service activities while developing empathy and teamwork skills",
			Intent:              "Community Action",
			Strengths:           []string{"hands_on", "community_connection", "empathy", "teamwork", "collaboration", "reflection"},
			SubjectAreas:        []string{"social_studies", "character_education"},
			Complexity:          ComplexityLow,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialCommunityConnected},
				CognitiveComplexities: []CognitiveComplexity{CognitiveApplication, CognitiveAnalysis},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityApplied, AuthenticityImpact},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingGuided, ScaffoldingFacilitated},
				ProductComplexities:   []ProductComplexity{ProductArtifact, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace},
			},
		},
		{
			ID:                  "technology_focused",
			DisplayName:         "Technology Focused Project",
			Description:         "Students explore coding and technology through creating simple digital projects",
			Intent:              "Technology Focused",
			Strengths:           []string{"coding", "digital_creation", "problem_solving", "presentation"},
			SubjectAreas:        []string{"technology", "computer_science"},
			Complexity:          ComplexityMedium,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveApplication, CognitiveAnalysis, CognitiveSynthesis},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticitySimulated, AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingGuided, ScaffoldingFacilitated, ScaffoldingIndependent},
				ProductComplexities:   []ProductComplexity{ProductArtifact, ProductSystem},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliverySynchronousRemote, DeliveryAsyncRemote},
			},
		},
		{
			ID:                  "engineering_design",
			DisplayName:         "Engineering Design Challenge",
			Description:         "Students identify problems and design, build, and test solutions through iterative prototyping",
			Intent:              "Engineering Design",
			Strengths:           []string{"design_thinking", "design_challenge", "hands_on", "prototyping", "iteration"},
			SubjectAreas:        []string{"science", "engineering", "mathematics"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialCommunityConnected, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied, AuthenticityImpact},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingIndependent, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductPortfolio, ProductSystem, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "historical_inquiry",
			DisplayName:         "Historical Investigation",
			Description:         "Students investigate historical questions using primary sources and historical thinking skills",
			Intent:              "Historical Inquiry",
			Strengths:           []string{"research", "analysis", "historical_thinking", "writing"},
			SubjectAreas:        []string{"social_studies", "history"},
			Complexity:          ComplexityMedium,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductArtifact, ProductPortfolio},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "mathematical_modeling",
			DisplayName:         "Mathematical Modeling",
			Description:         "Students apply mathematical concepts to model and analyze real-world situations",
			Intent:              "Mathematical Modeling",
			Strengths:           []string{"problem_solving", "data_analysis", "modeling", "mathematical_thinking"},
			SubjectAreas:        []string{"mathematics"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductSystem, ProductPortfolio},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "research_investigation",
			DisplayName:         "Research Investigation",
			Description:         "Students conduct in-depth research on academic topics using scholarly sources",
			Intent:              "Research Investigation",
			Strengths:           []string{"research", "critical_analysis", "academic_writing", "presentation"},
			SubjectAreas:        []string{"english_language_arts", "social_studies", "science"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductPortfolio, ProductSystem},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "scientific_inquiry",
			DisplayName:         "Scientific Inquiry Project",
			Description:         "Students design and conduct scientific investigations following the scientific method",
			Intent:              "Scientific Inquiry",
			Strengths:           []string{"experimentation", "data_analysis", "scientific_method", "research"},
			SubjectAreas:        []string{"science", "mathematics"},
			Complexity:          ComplexityMedium,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingGuided, ScaffoldingFacilitated},
				ProductComplexities:   []ProductComplexity{ProductArtifact, ProductPortfolio},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid},
			},
		},
		{
			ID:                  "debate_argumentation",
			DisplayName:         "Debate & Argumentation",
			Description:         "Students research controversial topics and develop structured arguments with evidence",
			Intent:              "Research Investigation",
			Strengths:           []string{"research", "argumentation", "public_speaking", "critical_thinking"},
			SubjectAreas:        []string{"english_language_arts", "social_studies"},
			Complexity:          ComplexityMedium,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityApplied, AuthenticityImpact},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductExperience, ProductSystem},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "design_thinking",
			DisplayName:         "Design Thinking Project",
			Description:         "Students apply design thinking process to create human-centered solutions",
			Intent:              "Engineering Design",
			Strengths:           []string{"empathy", "ideation", "design_challenge", "prototyping", "user_testing", "iteration"},
			SubjectAreas:        []string{"technology", "arts", "engineering"},
			Complexity:          ComplexityMedium,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveEvaluation, CognitiveSynthesis},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductExperience, ProductSystem},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "interdisciplinary",
			DisplayName:         "Interdisciplinary Integration",
			Description:         "Students explore complex topics through multiple subject lenses and connections",
			Intent:              "Interdisciplinary",
			Strengths:           []string{"cross_curricular", "interdisciplinary", "systems_thinking", "synthesis", "integration"},
			SubjectAreas:        []string{"multiple"},
			Complexity:          ComplexityHigh,
			CommunityEngagement: "medium",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney, DurationCampaign},
				SocialStructures:      []SocialStructure{SocialCollaborative, SocialNetworked},
				CognitiveComplexities: []CognitiveComplexity{CognitiveAnalysis, CognitiveSynthesis, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductPortfolio, ProductExperience},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliveryHybrid, DeliverySynchronousRemote},
			},
		},
		{
			ID:                  "skill_application",
			DisplayName:         "Skill Application Project",
			Description:         "Students practice and demonstrate mastery of specific academic or technical skills",
			Intent:              "Skill Application",
			Strengths:           []string{"skill_mastery", "practice", "demonstration", "feedback"},
			SubjectAreas:        []string{"career_technical", "mathematics", "language_arts"},
			Complexity:          ComplexityLow,
			CommunityEngagement: "low",
			Compatibility: CompatibilityMatrix{
				Durations:             []Duration{DurationSprint, DurationUnit, DurationJourney},
				SocialStructures:      []SocialStructure{SocialIndividual, SocialCollaborative},
				CognitiveComplexities: []CognitiveComplexity{CognitiveApplication, CognitiveEvaluation},
				AuthenticityLevels:    []AuthenticityLevel{AuthenticityAnchored, AuthenticityApplied},
				Scaffolding:           []ScaffoldingIntensity{ScaffoldingFacilitated, ScaffoldingMentored},
				ProductComplexities:   []ProductComplexity{ProductExperience, ProductPortfolio},
				DeliveryModes:         []DeliveryMode{DeliveryFaceToFace, DeliverySynchronousRemote},
			},
		},
	}
}
