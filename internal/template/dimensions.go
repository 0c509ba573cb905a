package template

import "strings"

// Duration is the project time-scale dimension.
type Duration string

const (
	DurationSprint   Duration = "SPRINT"   // 1-3 days
	DurationUnit     Duration = "UNIT"     // 1-4 weeks
	DurationJourney  Duration = "JOURNEY"  // 6-12 weeks
	DurationCampaign Duration = "CAMPAIGN" // semester/year
)

// SocialStructure is the student grouping dimension.
type SocialStructure string

const (
	SocialIndividual         SocialStructure = "INDIVIDUAL"
	SocialCollaborative      SocialStructure = "COLLABORATIVE"
	SocialCommunityConnected SocialStructure = "COMMUNITY_CONNECTED"
	SocialNetworked          SocialStructure = "NETWORKED"
)

// CognitiveComplexity is the Bloom's-level thinking dimension.
type CognitiveComplexity string

const (
	CognitiveApplication CognitiveComplexity = "APPLICATION"
	CognitiveAnalysis    CognitiveComplexity = "ANALYSIS"
	CognitiveSynthesis   CognitiveComplexity = "SYNTHESIS"
	CognitiveEvaluation  CognitiveComplexity = "EVALUATION"
)

// AuthenticityLevel is the real-world connection dimension.
type AuthenticityLevel string

const (
	AuthenticitySimulated AuthenticityLevel = "SIMULATED"
	AuthenticityAnchored  AuthenticityLevel = "ANCHORED"
	AuthenticityApplied   AuthenticityLevel = "APPLIED"
	AuthenticityImpact    AuthenticityLevel = "IMPACT"
)

// ScaffoldingIntensity is the teacher-support dimension.
type ScaffoldingIntensity string

const (
	ScaffoldingGuided      ScaffoldingIntensity = "GUIDED"
	ScaffoldingFacilitated ScaffoldingIntensity = "FACILITATED"
	ScaffoldingIndependent ScaffoldingIntensity = "INDEPENDENT"
	ScaffoldingMentored    ScaffoldingIntensity = "MENTORED"
)

// ProductComplexity is the sophistication of the student-created artifact.
type ProductComplexity string

const (
	ProductArtifact   ProductComplexity = "ARTIFACT"
	ProductPortfolio  ProductComplexity = "PORTFOLIO"
	ProductSystem     ProductComplexity = "SYSTEM"
	ProductExperience ProductComplexity = "EXPERIENCE"
)

// DeliveryMode is the instruction delivery dimension.
type DeliveryMode string

const (
	DeliveryFaceToFace        DeliveryMode = "FACE_TO_FACE"
	DeliverySynchronousRemote DeliveryMode = "SYNCHRONOUS_REMOTE"
	DeliveryAsyncRemote       DeliveryMode = "ASYNCHRONOUS_REMOTE"
	DeliveryHybrid            DeliveryMode = "HYBRID"
)

// DisplayName renders an enum value like "COMMUNITY_CONNECTED" as
// "Community Connected".
func DisplayName(value string) string {
	words := strings.Split(strings.ToLower(value), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
