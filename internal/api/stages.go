package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Rosseoko/erandi/internal/model"
)

// The stage endpoints run a single agent statelessly. Agent failures
// that still yield a fallback result collapse into success:true with
// the issues recorded inside the payload; only a failure with no usable
// result surfaces as 502.

type profilingResponse struct {
	Success bool                  `json:"success"`
	Profile *model.ProjectProfile `json:"profile"`
}

func (s *Server) handleProfiling(w http.ResponseWriter, r *http.Request) {
	var req model.TeacherRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.RawMessage) == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "raw_message is required")
		return
	}

	profile, err := s.agents.Profiler.CreateProfile(r.Context(), req)
	if err != nil {
		recordStage("profiling", outcomeError)
		s.logger.Error("profiling stage", "error", err)
		s.writeStageError(w, "profiling failed")
		return
	}
	recordStage("profiling", outcomeOK)

	s.writeJSON(w, http.StatusOK, profilingResponse{Success: true, Profile: profile})
}

type standardsResponse struct {
	Success           bool                      `json:"success"`
	Alignment         *model.StandardsAlignment `json:"alignment"`
	ProjectTopic      string                    `json:"project_topic"`
	TeacherRequest    string                    `json:"teacher_request,omitempty"`
	OriginalUtterance string                    `json:"original_utterance,omitempty"`
}

func (s *Server) handleStandards(w http.ResponseWriter, r *http.Request) {
	var profile model.ProjectProfile
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if profile.Topic == "" || profile.GradeLevel == "" || profile.ContentAreaFocus == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "topic, grade_level and content_area_focus are required")
		return
	}

	alignment, err := s.agents.Aligner.Align(r.Context(), &profile)
	if err != nil {
		if alignment == nil {
			recordStage("standards", outcomeError)
			s.logger.Error("standards stage", "error", err)
			s.writeStageError(w, "standards alignment failed")
			return
		}
		// Fallback alignment carries its issues in validation_issues.
		recordStage("standards", outcomeFallback)
		s.logger.Warn("standards stage degraded", "error", err)
	} else {
		recordStage("standards", outcomeOK)
	}

	s.writeJSON(w, http.StatusOK, standardsResponse{
		Success:           true,
		Alignment:         alignment,
		ProjectTopic:      profile.Topic,
		TeacherRequest:    profile.Translation,
		OriginalUtterance: profile.OriginalUtterance,
	})
}

type knowledgeGraphResponse struct {
	Success          bool                        `json:"success"`
	KGInsights       *model.KnowledgeGraphResult `json:"kg_insights"`
	StandardAnalyzed string                      `json:"standard_analyzed"`
}

func (s *Server) handleKnowledgeGraph(w http.ResponseWriter, r *http.Request) {
	var alignment model.StandardsAlignment
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&alignment); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(alignment.Standards) == 0 {
		s.writeError(w, http.StatusUnprocessableEntity, "at least one standard is required")
		return
	}

	code := r.URL.Query().Get("standard_code")
	result, err := s.agents.Enricher.Enrich(r.Context(), &alignment, code)
	if err != nil {
		if result == nil {
			recordStage("knowledge_graph", outcomeError)
			s.logger.Error("knowledge graph stage", "error", err)
			s.writeStageError(w, "knowledge graph analysis failed")
			return
		}
		recordStage("knowledge_graph", outcomeFallback)
		s.logger.Warn("knowledge graph stage degraded", "error", err)
	} else {
		recordStage("knowledge_graph", outcomeOK)
	}

	s.writeJSON(w, http.StatusOK, knowledgeGraphResponse{
		Success:          true,
		KGInsights:       result,
		StandardAnalyzed: result.StandardCode,
	})
}

type designOptionsResponse struct {
	Success          bool                        `json:"success"`
	Options          *model.ProjectOptionsResult `json:"options"`
	SelectedTemplate string                      `json:"selected_template,omitempty"`
	ProjectTopic     string                      `json:"project_topic"`
}

func (s *Server) handleDesignOptions(w http.ResponseWriter, r *http.Request) {
	var dc model.DesignContext
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&dc); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if dc.ProjectProfile.Topic == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "project_profile.topic is required")
		return
	}

	result, err := s.agents.Designer.Design(r.Context(), &dc)
	if err != nil {
		if result == nil {
			recordStage("design_options", outcomeError)
			s.logger.Error("design options stage", "error", err)
			s.writeStageError(w, "design option generation failed")
			return
		}
		recordStage("design_options", outcomeFallback)
		s.logger.Warn("design options stage degraded", "error", err)
	} else {
		recordStage("design_options", outcomeOK)
	}

	s.writeJSON(w, http.StatusOK, designOptionsResponse{
		Success:          true,
		Options:          result,
		SelectedTemplate: result.SelectedTemplate,
		ProjectTopic:     dc.ProjectProfile.Topic,
	})
}

// refineRequest is the JSON body for POST /refine.
type refineRequest struct {
	Project            model.ProjectOption         `json:"project"`
	ChangeRequest      string                      `json:"change_request"`
	Language           string                      `json:"language,omitempty"`
	ClassProfile       string                      `json:"class_profile,omitempty"`
	StandardsAlignment *model.StandardsAlignment   `json:"standards_alignment,omitempty"`
	KGInsights         *model.KnowledgeGraphResult `json:"kg_insights,omitempty"`
	Strict             bool                        `json:"strict"`
}

type refineResponse struct {
	Success    bool                    `json:"success"`
	Refinement *model.RefinementResult `json:"refinement"`
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Project.Title == "" && req.Project.DrivingQuestion == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "project is required")
		return
	}

	rc := &model.RefinementContext{
		CurrentProject:     req.Project,
		Language:           req.Language,
		ClassProfile:       req.ClassProfile,
		StandardsAlignment: req.StandardsAlignment,
		KGInsights:         req.KGInsights,
		Strict:             req.Strict,
	}

	result, err := s.agents.Refiner.Refine(r.Context(), req.ChangeRequest, rc)
	if err != nil {
		if result == nil {
			recordStage("refine", outcomeError)
			s.logger.Error("refine stage", "error", err)
			s.writeStageError(w, "refinement failed")
			return
		}
		recordStage("refine", outcomeFallback)
		s.logger.Warn("refine stage degraded", "error", err)
	} else {
		recordStage("refine", outcomeOK)
	}

	s.writeJSON(w, http.StatusOK, refineResponse{Success: true, Refinement: result})
}

// writeStageError reports an upstream agent failure with no usable
// fallback result.
func (s *Server) writeStageError(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadGateway, map[string]any{
		"success": false,
		"error":   message,
	})
}
