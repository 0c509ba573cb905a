package api

import (
	"net/http"

	"github.com/Rosseoko/erandi/internal/template"
)

// listTemplatesResponse is the JSON response for GET /v1/templates.
type listTemplatesResponse struct {
	Templates []*template.Template `json:"templates"`
	Total     int                  `json:"total"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.registry.List()
	s.writeJSON(w, http.StatusOK, listTemplatesResponse{
		Templates: templates,
		Total:     len(templates),
	})
}
