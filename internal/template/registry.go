package template

import (
	"fmt"
	"sort"
	"sync"
)

// intentRouting maps primary teaching intents to their default template
// for intent-based lookup.
var intentRouting = map[string]string{
	"Scientific Inquiry":     "scientific_inquiry",
	"Engineering Design":     "engineering_design",
	"Creative Expression":    "creative_expression",
	"Entrepreneurship":       "entrepreneurship",
	"Research Investigation": "research_investigation",
	"Community Action":       "community_action",
	"Skill Application":      "skill_application",
	"Interdisciplinary":      "interdisciplinary",
	"Technology Focused":     "technology_focused",
	"Historical Inquiry":     "historical_inquiry",
	"Mathematical Modeling":  "mathematical_modeling",
}

// Registry holds the template catalog and resolves templates by id or
// by teaching intent.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// Register adds a template to the registry under its ID.
func (r *Registry) Register(t *Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
}

// Get returns the template with the given id, or an error if it is not
// registered.
func (r *Registry) Get(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %q is not registered", id)
	}
	return t, nil
}

// ResolveIntent returns the default template for the given primary
// intent using the intentRouting table.
func (r *Registry) ResolveIntent(intent string) (*Template, error) {
	id, ok := intentRouting[intent]
	if !ok {
		return nil, fmt.Errorf("no routing rule for intent %q", intent)
	}
	return r.Get(id)
}

// List returns all registered templates, sorted by id for a stable API
// response.
func (r *Registry) List() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Len reports the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
