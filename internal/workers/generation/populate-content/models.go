// internal/workers/generation/populate-content/models.go
package populatecontent

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID  string                   `json:"businessId"`
	Industry    string                   `json:"industry"`
	Selection   models.TemplateSelection `json:"selection"`
	Insights    models.DataInsights      `json:"insights"`
	Competitive models.SourceRecord      `json:"competitiveData"`
	Answers     models.SourceRecord      `json:"userAnswers"`
}

type Output struct {
	BusinessID string                             `json:"businessId"`
	Industry   string                             `json:"industry"`
	Sections   map[string]models.PopulatedSection `json:"sections"`
}
