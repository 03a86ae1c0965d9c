// internal/workers/generation/select-template/models.go
package selecttemplate

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID  string              `json:"businessId"`
	Industry    string              `json:"industry"`
	Insights    models.DataInsights `json:"insights"`
	Competitive models.SourceRecord `json:"competitiveData"`
}

type Output struct {
	BusinessID string                   `json:"businessId"`
	Selection  models.TemplateSelection `json:"selection"`
}
