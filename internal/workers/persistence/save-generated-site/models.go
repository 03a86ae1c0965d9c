// internal/workers/persistence/save-generated-site/models.go
package savegeneratedsite

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID string `json:"businessId"`
	RequestID  string `json:"generationRequestId"`
	Industry   string `json:"industry"`

	Selection models.TemplateSelection           `json:"selection"`
	Sections  map[string]models.PopulatedSection `json:"sections"`
}

type Output struct {
	SiteID    string `json:"siteId"`
	Status    string `json:"siteStatus"`
	CreatedAt string `json:"createdAt"`
}
