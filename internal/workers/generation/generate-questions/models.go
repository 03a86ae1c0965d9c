// internal/workers/generation/generate-questions/models.go
package generatequestions

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID string              `json:"businessId"`
	Industry   string              `json:"industry"`
	Insights   models.DataInsights `json:"insights"`
}

type Output struct {
	BusinessID string            `json:"businessId"`
	Questions  []models.Question `json:"questions"`

	// Complete reports that no questions remain, so the pipeline can skip
	// the answer round entirely.
	Complete bool `json:"questionsComplete"`
}
