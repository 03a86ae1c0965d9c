// internal/workers/generation/fuse-business-data/models.go
package fusebusinessdata

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID string           `json:"businessId"`
	Industry   string           `json:"industry"`
	Sources    models.SourceSet `json:"sources"`

	// ForceRefresh bypasses the insights cache, recomputing fusion even
	// when a cached result exists for the business.
	ForceRefresh bool `json:"forceRefresh,omitempty"`
}

type Output struct {
	BusinessID string              `json:"businessId"`
	Insights   models.DataInsights `json:"insights"`
}
