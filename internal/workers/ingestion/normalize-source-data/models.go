// internal/workers/ingestion/normalize-source-data/models.go
package normalizesourcedata

import (
	"encoding/json"

	"sitegen-workers/internal/models"
)

// Input carries the raw provider payloads keyed by source name. Missing
// keys mean the provider returned nothing for that source.
type Input struct {
	BusinessID string                     `json:"businessId"`
	Payloads   map[string]json.RawMessage `json:"payloads"`
}

// Output is the validated source set plus a record of which fields were
// dropped during degradation, per source.
type Output struct {
	BusinessID string              `json:"businessId"`
	Sources    models.SourceSet    `json:"sources"`
	Degraded   map[string][]string `json:"degradedFields,omitempty"`
}
