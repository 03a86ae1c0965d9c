// internal/workers/ingestion/normalize-source-data/normalizer.go
package normalizesourcedata

import (
	"encoding/json"
	"sort"
	"strings"

	"sitegen-workers/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// droppedEntire marks a payload that could not be salvaged at all.
const droppedEntire = "*"

// normalizeRecord turns one raw provider payload into a SourceRecord.
// Invalid fields are stripped rather than failing the whole payload:
// each validation pass removes the offending top-level fields and
// revalidates, so one bad field never costs the rest of the record.
// The returned list names the dropped fields, sorted.
func (h *Handler) normalizeRecord(payload json.RawMessage) (models.SourceRecord, []string) {
	var record models.SourceRecord
	if len(payload) == 0 || string(payload) == "null" {
		return record, nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return record, []string{droppedEntire}
	}

	dropped := h.stripInvalidFields(doc)

	cleaned, err := json.Marshal(doc)
	if err != nil {
		return models.SourceRecord{}, []string{droppedEntire}
	}
	if err := json.Unmarshal(cleaned, &record); err != nil {
		return models.SourceRecord{}, []string{droppedEntire}
	}

	sort.Strings(dropped)
	return record, dropped
}

// stripInvalidFields validates doc against the shared record schema and
// deletes the top-level field behind every violation, repeating until the
// document validates or no further progress is possible.
func (h *Handler) stripInvalidFields(doc map[string]interface{}) []string {
	var dropped []string
	schemaLoader := gojsonschema.NewGoLoader(sourceRecordSchema)

	for pass := 0; pass < h.config.MaxStripPasses; pass++ {
		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
		if err != nil {
			// Schema or document not loadable: drop everything.
			for field := range doc {
				delete(doc, field)
			}
			return append(dropped, droppedEntire)
		}
		if result.Valid() {
			return dropped
		}

		progressed := false
		for _, verr := range result.Errors() {
			field := rootField(verr.Field())
			if field == "" {
				continue
			}
			if _, ok := doc[field]; ok {
				delete(doc, field)
				dropped = append(dropped, field)
				progressed = true
			}
		}
		if !progressed {
			return dropped
		}
	}
	return dropped
}

// rootField reduces a schema error path like "photos.0.url" to the
// top-level field "photos". Root-level errors have no attributable field.
func rootField(path string) string {
	if path == "" || path == "(root)" {
		return ""
	}
	if i := strings.Index(path, "."); i >= 0 {
		return path[:i]
	}
	return path
}
