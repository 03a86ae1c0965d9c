// internal/models/section.go
package models

// Photo categories, in fixed display-priority order (highest signal first).
const (
	PhotoCategoryTransformation = "transformation"
	PhotoCategoryCompleted      = "completed"
	PhotoCategoryTeam           = "team"
	PhotoCategoryEquipment      = "equipment"
	PhotoCategoryGeneral        = "general"
)

// PhotoCategoryRank returns the display rank of a photo category; lower
// surfaces first. Unknown categories rank with general.
func PhotoCategoryRank(category string) int {
	switch category {
	case PhotoCategoryTransformation:
		return 0
	case PhotoCategoryCompleted:
		return 1
	case PhotoCategoryTeam:
		return 2
	case PhotoCategoryEquipment:
		return 3
	}
	return 4
}

// SectionMetadata is the provenance and SEO metadata attached to every
// populated section.
type SectionMetadata struct {
	DataSources          []string `json:"dataSources"`
	SEOKeywords          []string `json:"seoKeywords"`
	CompetitiveAdvantage string   `json:"competitiveAdvantage,omitempty"`
}

// PopulatedSection is the final content payload for one website section.
// Constructed once per generation request, immutable afterwards.
type PopulatedSection struct {
	Variant  string                 `json:"variant"`
	Content  map[string]interface{} `json:"content"`
	Metadata SectionMetadata        `json:"metadata"`
}
