// pkg/catalog/schema.go
package catalog

// Catalog is the process-wide bundle of industry content catalogues.
// Loaded once at startup and never mutated afterwards, so it is safe to
// share across concurrent generation requests.
type Catalog struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Industries  []IndustryProfile `json:"industries"`

	// Strict disables the general-industry fallback in Industry lookups.
	Strict bool `json:"-"`
}

// IndustryProfile parameterizes the shared populator core and question
// generator for one vertical. Per-industry behavior is data here, not code.
type IndustryProfile struct {
	Tag         string `json:"tag"`
	DisplayName string `json:"displayName"`

	// ServiceCatalog lists the canonical service names offered in this
	// vertical, used for confirmation question options and gap analysis.
	ServiceCatalog []string `json:"serviceCatalog"`

	// Keywords seed SEO keyword derivation alongside confirmed services.
	Keywords []string `json:"keywords"`

	// ServiceIcons maps lowercase service name to an icon identifier used
	// by the rendering layer.
	ServiceIcons map[string]string `json:"serviceIcons,omitempty"`

	FAQBank   []FAQ              `json:"faqBank"`
	Questions []QuestionTemplate `json:"questions"`

	HeadlineFallback    string `json:"headlineFallback"`
	SubheadlineFallback string `json:"subheadlineFallback"`
	AboutFallback       string `json:"aboutFallback"`
	CTAText             string `json:"ctaText"`
	EmergencyCopy       string `json:"emergencyCopy,omitempty"`
}

// QuestionTemplate is one entry of the master question catalogue. Skip
// behavior is declarative: a template is emitted when the gap it addresses
// is still missing, or when overall data quality is below EmitBelowQuality.
type QuestionTemplate struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Priority int      `json:"priority"`
	Text     string   `json:"text"`
	Options  []string `json:"options,omitempty"`

	// OptionsFromServices fills Options from the industry service catalogue
	// at generation time.
	OptionsFromServices bool `json:"optionsFromServices,omitempty"`

	// Gap names the missing-data point this question resolves.
	Gap string `json:"gap"`

	// EmitBelowQuality additionally emits the question while overall
	// quality is below the given threshold. Zero means gap-only.
	EmitBelowQuality float64 `json:"emitBelowQuality,omitempty"`
}

// FAQ is one industry FAQ bank entry.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Service reports whether name is part of the industry service catalogue
// (case-insensitive).
func (p *IndustryProfile) Service(name string) bool {
	for _, s := range p.ServiceCatalog {
		if equalFold(s, name) {
			return true
		}
	}
	return false
}
