// internal/models/insights.go
package models

// ConfirmedFields holds the canonical field values chosen by the fusion
// precedence rules. Zero values mean "nothing confirmed" here; absence
// tracking lives in DataInsights.MissingData.
type ConfirmedFields struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Website     string `json:"website,omitempty"`
	Hours       string `json:"hours,omitempty"`

	Services       []string `json:"services"`
	Certifications []string `json:"certifications,omitempty"`
	ServiceAreas   []string `json:"serviceAreas,omitempty"`

	Photos  []Photo  `json:"photos,omitempty"`
	Reviews []Review `json:"reviews,omitempty"`

	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`

	Emergency       bool     `json:"emergencyAvailable,omitempty"`
	UniqueValue     string   `json:"uniqueValue,omitempty"`
	Differentiators []string `json:"differentiators,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

// Missing-data point names emitted by the fusion evaluator. The list is
// fixed; question skip conditions and tests key off these exact strings.
const (
	MissingServices        = "services"
	MissingPhotos          = "photos"
	MissingReviews         = "reviews"
	MissingServiceAreas    = "serviceAreas"
	MissingCertifications  = "certifications"
	MissingDescription     = "businessDescription"
	MissingHours           = "operatingHours"
	MissingUniqueValue     = "uniqueValue"
	MissingPhotoContext    = "photoContext"
	MissingDifferentiators = "differentiators"
	MissingSpecializations = "specializations"
	MissingEmergency       = "emergencyAvailability"
)

// RequiredDataPoints is the fixed required-field list the evaluator checks
// when computing MissingData, in emission order.
var RequiredDataPoints = []string{
	MissingServices,
	MissingPhotos,
	MissingReviews,
	MissingServiceAreas,
	MissingCertifications,
	MissingDescription,
	MissingHours,
	MissingUniqueValue,
	MissingPhotoContext,
	MissingDifferentiators,
	MissingSpecializations,
	MissingEmergency,
}

// DataInsights is the immutable result of one fusion run.
type DataInsights struct {
	Confirmed ConfirmedFields `json:"confirmed"`

	// FieldSources records, per confirmed field name, the source(s) that
	// contributed its canonical value. List fields record every
	// contributing source in fixed order.
	FieldSources map[string][]string `json:"fieldSources"`

	SourceQuality  map[string]float64 `json:"sourceQuality"`
	OverallQuality float64            `json:"overallQuality"`
	MissingData    []string           `json:"missingData"`
}

// IsMissing reports whether a named data point is in MissingData.
func (d *DataInsights) IsMissing(name string) bool {
	for _, m := range d.MissingData {
		if m == name {
			return true
		}
	}
	return false
}

// ContributingSources returns the deduplicated set of provider sources that
// contributed at least one confirmed value, in fixed source order.
func (d *DataInsights) ContributingSources() []string {
	seen := make(map[string]bool)
	for _, srcs := range d.FieldSources {
		for _, s := range srcs {
			seen[s] = true
		}
	}
	var out []string
	for _, s := range SourceNames {
		if seen[s] {
			out = append(out, s)
		}
	}
	if seen[SourceInferred] {
		out = append(out, SourceInferred)
	}
	return out
}
