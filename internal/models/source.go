// internal/models/source.go
package models

// Source names as they appear in provenance metadata and quality maps.
const (
	SourceProfile       = "profile"
	SourcePlaces        = "places"
	SourceSearchResults = "searchResults"
	SourceUserAnswers   = "userAnswers"
	SourceInferred      = "inferred"
	SourceDefault       = "default"
)

// SourceNames lists the four provider sources in precedence-independent,
// fixed iteration order.
var SourceNames = []string{SourceProfile, SourcePlaces, SourceSearchResults, SourceUserAnswers}

// Photo is a provider photo reference with optional user-supplied context.
type Photo struct {
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	Context  string `json:"context,omitempty"`  // user-supplied label text
	Category string `json:"category,omitempty"` // assigned during population
}

// Review is a single customer review from the place-details provider.
type Review struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text,omitempty"`
}

// Competitor is one competing business extracted from search results.
type Competitor struct {
	Name         string   `json:"name"`
	Services     []string `json:"services,omitempty"`
	ReviewCount  int      `json:"reviewCount"`
	Rating       float64  `json:"rating,omitempty"`
	TrustSignals []string `json:"trustSignals,omitempty"`
	LowPrice     bool     `json:"lowPrice"` // emphasizes low pricing in its listing
}

// QA is a question/answer pair, e.g. a "people also ask" item.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SourceRecord is the common per-source shape produced by the adapter
// layer. Every field is optional: scalar fields are pointers so absent,
// empty and present values stay distinguishable, list fields are nil when
// the source said nothing about them.
type SourceRecord struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Website     *string `json:"website,omitempty"`
	HoursText   *string `json:"hoursText,omitempty"`

	Services       []string `json:"services,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	ServiceAreas   []string `json:"serviceAreas,omitempty"`

	Photos  []Photo  `json:"photos,omitempty"`
	Reviews []Review `json:"reviews,omitempty"`

	Rating      *float64     `json:"rating,omitempty"`
	ReviewCount *int         `json:"reviewCount,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	// Competitive extras, populated only on the searchResults record.
	Keywords           []string     `json:"keywords,omitempty"`
	Competitors        []Competitor `json:"competitors,omitempty"`
	TrustSignals       []string     `json:"trustSignals,omitempty"`
	PeopleAlsoAsk      []QA         `json:"peopleAlsoAsk,omitempty"`
	PricingTransparent *bool        `json:"pricingTransparent,omitempty"`
	MarketPosition     *string      `json:"marketPosition,omitempty"`

	// User-answer extras, populated only on the userAnswers record.
	Confirmations   map[string]string `json:"confirmations,omitempty"`
	PhotoContexts   map[string]string `json:"photoContexts,omitempty"` // photo URL -> label text
	Differentiators []string          `json:"differentiators,omitempty"`
	Specializations []string          `json:"specializations,omitempty"`
	UniqueValue     *string           `json:"uniqueValue,omitempty"`
	Emergency       *bool             `json:"emergencyAvailable,omitempty"`
}

// IsEmpty reports whether the record carries no data at all.
func (r *SourceRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == nil && r.Description == nil && r.Category == nil &&
		r.Phone == nil && r.Address == nil && r.Website == nil && r.HoursText == nil &&
		len(r.Services) == 0 && len(r.Certifications) == 0 && len(r.ServiceAreas) == 0 &&
		len(r.Photos) == 0 && len(r.Reviews) == 0 &&
		r.Rating == nil && r.ReviewCount == nil && r.Coordinates == nil &&
		len(r.Keywords) == 0 && len(r.Competitors) == 0 && len(r.TrustSignals) == 0 &&
		len(r.PeopleAlsoAsk) == 0 && r.PricingTransparent == nil && r.MarketPosition == nil &&
		len(r.Confirmations) == 0 && len(r.PhotoContexts) == 0 &&
		len(r.Differentiators) == 0 && len(r.Specializations) == 0 &&
		r.UniqueValue == nil && r.Emergency == nil
}

// SourceSet bundles the four per-source records consumed by one fusion run.
type SourceSet struct {
	Profile       SourceRecord `json:"profile"`
	Places        SourceRecord `json:"places"`
	SearchResults SourceRecord `json:"searchResults"`
	UserAnswers   SourceRecord `json:"userAnswers"`
}

// Record returns the record for a source name, nil for unknown names.
func (s *SourceSet) Record(name string) *SourceRecord {
	switch name {
	case SourceProfile:
		return &s.Profile
	case SourcePlaces:
		return &s.Places
	case SourceSearchResults:
		return &s.SearchResults
	case SourceUserAnswers:
		return &s.UserAnswers
	}
	return nil
}
