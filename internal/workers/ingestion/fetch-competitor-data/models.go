// internal/workers/ingestion/fetch-competitor-data/models.go
package fetchcompetitordata

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID string `json:"businessId"`
	Industry   string `json:"industry"`
	Area       string `json:"area,omitempty"` // metro / primary service area
}

// Output carries the shaped search-results record consumed by fusion and
// template selection.
type Output struct {
	BusinessID    string              `json:"businessId"`
	SearchResults models.SourceRecord `json:"searchResults"`
	TotalHits     int                 `json:"totalHits"`
}

// competitorDoc mirrors one document in the competitor index.
type competitorDoc struct {
	Name           string      `json:"name"`
	Services       []string    `json:"services"`
	ReviewCount    int         `json:"review_count"`
	Rating         float64     `json:"rating"`
	TrustSignals   []string    `json:"trust_signals"`
	LowPrice       bool        `json:"low_price"`
	Keywords       []string    `json:"keywords"`
	MarketPosition string      `json:"market_position"`
	PeopleAlsoAsk  []models.QA `json:"people_also_ask"`
}

// searchEnvelope is the slice of the ES search response we read.
type searchEnvelope struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source competitorDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
