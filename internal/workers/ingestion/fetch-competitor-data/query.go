// internal/workers/ingestion/fetch-competitor-data/query.go
package fetchcompetitordata

import (
	"strings"

	"sitegen-workers/internal/models"
)

// buildSearchBody assembles the competitor query: industry is a hard
// filter, area relevance-scores when present.
func buildSearchBody(industry, area string, size int) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"industry": strings.ToLower(industry)},
			},
		},
	}
	if area != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"match": map[string]interface{}{"service_area": area},
			},
		}
	}

	return map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"review_count": map[string]interface{}{"order": "desc"}},
		},
	}
}

// shapeRecord folds competitor documents into the search-results record:
// one Competitor per hit, keyword/trust-signal unions, people-also-ask
// deduped on question text, and the most common market-position hint.
func shapeRecord(docs []competitorDoc) models.SourceRecord {
	var record models.SourceRecord

	seenKeyword := make(map[string]bool)
	seenSignal := make(map[string]bool)
	seenQuestion := make(map[string]bool)
	positionVotes := make(map[string]int)

	for _, doc := range docs {
		record.Competitors = append(record.Competitors, models.Competitor{
			Name:         doc.Name,
			Services:     doc.Services,
			ReviewCount:  doc.ReviewCount,
			Rating:       doc.Rating,
			TrustSignals: doc.TrustSignals,
			LowPrice:     doc.LowPrice,
		})

		for _, kw := range doc.Keywords {
			if key := strings.ToLower(strings.TrimSpace(kw)); key != "" && !seenKeyword[key] {
				seenKeyword[key] = true
				record.Keywords = append(record.Keywords, key)
			}
		}
		for _, signal := range doc.TrustSignals {
			if key := strings.ToLower(signal); !seenSignal[key] {
				seenSignal[key] = true
				record.TrustSignals = append(record.TrustSignals, signal)
			}
		}
		for _, qa := range doc.PeopleAlsoAsk {
			if key := strings.ToLower(strings.TrimSpace(qa.Question)); key != "" && !seenQuestion[key] {
				seenQuestion[key] = true
				record.PeopleAlsoAsk = append(record.PeopleAlsoAsk, qa)
			}
		}
		if doc.MarketPosition != "" {
			positionVotes[strings.ToLower(doc.MarketPosition)]++
		}
	}

	if position := topVote(positionVotes); position != "" {
		record.MarketPosition = &position
	}
	return record
}

// topVote picks the most frequent entry, breaking ties alphabetically so
// the result is stable.
func topVote(votes map[string]int) string {
	var best string
	bestCount := 0
	for entry, count := range votes {
		if count > bestCount || (count == bestCount && (best == "" || entry < best)) {
			best = entry
			bestCount = count
		}
	}
	return best
}
