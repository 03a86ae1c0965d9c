// internal/workers/generation/select-template/strategy.go
package selecttemplate

import (
	"strings"

	"sitegen-workers/internal/models"
)

// marketStats is everything the strategy rules look at, derived once per
// selection from insights plus the competitive record.
type marketStats struct {
	competitorCount      int
	lowPriceEmphasis     bool
	avgCompetitorReviews float64
	competitorServices   map[string]bool // lowercased union

	certCount   int
	reviewCount int
}

func deriveMarketStats(insights *models.DataInsights, competitive *models.SourceRecord) marketStats {
	stats := marketStats{
		competitorServices: make(map[string]bool),
		certCount:          len(insights.Confirmed.Certifications),
		reviewCount:        insights.Confirmed.ReviewCount,
	}

	lowPrice := 0
	totalReviews := 0
	for _, competitor := range competitive.Competitors {
		stats.competitorCount++
		if competitor.LowPrice {
			lowPrice++
		}
		totalReviews += competitor.ReviewCount
		for _, svc := range competitor.Services {
			svc = strings.ToLower(strings.TrimSpace(svc))
			if svc != "" {
				stats.competitorServices[svc] = true
			}
		}
	}
	if stats.competitorCount > 0 {
		stats.avgCompetitorReviews = float64(totalReviews) / float64(stats.competitorCount)
		stats.lowPriceEmphasis = lowPrice*2 >= stats.competitorCount
	}
	if hint := competitive.MarketPosition; hint != nil &&
		strings.Contains(strings.ToLower(*hint), "price") {
		stats.lowPriceEmphasis = true
	}
	return stats
}

// strategyRule is one row of the positioning decision table. Rules are
// evaluated top-down and the first match wins; the final rule always
// matches, so derivation never fails to produce a strategy.
type strategyRule struct {
	name  string
	match func(cfg *Config, stats *marketStats) bool
	apply func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy
}

var strategyRules = []strategyRule{
	{
		name: "price-market-with-credentials",
		match: func(cfg *Config, stats *marketStats) bool {
			return stats.lowPriceEmphasis && stats.certCount >= cfg.MinCertsForPremium
		},
		apply: func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy {
			return models.CompetitiveStrategy{
				Positioning: models.PositioningPremiumQuality,
				Emphasis:    []string{models.EmphasisCertifications, models.EmphasisQualityWork},
			}
		},
	},
	{
		name: "price-market-sparse-credentials",
		match: func(cfg *Config, stats *marketStats) bool {
			return stats.lowPriceEmphasis
		},
		apply: func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy {
			return models.CompetitiveStrategy{
				Positioning: models.PositioningValueFocused,
				Emphasis:    []string{models.EmphasisPricing, models.EmphasisReviews},
			}
		},
	},
	{
		name: "saturated-market",
		match: func(cfg *Config, stats *marketStats) bool {
			return stats.competitorCount >= cfg.SaturationThreshold
		},
		apply: func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy {
			return models.CompetitiveStrategy{
				Positioning:     models.PositioningSpecialist,
				Emphasis:        []string{models.EmphasisNicheServices, models.EmphasisQualityWork},
				Differentiators: marketGapServices(insights.Confirmed.Services, stats.competitorServices),
			}
		},
	},
	{
		name: "review-deficit",
		match: func(cfg *Config, stats *marketStats) bool {
			return stats.avgCompetitorReviews > 0 &&
				float64(stats.reviewCount) < cfg.LowReviewRatio*stats.avgCompetitorReviews
		},
		apply: func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy {
			return models.CompetitiveStrategy{
				Positioning: models.PositioningBalanced,
				Emphasis:    []string{models.EmphasisCredentials, models.EmphasisPortfolio, models.EmphasisGuarantees},
			}
		},
	},
	{
		name:  "default",
		match: func(cfg *Config, stats *marketStats) bool { return true },
		apply: func(cfg *Config, stats *marketStats, insights *models.DataInsights) models.CompetitiveStrategy {
			return models.CompetitiveStrategy{
				Positioning: models.PositioningBalanced,
				Emphasis:    []string{models.EmphasisReviews, models.EmphasisQualityWork},
			}
		},
	},
}

// deriveStrategy runs the decision table and applies the emergency
// overlay, which is independent of whichever row matched.
func (h *Handler) deriveStrategy(insights *models.DataInsights, competitive *models.SourceRecord) (models.CompetitiveStrategy, string) {
	stats := deriveMarketStats(insights, competitive)

	var strategy models.CompetitiveStrategy
	var matched string
	for _, rule := range strategyRules {
		if rule.match(h.config, &stats) {
			strategy = rule.apply(h.config, &stats, insights)
			matched = rule.name
			break
		}
	}

	strategy.Differentiators = append(strategy.Differentiators,
		missingFrom(strategy.Differentiators, insights.Confirmed.Differentiators)...)

	if insights.Confirmed.Emergency && !strategy.HasEmphasis(models.EmphasisEmergency) {
		strategy.Emphasis = append(strategy.Emphasis, models.EmphasisEmergency)
	}
	return strategy, matched
}

// marketGapServices returns confirmed services absent from the competitor
// union, preserving confirmed order and casing.
func marketGapServices(confirmed []string, competitorServices map[string]bool) []string {
	var gaps []string
	for _, svc := range confirmed {
		if !competitorServices[strings.ToLower(svc)] {
			gaps = append(gaps, svc)
		}
	}
	return gaps
}

func missingFrom(existing, candidates []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[strings.ToLower(e)] = true
	}
	var out []string
	for _, c := range candidates {
		if !seen[strings.ToLower(c)] {
			out = append(out, c)
		}
	}
	return out
}
