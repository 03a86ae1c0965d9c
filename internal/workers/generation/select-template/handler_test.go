// internal/workers/generation/select-template/handler_test.go
package selecttemplate

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:               10 * time.Second,
		SaturationThreshold:   10,
		LowReviewRatio:        0.5,
		MinCertsForPremium:    3,
		MinGalleryPhotos:      1,
		MinTestimonialReviews: 1,
	}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), logger.NewTestLogger(t))
}

func richInsights() models.DataInsights {
	return models.DataInsights{
		Confirmed: models.ConfirmedFields{
			Name:           "Greenline Landscaping",
			Description:    "Full-service landscaping.",
			Services:       []string{"Lawn Care", "Tree Trimming", "Drainage Solutions"},
			Certifications: []string{"Licensed", "Insured", "Certified Arborist"},
			ServiceAreas:   []string{"Austin", "Round Rock"},
			Photos: []models.Photo{
				{URL: "a.jpg", Context: "patio transformation"},
				{URL: "b.jpg"},
				{URL: "c.jpg"},
			},
			Reviews:     []models.Review{{Author: "Sam", Rating: 5, Text: "Great"}},
			Rating:      4.8,
			ReviewCount: 127,
		},
		OverallQuality: 0.8,
	}
}

func lowPriceMarket(count int) models.SourceRecord {
	competitors := make([]models.Competitor, 0, count)
	for i := 0; i < count; i++ {
		competitors = append(competitors, models.Competitor{
			Name:        fmt.Sprintf("Competitor %d", i+1),
			Services:    []string{"Lawn Care"},
			ReviewCount: 40,
			LowPrice:    true,
		})
	}
	return models.SourceRecord{Competitors: competitors}
}

// ==========================
// Strategy Decision Table
// ==========================

func TestDeriveStrategy_DecisionTable(t *testing.T) {
	tests := []struct {
		name        string
		insights    models.DataInsights
		competitive models.SourceRecord
		positioning string
		emphasis    []string
	}{
		{
			name:        "price market with credentials goes premium",
			insights:    richInsights(),
			competitive: lowPriceMarket(4),
			positioning: models.PositioningPremiumQuality,
			emphasis:    []string{models.EmphasisCertifications, models.EmphasisQualityWork},
		},
		{
			name: "price market without credentials goes value",
			insights: models.DataInsights{
				Confirmed: models.ConfirmedFields{Certifications: []string{"Licensed"}},
			},
			competitive: lowPriceMarket(4),
			positioning: models.PositioningValueFocused,
			emphasis:    []string{models.EmphasisPricing, models.EmphasisReviews},
		},
		{
			name:        "empty market defaults to balanced",
			insights:    models.DataInsights{},
			competitive: models.SourceRecord{},
			positioning: models.PositioningBalanced,
			emphasis:    []string{models.EmphasisReviews, models.EmphasisQualityWork},
		},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, _ := handler.deriveStrategy(&tt.insights, &tt.competitive)
			assert.Equal(t, tt.positioning, strategy.Positioning)
			assert.Equal(t, tt.emphasis, strategy.Emphasis)
		})
	}
}

func TestDeriveStrategy_SaturatedMarketInjectsGaps(t *testing.T) {
	handler := newTestHandler(t)

	insights := richInsights()
	competitors := make([]models.Competitor, 0, 12)
	for i := 0; i < 12; i++ {
		competitors = append(competitors, models.Competitor{
			Name:     fmt.Sprintf("Competitor %d", i+1),
			Services: []string{"Lawn Care", "Tree Trimming"},
		})
	}
	competitive := models.SourceRecord{Competitors: competitors}

	strategy, rule := handler.deriveStrategy(&insights, &competitive)

	assert.Equal(t, models.PositioningSpecialist, strategy.Positioning)
	assert.Equal(t, "saturated-market", rule)
	// Drainage Solutions is confirmed but absent from every competitor.
	assert.Contains(t, strategy.Differentiators, "Drainage Solutions")
	assert.NotContains(t, strategy.Differentiators, "Lawn Care")
}

func TestDeriveStrategy_ReviewDeficitEmphasis(t *testing.T) {
	handler := newTestHandler(t)

	insights := models.DataInsights{
		Confirmed: models.ConfirmedFields{ReviewCount: 5},
	}
	competitors := []models.Competitor{
		{Name: "A", ReviewCount: 100},
		{Name: "B", ReviewCount: 80},
	}
	competitive := models.SourceRecord{Competitors: competitors}

	strategy, rule := handler.deriveStrategy(&insights, &competitive)

	assert.Equal(t, "review-deficit", rule)
	assert.Equal(t, models.PositioningBalanced, strategy.Positioning)
	assert.True(t, strategy.HasEmphasis(models.EmphasisCredentials))
	assert.True(t, strategy.HasEmphasis(models.EmphasisPortfolio))
	assert.True(t, strategy.HasEmphasis(models.EmphasisGuarantees))
}

func TestDeriveStrategy_EmergencyOverlay(t *testing.T) {
	handler := newTestHandler(t)

	insights := richInsights()
	insights.Confirmed.Emergency = true

	// Overlay applies regardless of which row matched.
	for _, competitive := range []models.SourceRecord{lowPriceMarket(4), {}} {
		strategy, _ := handler.deriveStrategy(&insights, &competitive)
		assert.True(t, strategy.HasEmphasis(models.EmphasisEmergency))
	}
}

func TestDeriveStrategy_MarketPositionHint(t *testing.T) {
	handler := newTestHandler(t)

	hint := "price-competitive"
	insights := models.DataInsights{}
	competitive := models.SourceRecord{MarketPosition: &hint}

	strategy, _ := handler.deriveStrategy(&insights, &competitive)
	assert.Equal(t, models.PositioningValueFocused, strategy.Positioning)
}

// ==========================
// Section Inclusion & Variants
// ==========================

func TestExecute_SectionInclusionThresholds(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("sparse data keeps only unconditional sections", func(t *testing.T) {
		output, err := handler.Execute(context.Background(), &Input{
			Industry: "landscaping",
			Insights: models.DataInsights{},
		})
		require.NoError(t, err)

		variants := output.Selection.SectionVariants
		assert.Contains(t, variants, models.SectionHero)
		assert.Contains(t, variants, models.SectionContact)
		assert.Contains(t, variants, models.SectionFAQ)
		assert.NotContains(t, variants, models.SectionGallery)
		assert.NotContains(t, variants, models.SectionTestimonials)
		assert.NotContains(t, variants, models.SectionTrust)
		assert.NotContains(t, variants, models.SectionServiceAreas)
		assert.NotContains(t, variants, models.SectionEmergency)
	})

	t.Run("rich data includes thresholded sections", func(t *testing.T) {
		insights := richInsights()
		insights.Confirmed.Emergency = true
		output, err := handler.Execute(context.Background(), &Input{
			Industry: "landscaping",
			Insights: insights,
		})
		require.NoError(t, err)

		variants := output.Selection.SectionVariants
		for _, section := range []string{
			models.SectionGallery, models.SectionTestimonials, models.SectionTrust,
			models.SectionServiceAreas, models.SectionEmergency,
		} {
			assert.Contains(t, variants, section)
		}
	})
}

func TestExecute_VariantTables(t *testing.T) {
	handler := newTestHandler(t)

	insights := richInsights()
	insights.Confirmed.Emergency = true
	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: insights,
	})
	require.NoError(t, err)

	variants := output.Selection.SectionVariants
	assert.Equal(t, "hero-urgent", variants[models.SectionHero])
	assert.Equal(t, "gallery-categorized", variants[models.SectionGallery])
	assert.Equal(t, "testimonials-featured", variants[models.SectionTestimonials])
	assert.Equal(t, "trust-badges", variants[models.SectionTrust])

	// Every selected section has a reasoning entry.
	for section := range variants {
		assert.NotEmpty(t, output.Selection.Reasoning[section], section)
	}
}

// ==========================
// Section Ordering
// ==========================

func assertTotalOrder(t *testing.T, selection *models.TemplateSelection) {
	t.Helper()
	require.NotEmpty(t, selection.SectionOrder)
	assert.Equal(t, models.SectionHero, selection.SectionOrder[0])
	assert.Len(t, selection.SectionOrder, len(selection.SectionVariants))

	seen := make(map[string]bool)
	for _, section := range selection.SectionOrder {
		assert.False(t, seen[section], "duplicate section %s", section)
		seen[section] = true
		assert.Contains(t, selection.SectionVariants, section)
	}
}

func TestExecute_SectionOrderTotality(t *testing.T) {
	handler := newTestHandler(t)

	inputs := []*Input{
		{Industry: "landscaping", Insights: models.DataInsights{}},
		{Industry: "landscaping", Insights: richInsights()},
		{Industry: "landscaping", Insights: richInsights(), Competitive: lowPriceMarket(4)},
		{Industry: "landscaping", Insights: richInsights(), Competitive: lowPriceMarket(15)},
	}
	for i, input := range inputs {
		output, err := handler.Execute(context.Background(), input)
		require.NoError(t, err, "input %d", i)
		assertTotalOrder(t, &output.Selection)
	}
}

func TestExecute_SpecialistOrdersServicesFirst(t *testing.T) {
	handler := newTestHandler(t)

	competitors := make([]models.Competitor, 12)
	for i := range competitors {
		competitors[i] = models.Competitor{Name: fmt.Sprintf("C%d", i)}
	}

	output, err := handler.Execute(context.Background(), &Input{
		Industry:    "landscaping",
		Insights:    richInsights(),
		Competitive: models.SourceRecord{Competitors: competitors},
	})
	require.NoError(t, err)

	require.Equal(t, models.PositioningSpecialist, output.Selection.Strategy.Positioning)
	assert.Equal(t, models.SectionHero, output.Selection.SectionOrder[0])
	assert.Equal(t, models.SectionServices, output.Selection.SectionOrder[1])
}

func TestOrderSections_PortfolioEmphasisPullsGalleryForward(t *testing.T) {
	strategy := models.CompetitiveStrategy{
		Positioning: models.PositioningBalanced,
		Emphasis:    []string{models.EmphasisPortfolio},
	}
	included := []string{
		models.SectionHero, models.SectionAbout, models.SectionServices,
		models.SectionGallery, models.SectionCTA, models.SectionContact,
	}

	order := orderSections(included, &strategy)
	assert.Equal(t, models.SectionHero, order[0])
	assert.Equal(t, models.SectionGallery, order[1])
}

// ==========================
// Template Choice & Determinism
// ==========================

func TestExecute_TemplateByPositioning(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name       string
		input      *Input
		templateID string
	}{
		{"premium", &Input{Insights: richInsights(), Competitive: lowPriceMarket(4)}, "premium-showcase"},
		{"value", &Input{Insights: models.DataInsights{}, Competitive: lowPriceMarket(4)}, "value-clear"},
		{"balanced default", &Input{Insights: models.DataInsights{}}, "classic-local"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.templateID, output.Selection.TemplateID)
		})
	}
}

func TestExecute_Deterministic(t *testing.T) {
	handler := newTestHandler(t)

	input := &Input{
		Industry:    "landscaping",
		Insights:    richInsights(),
		Competitive: lowPriceMarket(8),
	}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first.Selection, second.Selection))
}
