// internal/workers/generation/populate-content/handler_test.go
package populatecontent

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/models"
	"sitegen-workers/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		MaxFAQItems:      8,
		MaxGalleryPhotos: 12,
		MaxTestimonials:  5,
		MaxSEOKeywords:   10,
	}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), catalog.Default(), logger.NewTestLogger(t))
}

func testInsights() models.DataInsights {
	return models.DataInsights{
		Confirmed: models.ConfirmedFields{
			Name:           "Greenline Landscaping",
			Description:    "Family-owned landscaping serving Austin since 2008.",
			Phone:          "(512) 555-0139",
			Address:        "100 Oak St, Austin, TX",
			Hours:          "Mon-Fri 8am-6pm",
			Services:       []string{"Lawn Care", "Tree Trimming", "Drainage Solutions"},
			Certifications: []string{"Licensed", "Insured"},
			ServiceAreas:   []string{"Austin", "Round Rock"},
			Photos: []models.Photo{
				{URL: "a.jpg"},
				{URL: "b.jpg", Context: "before and after patio transformation"},
				{URL: "c.jpg", Context: "our crew on site"},
			},
			Reviews: []models.Review{
				{Author: "Sam", Rating: 5, Text: "Transformed our backyard completely."},
				{Author: "Alex", Rating: 4, Text: "Great work."},
			},
			Rating:      4.8,
			ReviewCount: 127,
			UniqueValue: "We treat every yard like our own.",
			Emergency:   true,
		},
		FieldSources: map[string][]string{
			"name":        {models.SourceProfile},
			"phone":       {models.SourceProfile},
			"services":    {models.SourceProfile, models.SourcePlaces},
			"photos":      {models.SourcePlaces, models.SourceUserAnswers},
			"reviews":     {models.SourcePlaces},
			"uniqueValue": {models.SourceUserAnswers},
		},
		OverallQuality: 0.8,
	}
}

func testSelection() models.TemplateSelection {
	return models.TemplateSelection{
		TemplateID: "classic-local",
		SectionVariants: map[string]string{
			models.SectionHero:         "hero-urgent",
			models.SectionAbout:        "about-standard",
			models.SectionServices:     "services-cards",
			models.SectionGallery:      "gallery-categorized",
			models.SectionTestimonials: "testimonials-featured",
			models.SectionTrust:        "trust-simple",
			models.SectionFAQ:          "faq-accordion",
			models.SectionServiceAreas: "areas-list",
			models.SectionCTA:          "cta-quote",
			models.SectionContact:      "contact-standard",
			models.SectionEmergency:    "emergency-banner",
		},
		SectionOrder: []string{
			models.SectionHero, models.SectionAbout, models.SectionServices,
			models.SectionGallery, models.SectionTestimonials, models.SectionTrust,
			models.SectionFAQ, models.SectionServiceAreas, models.SectionEmergency,
			models.SectionCTA, models.SectionContact,
		},
		Strategy: models.CompetitiveStrategy{
			Positioning:     models.PositioningSpecialist,
			Emphasis:        []string{models.EmphasisNicheServices},
			Differentiators: []string{"Drainage Solutions"},
		},
	}
}

func testInput() *Input {
	return &Input{
		BusinessID: "biz-1",
		Industry:   "landscaping",
		Selection:  testSelection(),
		Insights:   testInsights(),
	}
}

// ==========================
// Coverage & Placeholders
// ==========================

func TestExecute_EverySectionPopulated(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	input := testInput()
	assert.Len(t, output.Sections, len(input.Selection.SectionVariants))
	for name, variant := range input.Selection.SectionVariants {
		section, ok := output.Sections[name]
		require.True(t, ok, "missing section %s", name)
		assert.Equal(t, variant, section.Variant)
		assert.NotEmpty(t, section.Content, name)
		assert.NotEmpty(t, section.Metadata.DataSources, name)
	}
}

func TestExecute_UnknownSectionGetsPlaceholder(t *testing.T) {
	handler := newTestHandler(t)

	input := testInput()
	input.Selection.SectionVariants["holiday-banner"] = "banner-v2"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	section, ok := output.Sections["holiday-banner"]
	require.True(t, ok)
	assert.Equal(t, "banner-v2", section.Variant)
	assert.Equal(t, true, section.Content["placeholder"])
	assert.Equal(t, "holiday-banner", section.Content["section"])
}

// ==========================
// Hero & About
// ==========================

func TestExecute_HeroContent(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	hero := output.Sections[models.SectionHero]
	assert.Equal(t, "Greenline Landscaping", hero.Content["headline"])
	assert.Equal(t, "We treat every yard like our own.", hero.Content["subheadline"])
	assert.Equal(t, "(512) 555-0139", hero.Content["phone"])
	assert.Equal(t, true, hero.Content["emergency"])
	assert.Equal(t, "Drainage Solutions", hero.Metadata.CompetitiveAdvantage)
	assert.Contains(t, hero.Metadata.DataSources, models.SourceProfile)
	assert.Contains(t, hero.Metadata.DataSources, models.SourceUserAnswers)
}

func TestExecute_HeroFallbacksWhenDataAbsent(t *testing.T) {
	handler := newTestHandler(t)

	input := testInput()
	input.Insights = models.DataInsights{}

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	profile, err := catalog.Default().Industry("landscaping")
	require.NoError(t, err)

	hero := output.Sections[models.SectionHero]
	assert.Equal(t, profile.HeadlineFallback, hero.Content["headline"])
	assert.Equal(t, profile.SubheadlineFallback, hero.Content["subheadline"])
	assert.Equal(t, []string{models.SourceDefault}, hero.Metadata.DataSources)
	assert.NotContains(t, hero.Content, "phone")
}

// ==========================
// Services
// ==========================

func TestExecute_MarketGapServicesFeaturedFirst(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	services := output.Sections[models.SectionServices]
	items, ok := services.Content["services"].([]serviceItem)
	require.True(t, ok)
	require.Len(t, items, 3)

	assert.Equal(t, "Drainage Solutions", items[0].Name)
	assert.True(t, items[0].Featured)
	assert.Equal(t, "Lawn Care", items[1].Name)
	assert.False(t, items[1].Featured)
	assert.NotEmpty(t, services.Metadata.CompetitiveAdvantage)
}

func TestExecute_ServiceIconsFromCatalogue(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	items := output.Sections[models.SectionServices].Content["services"].([]serviceItem)
	for _, item := range items {
		if item.Name == "Lawn Care" {
			assert.NotEmpty(t, item.Icon)
		}
	}
}

// ==========================
// Photos
// ==========================

func TestCategorizePhoto(t *testing.T) {
	tests := []struct {
		context  string
		category string
	}{
		{"before and after patio transformation", models.PhotoCategoryTransformation},
		{"finished deck project", models.PhotoCategoryCompleted},
		{"our crew on site", models.PhotoCategoryTeam},
		{"new truck and equipment", models.PhotoCategoryEquipment},
		{"nice day", models.PhotoCategoryGeneral},
		{"", models.PhotoCategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := categorizePhoto(models.Photo{URL: "x.jpg", Context: tt.context})
			assert.Equal(t, tt.category, got)
		})
	}
}

func TestArrangePhotos_CategoryPriorityIndependentOfArrival(t *testing.T) {
	photos := []models.Photo{
		{URL: "1.jpg"},                                   // general
		{URL: "2.jpg", Context: "crew photo"},            // team
		{URL: "3.jpg", Context: "before and after lawn"}, // transformation
		{URL: "4.jpg", Context: "completed walkway"},     // completed
	}

	arranged := arrangePhotos(photos, 0)
	require.Len(t, arranged, 4)
	assert.Equal(t, "3.jpg", arranged[0].URL)
	assert.Equal(t, "4.jpg", arranged[1].URL)
	assert.Equal(t, "2.jpg", arranged[2].URL)
	assert.Equal(t, "1.jpg", arranged[3].URL)
}

func TestArrangePhotos_Cap(t *testing.T) {
	photos := []models.Photo{{URL: "1.jpg"}, {URL: "2.jpg"}, {URL: "3.jpg"}}
	assert.Len(t, arrangePhotos(photos, 2), 2)
}

// ==========================
// FAQ Assembly
// ==========================

func TestAssembleFAQs_SourcePriorityAndDedupe(t *testing.T) {
	peopleAlsoAsk := []models.QA{
		{Question: "Do you offer free estimates?", Answer: "Most providers do, and we always will."},
		{Question: "How much does lawn care cost?", Answer: "It depends on yard size."},
		{Question: "No answer question", Answer: ""},
	}
	bank := []catalog.FAQ{
		{Question: "Do you offer free estimates?!", Answer: "Yes, free estimates on every job."},
		{Question: "Are you insured?", Answer: "Fully insured."},
	}

	items := assembleFAQs(peopleAlsoAsk, bank, []string{"Austin"}, "Landscaping", 8)

	questions := make([]string, 0, len(items))
	for _, item := range items {
		questions = append(questions, item.Question)
	}

	// External wording wins the dedupe, unanswered items are dropped,
	// location FAQ is appended.
	assert.Equal(t, []string{
		"Do you offer free estimates?",
		"How much does lawn care cost?",
		"Are you insured?",
		"Do you offer landscaping services in Austin?",
	}, questions)
	assert.Equal(t, models.SourceSearchResults, items[0].Source)
	assert.Equal(t, "industry", items[2].Source)
	assert.Equal(t, "generated", items[3].Source)
}

func TestAssembleFAQs_Cap(t *testing.T) {
	profile, err := catalog.Default().Industry("landscaping")
	require.NoError(t, err)

	items := assembleFAQs(nil, profile.FAQBank, []string{"Austin", "Round Rock", "Cedar Park"}, "Landscaping", 4)
	assert.Len(t, items, 4)
}

// ==========================
// SEO Keywords & Metadata
// ==========================

func TestDeriveKeywords(t *testing.T) {
	profile, err := catalog.Default().Industry("landscaping")
	require.NoError(t, err)

	insights := testInsights()
	keywords := deriveKeywords(&insights, profile, 20)

	assert.Contains(t, keywords, "lawn care")
	assert.Contains(t, keywords, "landscaping")
	assert.Contains(t, keywords, "lawn care austin")
	for _, kw := range keywords {
		assert.Equal(t, strings.ToLower(kw), kw)
	}
}

func TestExecute_SectionsCarryKeywords(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.Sections[models.SectionHero].Metadata.SEOKeywords)
	assert.NotEmpty(t, output.Sections[models.SectionServices].Metadata.SEOKeywords)
}

// ==========================
// Industry Fallback & Determinism
// ==========================

func TestExecute_UnknownIndustryFallsBackToGeneral(t *testing.T) {
	handler := newTestHandler(t)

	input := testInput()
	input.Industry = "falconry"

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "general", output.Industry)
	assert.Len(t, output.Sections, len(input.Selection.SectionVariants))
}

func TestExecute_Deterministic(t *testing.T) {
	handler := newTestHandler(t)

	first, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first.Sections, second.Sections))
}
