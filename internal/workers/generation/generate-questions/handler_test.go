// internal/workers/generation/generate-questions/handler_test.go
package generatequestions

import (
	"context"
	"reflect"
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
		Timeout:      10 * time.Second,
		MaxQuestions: 6,
	}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), catalog.Default(), logger.NewTestLogger(t))
}

func emptyInsights() models.DataInsights {
	return models.DataInsights{
		FieldSources:  map[string][]string{},
		SourceQuality: map[string]float64{},
		MissingData:   append([]string{}, models.RequiredDataPoints...),
	}
}

func questionIDs(questions []models.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

// ==========================
// Emission & Capping
// ==========================

func TestExecute_AllGapsOpen_CapsAtMax(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		BusinessID: "biz-1",
		Industry:   "landscaping",
		Insights:   emptyInsights(),
	})

	require.NoError(t, err)
	assert.False(t, output.Complete)
	// The top six templates by priority, nothing from the tail.
	assert.Equal(t, []string{
		"svc-confirm",
		"photo-labeling",
		"differentiators",
		"unique-value",
		"certifications",
		"service-areas",
	}, questionIDs(output.Questions))
}

func TestExecute_CapDropsStrictTail(t *testing.T) {
	handler := NewHandler(&Config{Timeout: time.Second, MaxQuestions: 3}, catalog.Default(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: emptyInsights(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"svc-confirm", "photo-labeling", "differentiators"}, questionIDs(output.Questions))
}

func TestExecute_ConfirmedDataSkipsQuestions(t *testing.T) {
	handler := newTestHandler(t)

	insights := emptyInsights()
	insights.OverallQuality = 0.4
	insights.Confirmed.Services = []string{"Lawn Care"}
	insights.MissingData = []string{
		models.MissingPhotos,
		models.MissingReviews,
		models.MissingUniqueValue,
	}

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: insights,
	})

	require.NoError(t, err)
	ids := questionIDs(output.Questions)
	assert.NotContains(t, ids, "svc-confirm")
	assert.NotContains(t, ids, "certifications")
	assert.NotContains(t, ids, "business-story")
	assert.Contains(t, ids, "unique-value")
}

func TestExecute_NoGapsNoQuestions(t *testing.T) {
	handler := newTestHandler(t)

	insights := emptyInsights()
	insights.OverallQuality = 0.9
	insights.MissingData = nil

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: insights,
	})

	require.NoError(t, err)
	assert.Empty(t, output.Questions)
	assert.True(t, output.Complete)
}

// ==========================
// Low-Quality Emission
// ==========================

func TestExecute_LowQualityEmitsConfirmation(t *testing.T) {
	handler := newTestHandler(t)

	// Services confirmed, but quality below the svc-confirm threshold:
	// the confirmation question is still asked.
	insights := emptyInsights()
	insights.OverallQuality = 0.1
	insights.Confirmed.Services = []string{"Lawn Care"}
	insights.MissingData = []string{models.MissingPhotos}

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: insights,
	})

	require.NoError(t, err)
	ids := questionIDs(output.Questions)
	assert.Contains(t, ids, "svc-confirm")
	assert.Contains(t, ids, "business-story")
}

func TestExecute_ServiceOptionsFromCatalogue(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "landscaping",
		Insights: emptyInsights(),
	})
	require.NoError(t, err)

	profile, err := catalog.Default().Industry("landscaping")
	require.NoError(t, err)

	require.Equal(t, "svc-confirm", output.Questions[0].ID)
	assert.Equal(t, profile.ServiceCatalog, output.Questions[0].Options)
}

// ==========================
// Ordering
// ==========================

func TestGenerate_CategoryTiebreak(t *testing.T) {
	cat := &catalog.Catalog{
		Version: "test",
		Industries: []catalog.IndustryProfile{
			{
				Tag:         "general",
				DisplayName: "General",
				Questions: []catalog.QuestionTemplate{
					{ID: "op-question", Type: "text", Category: "operational", Priority: 50, Text: "a", Gap: models.MissingHours},
					{ID: "svc-question", Type: "text", Category: "services", Priority: 50, Text: "b", Gap: models.MissingServices},
					{ID: "trust-question", Type: "text", Category: "trust", Priority: 50, Text: "c", Gap: models.MissingCertifications},
					{ID: "diff-question", Type: "text", Category: "differentiation", Priority: 50, Text: "d", Gap: models.MissingDifferentiators},
				},
			},
		},
	}
	handler := NewHandler(createTestConfig(), cat, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "general",
		Insights: emptyInsights(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"svc-question", "diff-question", "trust-question", "op-question"}, questionIDs(output.Questions))
}

// ==========================
// Monotonic Shrink
// ==========================

func TestGenerate_MonotonicShrink(t *testing.T) {
	sparse := emptyInsights()
	sparse.OverallQuality = 0.05

	richer := emptyInsights()
	richer.OverallQuality = 0.55
	richer.MissingData = []string{
		models.MissingPhotos,
		models.MissingUniqueValue,
		models.MissingEmergency,
	}

	// Compare without the cap so the subset relation is visible beyond
	// the truncation point.
	profile, err := catalog.Default().Industry("landscaping")
	require.NoError(t, err)
	uncapped := NewHandler(&Config{MaxQuestions: 0}, catalog.Default(), logger.NewTestLogger(t))
	allSparse := uncapped.generate(&sparse, profile)
	allRich := uncapped.generate(&richer, profile)

	sparseIDs := make(map[string]bool)
	for _, q := range allSparse {
		sparseIDs[q.ID] = true
	}
	for _, q := range allRich {
		assert.True(t, sparseIDs[q.ID], "question %s appeared only with richer data", q.ID)
	}
	assert.Less(t, len(allRich), len(allSparse))
}

// ==========================
// Determinism
// ==========================

func TestExecute_Deterministic(t *testing.T) {
	handler := newTestHandler(t)

	input := &Input{Industry: "landscaping", Insights: emptyInsights()}

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first.Questions, second.Questions))
}

// ==========================
// Industry Fallback
// ==========================

func TestExecute_UnknownIndustryFallsBackToGeneral(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		Industry: "falconry",
		Insights: emptyInsights(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Questions)
}

func TestExecute_UnknownIndustryStrictFails(t *testing.T) {
	cat := catalog.Default()
	cat.Strict = true
	handler := NewHandler(createTestConfig(), cat, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{
		Industry: "falconry",
		Insights: emptyInsights(),
	})

	assert.Error(t, err)
}
