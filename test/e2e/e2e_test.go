// test/e2e/e2e_test.go
//
// In-process pipeline tests: the generation workers are chained the same
// way the BPMN process chains them, raw source payloads in, populated
// sections out. No broker, no network.
package e2e

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen-workers/internal/common/database"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/models"
	"sitegen-workers/pkg/catalog"

	fusebusinessdata "sitegen-workers/internal/workers/generation/fuse-business-data"
	generatequestions "sitegen-workers/internal/workers/generation/generate-questions"
	populatecontent "sitegen-workers/internal/workers/generation/populate-content"
	selecttemplate "sitegen-workers/internal/workers/generation/select-template"
	normalizesourcedata "sitegen-workers/internal/workers/ingestion/normalize-source-data"
	recorduseranswers "sitegen-workers/internal/workers/persistence/record-user-answers"
	savegeneratedsite "sitegen-workers/internal/workers/persistence/save-generated-site"
)

// ==========================
// Test Helper Functions
// ==========================

type pipeline struct {
	normalize *normalizesourcedata.Handler
	fuse      *fusebusinessdata.Handler
	questions *generatequestions.Handler
	selection *selecttemplate.Handler
	populate  *populatecontent.Handler
}

func newPipeline(t *testing.T) *pipeline {
	log := logger.NewTestLogger(t)
	cat := catalog.Default()
	return &pipeline{
		normalize: normalizesourcedata.NewHandler(normalizesourcedata.LoadConfig(), log),
		fuse:      fusebusinessdata.NewHandler(fusebusinessdata.LoadConfig(), cat, nil, log),
		questions: generatequestions.NewHandler(generatequestions.LoadConfig(), cat, log),
		selection: selecttemplate.NewHandler(selecttemplate.LoadConfig(), log),
		populate:  populatecontent.NewHandler(populatecontent.LoadConfig(), cat, log),
	}
}

func rawPayloads(t *testing.T, records map[string]interface{}) map[string]json.RawMessage {
	payloads := make(map[string]json.RawMessage, len(records))
	for source, record := range records {
		data, err := json.Marshal(record)
		require.NoError(t, err)
		payloads[source] = data
	}
	return payloads
}

func sparseProfilePayloads(t *testing.T) map[string]json.RawMessage {
	return rawPayloads(t, map[string]interface{}{
		models.SourceProfile: map[string]interface{}{
			"name":  "Hill Country Lawns",
			"phone": "(512) 555-0404",
		},
	})
}

func richLandscapingPayloads(t *testing.T) map[string]json.RawMessage {
	competitors := make([]map[string]interface{}, 0, 12)
	for i := 0; i < 12; i++ {
		competitors = append(competitors, map[string]interface{}{
			"name":        "Competitor",
			"services":    []string{"Lawn Care", "Tree Trimming"},
			"reviewCount": 40,
		})
	}
	return rawPayloads(t, map[string]interface{}{
		models.SourceProfile: map[string]interface{}{
			"name":           "Greenline Landscaping",
			"description":    "Family-run landscaping crew serving the Austin metro since 2009.",
			"phone":          "(512) 555-0100",
			"address":        "800 Barton Springs Rd, Austin, TX",
			"hoursText":      "Mon-Sat 7am-6pm",
			"services":       []string{"Lawn Care", "Landscape Design", "Drainage Solutions"},
			"certifications": []string{"Licensed", "Insured", "Certified Arborist"},
			"serviceAreas":   []string{"Austin", "Round Rock", "Cedar Park"},
		},
		models.SourcePlaces: map[string]interface{}{
			"name":        "Greenline Landscaping",
			"rating":      4.8,
			"reviewCount": 127,
			"photos": []map[string]interface{}{
				{"url": "https://photos.example.com/1.jpg"},
				{"url": "https://photos.example.com/2.jpg"},
				{"url": "https://photos.example.com/3.jpg"},
			},
			"reviews": []map[string]interface{}{
				{"author": "Dana", "rating": 5, "text": "Fixed our drainage for good."},
				{"author": "Luis", "rating": 5, "text": "Best looking yard on the street."},
			},
		},
		models.SourceSearchResults: map[string]interface{}{
			"keywords":    []string{"lawn care austin", "drainage contractor"},
			"competitors": competitors,
		},
		models.SourceUserAnswers: map[string]interface{}{
			"uniqueValue":     "We solve drainage problems other crews walk away from.",
			"differentiators": []string{"Drainage expertise", "Same-week scheduling"},
			"specializations": []string{"Residential"},
			"photoContexts": map[string]string{
				"https://photos.example.com/1.jpg": "before and after drainage regrade",
				"https://photos.example.com/2.jpg": "finished patio project",
				"https://photos.example.com/3.jpg": "our crew on site",
			},
			"emergencyAvailable": true,
		},
	})
}

// ==========================
// Pipeline Tests
// ==========================

// A business with nothing but a name and phone number gets a site shell
// and the full question round instead of fabricated content.
func TestPipeline_SparseProfileAsksQuestions(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	normOut, err := p.normalize.Execute(ctx, &normalizesourcedata.Input{
		BusinessID: "biz-sparse",
		Payloads:   sparseProfilePayloads(t),
	})
	require.NoError(t, err)
	assert.Empty(t, normOut.Degraded)
	assert.True(t, normOut.Sources.Places.IsEmpty())

	fuseOut, err := p.fuse.Execute(ctx, &fusebusinessdata.Input{
		BusinessID: "biz-sparse",
		Industry:   "landscaping",
		Sources:    normOut.Sources,
	})
	require.NoError(t, err)

	insights := fuseOut.Insights
	assert.Equal(t, "Hill Country Lawns", insights.Confirmed.Name)
	assert.Equal(t, []string{models.SourceProfile}, insights.FieldSources["name"])
	assert.Contains(t, insights.MissingData, models.MissingServices)
	assert.Contains(t, insights.MissingData, models.MissingUniqueValue)

	qOut, err := p.questions.Execute(ctx, &generatequestions.Input{
		BusinessID: "biz-sparse",
		Industry:   "landscaping",
		Insights:   insights,
	})
	require.NoError(t, err)
	assert.False(t, qOut.Complete)
	require.Len(t, qOut.Questions, 6)

	// Highest-priority gap first, with options from the service catalogue.
	assert.Equal(t, "svc-confirm", qOut.Questions[0].ID)
	assert.Len(t, qOut.Questions[0].Options, 10)
	for i := 1; i < len(qOut.Questions); i++ {
		assert.GreaterOrEqual(t, qOut.Questions[i-1].Priority, qOut.Questions[i].Priority)
	}

	selOut, err := p.selection.Execute(ctx, &selecttemplate.Input{
		BusinessID: "biz-sparse",
		Industry:   "landscaping",
		Insights:   insights,
	})
	require.NoError(t, err)

	selection := selOut.Selection
	assert.Equal(t, "classic-local", selection.TemplateID)
	assert.Equal(t, models.PositioningBalanced, selection.Strategy.Positioning)
	assert.Equal(t, models.SectionHero, selection.SectionOrder[0])
	assert.NotContains(t, selection.SectionOrder, models.SectionGallery)
	assert.NotContains(t, selection.SectionOrder, models.SectionTestimonials)

	popOut, err := p.populate.Execute(ctx, &populatecontent.Input{
		BusinessID: "biz-sparse",
		Industry:   "landscaping",
		Selection:  selection,
		Insights:   insights,
	})
	require.NoError(t, err)
	require.Len(t, popOut.Sections, len(selection.SectionOrder))

	hero := popOut.Sections[models.SectionHero]
	assert.Equal(t, "Hill Country Lawns", hero.Content["headline"])
	// No confirmed unique value, so the industry fallback carries the hero.
	assert.Equal(t, "Transforming outdoor spaces with expert care", hero.Content["subheadline"])
}

// A fully answered business closes every data gap: no questions remain,
// the saturated market drives specialist positioning, and the populated
// sections follow the specialist ordering.
func TestPipeline_RichBusinessGeneratesSpecialistSite(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	normOut, err := p.normalize.Execute(ctx, &normalizesourcedata.Input{
		BusinessID: "biz-rich",
		Payloads:   richLandscapingPayloads(t),
	})
	require.NoError(t, err)
	assert.Empty(t, normOut.Degraded)

	fuseOut, err := p.fuse.Execute(ctx, &fusebusinessdata.Input{
		BusinessID: "biz-rich",
		Industry:   "landscaping",
		Sources:    normOut.Sources,
	})
	require.NoError(t, err)

	insights := fuseOut.Insights
	assert.Empty(t, insights.MissingData)
	assert.True(t, insights.Confirmed.Emergency)
	assert.Equal(t, "We solve drainage problems other crews walk away from.", insights.Confirmed.UniqueValue)

	qOut, err := p.questions.Execute(ctx, &generatequestions.Input{
		BusinessID: "biz-rich",
		Industry:   "landscaping",
		Insights:   insights,
	})
	require.NoError(t, err)
	assert.True(t, qOut.Complete)
	assert.Empty(t, qOut.Questions)

	selOut, err := p.selection.Execute(ctx, &selecttemplate.Input{
		BusinessID:  "biz-rich",
		Industry:    "landscaping",
		Insights:    insights,
		Competitive: normOut.Sources.SearchResults,
	})
	require.NoError(t, err)

	selection := selOut.Selection
	assert.Equal(t, "specialist-niche", selection.TemplateID)
	assert.Equal(t, models.PositioningSpecialist, selection.Strategy.Positioning)
	assert.Contains(t, selection.Strategy.Differentiators, "Drainage Solutions")

	require.NotEmpty(t, selection.SectionOrder)
	assert.Equal(t, models.SectionHero, selection.SectionOrder[0])
	assert.Equal(t, models.SectionServices, selection.SectionOrder[1])
	assert.Contains(t, selection.SectionOrder, models.SectionEmergency)
	assert.Equal(t, "hero-urgent", selection.SectionVariants[models.SectionHero])
	assert.Equal(t, "gallery-categorized", selection.SectionVariants[models.SectionGallery])

	popOut, err := p.populate.Execute(ctx, &populatecontent.Input{
		BusinessID:  "biz-rich",
		Industry:    "landscaping",
		Selection:   selection,
		Insights:    insights,
		Competitive: normOut.Sources.SearchResults,
		Answers:     normOut.Sources.UserAnswers,
	})
	require.NoError(t, err)
	require.Len(t, popOut.Sections, len(selection.SectionOrder))
	for _, name := range selection.SectionOrder {
		section, ok := popOut.Sections[name]
		require.True(t, ok, "section %q missing from populated output", name)
		assert.Equal(t, selection.SectionVariants[name], section.Variant)
	}

	hero := popOut.Sections[models.SectionHero]
	assert.Equal(t, "Greenline Landscaping", hero.Content["headline"])
	assert.Equal(t, "We solve drainage problems other crews walk away from.", hero.Content["subheadline"])
}

// The persistence tail of the process: the generated site is stored once,
// and recording a new answer round invalidates the cached insights so the
// next fusion recomputes.
func TestPipeline_PersistenceAndAnswerInvalidation(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	normOut, err := p.normalize.Execute(ctx, &normalizesourcedata.Input{
		BusinessID: "biz-rich",
		Payloads:   richLandscapingPayloads(t),
	})
	require.NoError(t, err)

	fuseOut, err := p.fuse.Execute(ctx, &fusebusinessdata.Input{
		BusinessID: "biz-rich",
		Industry:   "landscaping",
		Sources:    normOut.Sources,
	})
	require.NoError(t, err)

	selOut, err := p.selection.Execute(ctx, &selecttemplate.Input{
		BusinessID:  "biz-rich",
		Industry:    "landscaping",
		Insights:    fuseOut.Insights,
		Competitive: normOut.Sources.SearchResults,
	})
	require.NoError(t, err)

	popOut, err := p.populate.Execute(ctx, &populatecontent.Input{
		BusinessID:  "biz-rich",
		Industry:    "landscaping",
		Selection:   selOut.Selection,
		Insights:    fuseOut.Insights,
		Competitive: normOut.Sources.SearchResults,
		Answers:     normOut.Sources.UserAnswers,
	})
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("biz-rich", "req-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO generated_sites`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	saver := savegeneratedsite.NewHandler(savegeneratedsite.LoadConfig(), db, log)
	saveOut, err := saver.Execute(ctx, &savegeneratedsite.Input{
		BusinessID: "biz-rich",
		RequestID:  "req-001",
		Industry:   "landscaping",
		Selection:  selOut.Selection,
		Sections:   popOut.Sections,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saveOut.SiteID)
	assert.Equal(t, "generated", saveOut.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	cacheKey := database.InsightsCacheKey("biz-rich")
	require.NoError(t, mr.Set(cacheKey, "stale"))

	mock.ExpectExec(`INSERT INTO user_answers`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	recorder := recorduseranswers.NewHandler(recorduseranswers.LoadConfig(), db, redisClient, log)
	answer := "Now offering outdoor lighting installs."
	recOut, err := recorder.Execute(ctx, &recorduseranswers.Input{
		BusinessID: "biz-rich",
		Answers:    models.SourceRecord{UniqueValue: &answer},
	})
	require.NoError(t, err)
	assert.True(t, recOut.CacheInvalidated)
	assert.False(t, mr.Exists(cacheKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
