// internal/workers/generation/populate-content/populator.go
package populatecontent

import (
	"fmt"
	"sort"
	"strings"

	"sitegen-workers/internal/models"
	"sitegen-workers/pkg/catalog"
)

// sectionContext carries everything a section routine may draw on. One
// shared populator core serves every industry; per-industry content comes
// from the catalogue profile, not from per-vertical code.
type sectionContext struct {
	cfg         *Config
	profile     *catalog.IndustryProfile
	insights    *models.DataInsights
	competitive *models.SourceRecord
	selection   *models.TemplateSelection
	keywords    []string
}

type sectionRoutine func(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata)

var sectionRoutines = map[string]sectionRoutine{
	models.SectionHero:         populateHero,
	models.SectionAbout:        populateAbout,
	models.SectionServices:     populateServices,
	models.SectionGallery:      populateGallery,
	models.SectionTestimonials: populateTestimonials,
	models.SectionTrust:        populateTrust,
	models.SectionFAQ:          populateFAQ,
	models.SectionServiceAreas: populateServiceAreas,
	models.SectionCTA:          populateCTA,
	models.SectionContact:      populateContact,
	models.SectionEmergency:    populateEmergency,
}

// populate builds one PopulatedSection per requested section. Sections
// without a routine still get a placeholder entry, so the rendering layer
// can rely on every requested key being present.
func (h *Handler) populate(ctx *sectionContext) map[string]models.PopulatedSection {
	sections := make(map[string]models.PopulatedSection, len(ctx.selection.SectionVariants))
	for name, variant := range ctx.selection.SectionVariants {
		routine, ok := sectionRoutines[name]
		if !ok {
			sections[name] = placeholderSection(name, variant)
			continue
		}
		content, metadata := routine(ctx)
		sections[name] = models.PopulatedSection{
			Variant:  variant,
			Content:  content,
			Metadata: metadata,
		}
	}
	return sections
}

func placeholderSection(name, variant string) models.PopulatedSection {
	return models.PopulatedSection{
		Variant: variant,
		Content: map[string]interface{}{
			"placeholder": true,
			"section":     name,
		},
		Metadata: models.SectionMetadata{
			DataSources: []string{models.SourceDefault},
		},
	}
}

// ==========================
// Section Routines
// ==========================

func populateHero(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed

	headline := ctx.profile.HeadlineFallback
	if confirmed.Name != "" {
		headline = confirmed.Name
	}
	subheadline := ctx.profile.SubheadlineFallback
	if confirmed.UniqueValue != "" {
		subheadline = confirmed.UniqueValue
	}

	content := map[string]interface{}{
		"headline":    headline,
		"subheadline": subheadline,
		"ctaText":     ctx.profile.CTAText,
		"emergency":   confirmed.Emergency,
	}
	if confirmed.Phone != "" {
		content["phone"] = confirmed.Phone
	}
	if len(confirmed.Photos) > 0 {
		content["backgroundPhoto"] = confirmed.Photos[0].URL
	}

	metadata := ctx.metadata("name", "uniqueValue", "phone", "photos")
	metadata.CompetitiveAdvantage = ctx.advantage()
	return content, metadata
}

func populateAbout(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed

	body := ctx.profile.AboutFallback
	if confirmed.Description != "" {
		body = confirmed.Description
	}

	content := map[string]interface{}{
		"title": fmt.Sprintf("About %s", displayName(confirmed, ctx.profile)),
		"body":  body,
	}
	if len(confirmed.Certifications) > 0 {
		content["certifications"] = confirmed.Certifications
	}
	if confirmed.UniqueValue != "" {
		content["uniqueValue"] = confirmed.UniqueValue
	}

	metadata := ctx.metadata("name", "description", "certifications", "uniqueValue")
	metadata.CompetitiveAdvantage = ctx.advantage()
	return content, metadata
}

type serviceItem struct {
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Featured bool   `json:"featured"`
}

func populateServices(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed
	strategy := &ctx.selection.Strategy

	featured := make(map[string]bool, len(strategy.Differentiators))
	for _, diff := range strategy.Differentiators {
		featured[strings.ToLower(diff)] = true
	}

	items := make([]serviceItem, 0, len(confirmed.Services))
	for _, svc := range confirmed.Services {
		items = append(items, serviceItem{
			Name:     svc,
			Icon:     ctx.profile.ServiceIcons[strings.ToLower(svc)],
			Featured: featured[strings.ToLower(svc)],
		})
	}
	// Market-gap services surface first; otherwise confirmed order holds.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Featured && !items[j].Featured
	})

	content := map[string]interface{}{
		"title":    fmt.Sprintf("Our %s Services", ctx.profile.DisplayName),
		"services": items,
	}

	metadata := ctx.metadata("services")
	if strategy.Positioning == models.PositioningSpecialist && len(strategy.Differentiators) > 0 {
		metadata.CompetitiveAdvantage = fmt.Sprintf("Only local provider offering %s", strategy.Differentiators[0])
	}
	return content, metadata
}

func populateGallery(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	photos := arrangePhotos(ctx.insights.Confirmed.Photos, ctx.cfg.MaxGalleryPhotos)

	content := map[string]interface{}{
		"title":      "Our Work",
		"photos":     photos,
		"categories": photoCategories(photos),
	}
	return content, ctx.metadata("photos")
}

func populateTestimonials(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed

	reviews := make([]models.Review, len(confirmed.Reviews))
	copy(reviews, confirmed.Reviews)
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].Rating != reviews[j].Rating {
			return reviews[i].Rating > reviews[j].Rating
		}
		return len(reviews[i].Text) > len(reviews[j].Text)
	})
	if max := ctx.cfg.MaxTestimonials; max > 0 && len(reviews) > max {
		reviews = reviews[:max]
	}

	content := map[string]interface{}{
		"title":   "What Customers Say",
		"reviews": reviews,
	}
	if confirmed.Rating > 0 {
		content["rating"] = confirmed.Rating
		content["reviewCount"] = confirmed.ReviewCount
	}
	return content, ctx.metadata("reviews", "rating", "reviewCount")
}

func populateTrust(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed

	var badges []string
	seen := make(map[string]bool)
	for _, badge := range confirmed.Certifications {
		if key := strings.ToLower(badge); !seen[key] {
			seen[key] = true
			badges = append(badges, badge)
		}
	}
	for _, signal := range ctx.competitive.TrustSignals {
		if key := strings.ToLower(signal); !seen[key] {
			seen[key] = true
			badges = append(badges, signal)
		}
	}

	content := map[string]interface{}{
		"title":  "Why Trust Us",
		"badges": badges,
	}

	metadata := ctx.metadata("certifications")
	if len(ctx.competitive.TrustSignals) > 0 {
		metadata.DataSources = mergeSources(metadata.DataSources, models.SourceSearchResults)
	}
	if ctx.selection.Strategy.Positioning == models.PositioningPremiumQuality {
		metadata.CompetitiveAdvantage = "Certified where competitors compete on price"
	}
	return content, metadata
}

func populateFAQ(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	items := assembleFAQs(
		ctx.competitive.PeopleAlsoAsk,
		ctx.profile.FAQBank,
		ctx.insights.Confirmed.ServiceAreas,
		ctx.profile.DisplayName,
		ctx.cfg.MaxFAQItems,
	)

	content := map[string]interface{}{
		"title": "Frequently Asked Questions",
		"items": items,
	}

	metadata := ctx.metadata("serviceAreas")
	if len(ctx.competitive.PeopleAlsoAsk) > 0 {
		metadata.DataSources = mergeSources(metadata.DataSources, models.SourceSearchResults)
	}
	metadata.DataSources = mergeSources(metadata.DataSources, models.SourceDefault)
	return content, metadata
}

func populateServiceAreas(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	areas := ctx.insights.Confirmed.ServiceAreas
	content := map[string]interface{}{
		"title": "Areas We Serve",
		"areas": areas,
		"intro": fmt.Sprintf("%s proudly serves %d communities in the area.",
			displayName(&ctx.insights.Confirmed, ctx.profile), len(areas)),
	}
	return content, ctx.metadata("serviceAreas")
}

func populateCTA(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	content := map[string]interface{}{
		"text": ctx.profile.CTAText,
	}
	if phone := ctx.insights.Confirmed.Phone; phone != "" {
		content["phone"] = phone
	}
	return content, ctx.metadata("phone")
}

func populateContact(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	confirmed := &ctx.insights.Confirmed
	content := map[string]interface{}{
		"title": "Get In Touch",
	}
	if confirmed.Phone != "" {
		content["phone"] = confirmed.Phone
	}
	if confirmed.Address != "" {
		content["address"] = confirmed.Address
	}
	if confirmed.Hours != "" {
		content["hours"] = confirmed.Hours
	}
	if confirmed.Website != "" {
		content["website"] = confirmed.Website
	}
	return content, ctx.metadata("phone", "address", "hours", "website")
}

func populateEmergency(ctx *sectionContext) (map[string]interface{}, models.SectionMetadata) {
	copyText := ctx.profile.EmergencyCopy
	if copyText == "" {
		copyText = "Emergency service available. Call any time."
	}
	content := map[string]interface{}{
		"copy":      copyText,
		"available": ctx.insights.Confirmed.Emergency,
	}
	if phone := ctx.insights.Confirmed.Phone; phone != "" {
		content["phone"] = phone
	}
	return content, ctx.metadata("emergencyAvailability", "phone")
}

// ==========================
// Metadata Helpers
// ==========================

// sourceOrder fixes the emission order of dataSource entries.
var sourceOrder = []string{
	models.SourceProfile, models.SourcePlaces, models.SourceSearchResults,
	models.SourceUserAnswers, models.SourceInferred, models.SourceDefault,
}

// metadata builds section metadata from the provenance of the named
// fields plus the shared keyword set.
func (ctx *sectionContext) metadata(fields ...string) models.SectionMetadata {
	seen := make(map[string]bool)
	for _, field := range fields {
		for _, src := range ctx.insights.FieldSources[field] {
			seen[src] = true
		}
	}
	var sources []string
	for _, src := range sourceOrder {
		if seen[src] {
			sources = append(sources, src)
		}
	}
	if len(sources) == 0 {
		sources = []string{models.SourceDefault}
	}
	return models.SectionMetadata{
		DataSources: sources,
		SEOKeywords: ctx.keywords,
	}
}

func (ctx *sectionContext) advantage() string {
	if diffs := ctx.selection.Strategy.Differentiators; len(diffs) > 0 {
		return diffs[0]
	}
	return ""
}

func mergeSources(sources []string, extra string) []string {
	for _, s := range sources {
		if s == extra {
			return sources
		}
	}
	merged := append(append([]string{}, sources...), extra)
	sort.SliceStable(merged, func(i, j int) bool {
		return sourceRank(merged[i]) < sourceRank(merged[j])
	})
	return merged
}

func sourceRank(source string) int {
	for i, s := range sourceOrder {
		if s == source {
			return i
		}
	}
	return len(sourceOrder)
}

func displayName(confirmed *models.ConfirmedFields, profile *catalog.IndustryProfile) string {
	if confirmed.Name != "" {
		return confirmed.Name
	}
	return profile.DisplayName
}

// deriveKeywords builds the shared SEO keyword set from confirmed
// services, service areas, and the industry keyword list.
func deriveKeywords(insights *models.DataInsights, profile *catalog.IndustryProfile, max int) []string {
	var keywords []string
	seen := make(map[string]bool)

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, svc := range insights.Confirmed.Services {
		add(svc)
	}
	for _, kw := range profile.Keywords {
		add(kw)
	}
	for i, svc := range insights.Confirmed.Services {
		if i >= 2 {
			break
		}
		for j, area := range insights.Confirmed.ServiceAreas {
			if j >= 2 {
				break
			}
			add(fmt.Sprintf("%s %s", svc, area))
		}
	}

	if max > 0 && len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}
