// internal/workers/generation/select-template/variants.go
package selecttemplate

import "sitegen-workers/internal/models"

// selectionFacts is the data-richness snapshot the variant tables key on.
type selectionFacts struct {
	photoCount    int
	labeledPhotos int
	serviceCount  int
	reviewCount   int
	certCount     int
	trustSignals  int
	areaCount     int
	rating        float64
	emergency     bool
	positioning   string
	strategy      *models.CompetitiveStrategy
}

func deriveFacts(insights *models.DataInsights, competitive *models.SourceRecord, strategy *models.CompetitiveStrategy) selectionFacts {
	labeled := 0
	for _, photo := range insights.Confirmed.Photos {
		if photo.Context != "" {
			labeled++
		}
	}
	reviewCount := len(insights.Confirmed.Reviews)
	if insights.Confirmed.ReviewCount > reviewCount {
		reviewCount = insights.Confirmed.ReviewCount
	}
	return selectionFacts{
		photoCount:    len(insights.Confirmed.Photos),
		labeledPhotos: labeled,
		serviceCount:  len(insights.Confirmed.Services),
		reviewCount:   reviewCount,
		certCount:     len(insights.Confirmed.Certifications),
		trustSignals:  len(competitive.TrustSignals),
		areaCount:     len(insights.Confirmed.ServiceAreas),
		rating:        insights.Confirmed.Rating,
		emergency:     insights.Confirmed.Emergency,
		positioning:   strategy.Positioning,
		strategy:      strategy,
	}
}

// variantRule is one row of a per-section variant table. A nil match is
// the structural default branch; every table ends with one, so variant
// selection always produces a value.
type variantRule struct {
	match   func(f *selectionFacts) bool
	variant string
	reason  string
}

var sectionVariantTables = map[string][]variantRule{
	models.SectionHero: {
		{func(f *selectionFacts) bool { return f.emergency }, "hero-urgent", "emergency availability confirmed"},
		{func(f *selectionFacts) bool { return f.photoCount >= 3 }, "hero-photo", "photo-rich data"},
		{nil, "hero-standard", "default"},
	},
	models.SectionAbout: {
		{func(f *selectionFacts) bool { return f.positioning == models.PositioningPremiumQuality }, "about-credentials", "premium positioning leads with credentials"},
		{nil, "about-standard", "default"},
	},
	models.SectionServices: {
		{func(f *selectionFacts) bool { return f.positioning == models.PositioningSpecialist }, "services-specialist", "specialist positioning highlights niche services"},
		{func(f *selectionFacts) bool { return f.serviceCount >= 6 }, "services-icon-grid", "large service catalogue"},
		{nil, "services-cards", "default"},
	},
	models.SectionGallery: {
		{func(f *selectionFacts) bool { return f.labeledPhotos > 0 }, "gallery-categorized", "labeled photos enable category grouping"},
		{nil, "gallery-grid", "default"},
	},
	models.SectionTestimonials: {
		{func(f *selectionFacts) bool { return f.rating >= 4.5 && f.reviewCount >= 10 }, "testimonials-featured", "strong rating with review depth"},
		{nil, "testimonials-list", "default"},
	},
	models.SectionTrust: {
		{func(f *selectionFacts) bool { return f.certCount >= 3 }, "trust-badges", "multiple certifications"},
		{nil, "trust-simple", "default"},
	},
	models.SectionFAQ: {
		{nil, "faq-accordion", "default"},
	},
	models.SectionServiceAreas: {
		{func(f *selectionFacts) bool { return f.areaCount >= 6 }, "areas-columns", "wide coverage list"},
		{nil, "areas-list", "default"},
	},
	models.SectionCTA: {
		{func(f *selectionFacts) bool { return f.positioning == models.PositioningValueFocused }, "cta-price-forward", "value positioning quotes pricing up front"},
		{nil, "cta-quote", "default"},
	},
	models.SectionContact: {
		{nil, "contact-standard", "default"},
	},
	models.SectionEmergency: {
		{nil, "emergency-banner", "default"},
	},
}

// templateRule rows pick the base template id.
var templateTable = []variantRule{
	{func(f *selectionFacts) bool { return f.positioning == models.PositioningPremiumQuality }, "premium-showcase", "premium positioning"},
	{func(f *selectionFacts) bool { return f.positioning == models.PositioningSpecialist }, "specialist-niche", "specialist positioning"},
	{func(f *selectionFacts) bool { return f.positioning == models.PositioningValueFocused }, "value-clear", "value positioning"},
	{func(f *selectionFacts) bool { return f.photoCount >= 6 }, "visual-portfolio", "photo-rich balanced site"},
	{nil, "classic-local", "default"},
}

func evalVariantTable(rules []variantRule, facts *selectionFacts) (string, string) {
	for _, rule := range rules {
		if rule.match == nil || rule.match(facts) {
			return rule.variant, rule.reason
		}
	}
	// Unreachable while every table ends with a default row.
	return "", ""
}

// includedSections applies the minimum data thresholds. Hero and contact
// are unconditional.
func (h *Handler) includedSections(facts *selectionFacts) []string {
	sections := []string{models.SectionHero, models.SectionAbout}
	if facts.serviceCount > 0 {
		sections = append(sections, models.SectionServices)
	}
	if facts.photoCount >= h.config.MinGalleryPhotos {
		sections = append(sections, models.SectionGallery)
	}
	if facts.reviewCount >= h.config.MinTestimonialReviews {
		sections = append(sections, models.SectionTestimonials)
	}
	if facts.certCount > 0 || facts.trustSignals > 0 {
		sections = append(sections, models.SectionTrust)
	}
	sections = append(sections, models.SectionFAQ)
	if facts.areaCount > 0 {
		sections = append(sections, models.SectionServiceAreas)
	}
	if facts.emergency {
		sections = append(sections, models.SectionEmergency)
	}
	sections = append(sections, models.SectionCTA, models.SectionContact)
	return sections
}

// Strategy-keyed section priority lists. Sections not covered by the
// active list fall back to defaultSectionOrder.
var sectionOrderByPositioning = map[string][]string{
	models.PositioningSpecialist: {
		models.SectionServices, models.SectionAbout, models.SectionTrust,
		models.SectionGallery, models.SectionTestimonials,
	},
	models.PositioningPremiumQuality: {
		models.SectionTrust, models.SectionAbout, models.SectionServices,
		models.SectionGallery, models.SectionTestimonials,
	},
	models.PositioningValueFocused: {
		models.SectionServices, models.SectionTestimonials, models.SectionAbout,
	},
}

var defaultSectionOrder = []string{
	models.SectionAbout, models.SectionServices, models.SectionGallery,
	models.SectionTestimonials, models.SectionTrust, models.SectionFAQ,
	models.SectionServiceAreas, models.SectionEmergency, models.SectionCTA,
	models.SectionContact,
}

// orderSections produces a total order over exactly the included sections:
// hero first, then the strategy's priority list, then the default order
// for everything else. A portfolio emphasis pulls the gallery directly
// behind the hero.
func orderSections(included []string, strategy *models.CompetitiveStrategy) []string {
	inSet := make(map[string]bool, len(included))
	for _, s := range included {
		inSet[s] = true
	}

	order := []string{models.SectionHero}
	placed := map[string]bool{models.SectionHero: true}

	if strategy.HasEmphasis(models.EmphasisPortfolio) && inSet[models.SectionGallery] {
		order = append(order, models.SectionGallery)
		placed[models.SectionGallery] = true
	}
	for _, s := range sectionOrderByPositioning[strategy.Positioning] {
		if inSet[s] && !placed[s] {
			order = append(order, s)
			placed[s] = true
		}
	}
	for _, s := range defaultSectionOrder {
		if inSet[s] && !placed[s] {
			order = append(order, s)
			placed[s] = true
		}
	}
	// Anything outside the known vocabulary still gets a slot.
	for _, s := range included {
		if !placed[s] {
			order = append(order, s)
			placed[s] = true
		}
	}
	return order
}
