// internal/models/selection.go
package models

// Market positioning values produced by the strategy decision table.
const (
	PositioningPremiumQuality = "premium-quality"
	PositioningValueFocused   = "value-focused"
	PositioningSpecialist     = "specialist"
	PositioningBalanced       = "balanced"
)

// Emphasis tags attached to a strategy.
const (
	EmphasisCertifications = "certifications"
	EmphasisQualityWork    = "quality-work"
	EmphasisPricing        = "transparent-pricing"
	EmphasisNicheServices  = "niche-services"
	EmphasisCredentials    = "credentials"
	EmphasisPortfolio      = "portfolio"
	EmphasisGuarantees     = "guarantees"
	EmphasisReviews        = "reviews"
	EmphasisEmergency      = "emergency-availability"
)

// Section names in the versioned section vocabulary shared with the
// rendering layer.
const (
	SectionHero         = "hero"
	SectionAbout        = "about"
	SectionServices     = "services"
	SectionGallery      = "gallery"
	SectionTestimonials = "testimonials"
	SectionTrust        = "trust"
	SectionFAQ          = "faq"
	SectionServiceAreas = "serviceAreas"
	SectionCTA          = "cta"
	SectionContact      = "contact"
	SectionEmergency    = "emergency"
)

// CompetitiveStrategy is the derived market narrative driving template and
// content choices. Pure function of insights + competitive data.
type CompetitiveStrategy struct {
	Positioning     string   `json:"positioning"`
	Emphasis        []string `json:"emphasis"`
	Differentiators []string `json:"differentiators"`
}

// HasEmphasis reports whether a tag is present in the emphasis list.
func (s *CompetitiveStrategy) HasEmphasis(tag string) bool {
	for _, e := range s.Emphasis {
		if e == tag {
			return true
		}
	}
	return false
}

// TemplateSelection is the full layout decision for one site.
type TemplateSelection struct {
	TemplateID      string              `json:"templateId"`
	SectionVariants map[string]string   `json:"sectionVariants"`
	SectionOrder    []string            `json:"sectionOrder"`
	Reasoning       map[string]string   `json:"reasoning"`
	Strategy        CompetitiveStrategy `json:"strategy"`
}
