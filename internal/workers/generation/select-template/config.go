// internal/workers/generation/select-template/config.go
package selecttemplate

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	// SaturationThreshold is the competitor count at or above which the
	// market counts as saturated.
	SaturationThreshold int

	// LowReviewRatio: the business review count is materially below the
	// competitive average when under ratio * average.
	LowReviewRatio float64

	// MinCertsForPremium is the certification count needed to answer a
	// price-focused market with premium positioning.
	MinCertsForPremium int

	MinGalleryPhotos      int
	MinTestimonialReviews int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:               10 * time.Second,
		SaturationThreshold:   10,
		LowReviewRatio:        0.5,
		MinCertsForPremium:    3,
		MinGalleryPhotos:      1,
		MinTestimonialReviews: 1,
	}
}

func FromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.SaturationThreshold > 0 {
		cfg.SaturationThreshold = policy.SaturationThreshold
	}
	if policy.LowReviewRatio > 0 {
		cfg.LowReviewRatio = policy.LowReviewRatio
	}
	if policy.MinCertsForPremium > 0 {
		cfg.MinCertsForPremium = policy.MinCertsForPremium
	}
	if policy.MinGalleryPhotos > 0 {
		cfg.MinGalleryPhotos = policy.MinGalleryPhotos
	}
	if policy.MinTestimonialReviews > 0 {
		cfg.MinTestimonialReviews = policy.MinTestimonialReviews
	}
	return cfg
}
