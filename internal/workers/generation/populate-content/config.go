// internal/workers/generation/populate-content/config.go
package populatecontent

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	MaxFAQItems      int
	MaxGalleryPhotos int
	MaxTestimonials  int
	MaxSEOKeywords   int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		MaxFAQItems:      8,
		MaxGalleryPhotos: 12,
		MaxTestimonials:  5,
		MaxSEOKeywords:   10,
	}
}

func FromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.MaxFAQItems > 0 {
		cfg.MaxFAQItems = policy.MaxFAQItems
	}
	return cfg
}
