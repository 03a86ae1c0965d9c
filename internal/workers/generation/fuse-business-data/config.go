// internal/workers/generation/fuse-business-data/config.go
package fusebusinessdata

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration

	// CorroborationBonus is added to overall quality per fact confirmed by
	// two or more independent sources.
	CorroborationBonus float64

	// MinGalleryPhotos is the photo count below which "photos" is reported
	// as a missing data point.
	MinGalleryPhotos int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		CacheTTL:           10 * time.Minute,
		CorroborationBonus: 0.05,
		MinGalleryPhotos:   1,
	}
}

// FromPolicy builds a worker config from the shared policy section.
func FromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.CorroborationBonus > 0 {
		cfg.CorroborationBonus = policy.CorroborationBonus
	}
	if policy.MinGalleryPhotos > 0 {
		cfg.MinGalleryPhotos = policy.MinGalleryPhotos
	}
	if policy.InsightsCacheTTL > 0 {
		cfg.CacheTTL = time.Duration(policy.InsightsCacheTTL) * time.Second
	}
	return cfg
}
