// internal/workers/generation/generate-questions/config.go
package generatequestions

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	// MaxQuestions caps the emitted set; lowest-priority templates are
	// dropped first.
	MaxQuestions int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		MaxQuestions: 6,
	}
}

func FromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.MaxQuestions > 0 {
		cfg.MaxQuestions = policy.MaxQuestions
	}
	return cfg
}
