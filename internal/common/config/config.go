// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Policy        PolicyConfig            `mapstructure:"policy"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`

	// CompetitorIndex holds the crawled competitor listings queried by the
	// fetch-competitor-data worker.
	CompetitorIndex string `mapstructure:"competitor_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// CatalogConfig points at an optional catalogue override file; when Path is
// empty the built-in catalogue is used.
type CatalogConfig struct {
	Path   string `mapstructure:"path"`
	Strict bool   `mapstructure:"strict"`
}

// PolicyConfig exposes the engine's named policy parameters. Every
// threshold the fusion and selection logic branches on lives here rather
// than as a literal inside the algorithms.
type PolicyConfig struct {
	// CorroborationBonus is added to overall quality per fact confirmed by
	// two or more independent sources (result capped at 1.0).
	CorroborationBonus float64 `mapstructure:"corroboration_bonus"`

	// SaturationThreshold is the competitor count at or above which a
	// market counts as saturated (specialist positioning).
	SaturationThreshold int `mapstructure:"saturation_threshold"`

	// LowReviewRatio: the business review count is "materially below" the
	// competitive average when below ratio * average.
	LowReviewRatio float64 `mapstructure:"low_review_ratio"`

	// MinCertsForPremium is the certification count needed to answer a
	// price-focused market with premium-quality positioning.
	MinCertsForPremium int `mapstructure:"min_certs_for_premium"`

	MaxQuestions int `mapstructure:"max_questions"`
	MaxFAQItems  int `mapstructure:"max_faq_items"`

	// Section inclusion thresholds.
	MinGalleryPhotos      int `mapstructure:"min_gallery_photos"`
	MinTestimonialReviews int `mapstructure:"min_testimonial_reviews"`

	// InsightsCacheTTL bounds the redis cache of fusion results, seconds.
	InsightsCacheTTL int `mapstructure:"insights_cache_ttl"`
}

type NotificationConfig struct {
	AWSRegion   string `mapstructure:"aws_region"`
	FromAddress string `mapstructure:"from_address"`
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
