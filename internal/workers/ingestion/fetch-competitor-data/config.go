// internal/workers/ingestion/fetch-competitor-data/config.go
package fetchcompetitordata

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	// Index is the Elasticsearch index of crawled competitor listings.
	Index string

	// MaxCompetitors caps how many hits feed the search-results record.
	MaxCompetitors int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        15 * time.Second,
		Index:          "competitor-listings",
		MaxCompetitors: 20,
	}
}

// FromElasticsearch overlays the shared elasticsearch settings.
func FromElasticsearch(es config.ElasticsearchConfig) *Config {
	cfg := LoadConfig()
	if es.CompetitorIndex != "" {
		cfg.Index = es.CompetitorIndex
	}
	return cfg
}
