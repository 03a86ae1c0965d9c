// internal/workers/ingestion/normalize-source-data/config.go
package normalizesourcedata

import "time"

type Config struct {
	Timeout time.Duration

	// MaxStripPasses bounds the validate-strip-revalidate loop so a
	// pathological payload cannot spin the worker.
	MaxStripPasses int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        10 * time.Second,
		MaxStripPasses: 5,
	}
}
