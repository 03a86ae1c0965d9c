// internal/workers/persistence/save-generated-site/config.go
package savegeneratedsite

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
