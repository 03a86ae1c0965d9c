// internal/workers/persistence/record-user-answers/config.go
package recorduseranswers

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
