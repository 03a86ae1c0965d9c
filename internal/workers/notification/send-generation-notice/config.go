// internal/workers/notification/send-generation-notice/config.go
package sendgenerationnotice

import (
	"time"

	"sitegen-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	Enabled     bool
	FromAddress string
	SNSTopicARN string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
		Enabled: true,
	}
}

// FromNotifications overlays the shared notifications section.
func FromNotifications(n config.NotificationConfig) *Config {
	cfg := LoadConfig()
	cfg.Enabled = n.Enabled
	cfg.FromAddress = n.FromAddress
	cfg.SNSTopicARN = n.SNSTopicARN
	return cfg
}
