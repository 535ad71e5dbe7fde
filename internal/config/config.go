package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	RedisURL            string `env:"REDIS_URL,required"`
	TelegramAPIBaseURL  string `env:"TELEGRAM_API_BASE_URL" envDefault:"https://api.telegram.org"`
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN,required"`
	ProcessingServerURL string `env:"PROCESSING_SERVER_URL" envDefault:"http://localhost:8000/classify"`
	RAGServiceURL       string `env:"RAG_SERVICE_URL" envDefault:"http://localhost:8000"`
	SessionTTLSeconds   int    `env:"SESSION_TTL_SECONDS" envDefault:"120"`
	ResetDelaySeconds   int    `env:"RESET_DELAY_SECONDS" envDefault:"2"`
	TempDir             string `env:"TEMP_DIR" envDefault:"temp"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

// SessionTTL is the sliding expiration applied on every session write. It is
// deliberately short: it bounds how long an abandoned conversation is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// ResetDelay separates the case-created summary from the start-a-new-case
// prompt after a successful submission.
func (c *Config) ResetDelay() time.Duration {
	return time.Duration(c.ResetDelaySeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
