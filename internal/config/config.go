package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddr  string `envconfig:"SERVER_HOSTNAME_PORT" default:"127.0.0.1:3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Leave empty to keep courses in memory.
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	DBConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`

	HealthCheckResponse string `envconfig:"HEALTH_CHECK_RESPONSE" default:"I'm good. You've already asked me"`
	// StrictStatusCodes answers validation failures with 400 and missing
	// courses with 404 instead of 200.
	StrictStatusCodes  bool     `envconfig:"STRICT_STATUS_CODES" default:"false"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Pub/Sub settings; events are only published when the topic is set.
	GCPProjectID      string `envconfig:"GCP_PROJECT_ID"`
	PubSubCourseTopic string `envconfig:"PUBSUB_COURSE_TOPIC"`
	PubSubEndpoint    string `envconfig:"PUBSUB_ENDPOINT"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesDatabase reports whether courses are kept in Postgres.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// PublishesEvents reports whether course events go to Pub/Sub.
func (c *Config) PublishesEvents() bool {
	return c.PubSubCourseTopic != ""
}
