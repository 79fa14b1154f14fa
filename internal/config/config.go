package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all gateway settings. Values come from the environment;
// a .env file in the working directory is loaded first when present.
type Config struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	RedisAddr  string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisQueue string `env:"REDIS_QUEUE" envDefault:"video_processing_jobs"`

	AWSRegion string `env:"AWS_REGION" envDefault:"ap-northeast-2"`
	S3Bucket  string `env:"AWS_S3_BUCKET" envDefault:"videos"`

	KieAPIKey  string `env:"KIE_API_KEY"`
	KieBaseURL string `env:"KIE_BASE_URL"`

	JWTSecret string `env:"JWT_SECRET_KEY" envDefault:"change-me"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaAuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"video-audit-events"`

	OutboxInterval  time.Duration `env:"OUTBOX_INTERVAL" envDefault:"5s"`
	OutboxBatchSize int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
