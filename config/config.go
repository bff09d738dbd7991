package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port              string
	Env               string
	MongoURL          string
	MongoDB           string
	RedisURL          string
	RazorpayKeyID     string
	RazorpayKeySecret string
	GatewayTimeout    time.Duration // bound on the payment-gateway call
	KafkaBrokers      string
	KafkaOrderTopic   string
	OrderAlertTopic   string // SNS topic ARN for orphaned-intent alerts
	IdempotencyTTL    time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDB:           getEnv("MONGO_DB", "parichay"),
		RedisURL:          getEnv("REDIS_URL", "redis://redis:6379"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		GatewayTimeout:    getDurationEnv("GATEWAY_TIMEOUT", 10*time.Second),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaOrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "order.created"),
		OrderAlertTopic:   os.Getenv("ORDER_ALERT_SNS_TOPIC_ARN"),
		IdempotencyTTL:    getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
	}

	if cfg.MongoURL == "" || cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
