package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Event bus: redis,nats,kafka,ws
	EventBus     []string `env:"EVENT_BUS" envDefault:"redis,ws"`
	NATSURL      string   `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"safety-events"`

	// Consensus policy
	ConsensusMinVotes          int     `env:"CONSENSUS_MIN_VOTES" envDefault:"3"`
	ConsensusPositiveThreshold float64 `env:"CONSENSUS_POSITIVE_THRESHOLD" envDefault:"0.5"`
	ConsensusNegativeThreshold float64 `env:"CONSENSUS_NEGATIVE_THRESHOLD" envDefault:"-0.5"`

	// Scoring / aggregation
	DecayHalfLifeDays    float64       `env:"DECAY_HALF_LIFE_DAYS" envDefault:"7"`
	RebalanceInterval    time.Duration `env:"REBALANCE_INTERVAL" envDefault:"5m"`
	RebalanceDebounce    time.Duration `env:"REBALANCE_DEBOUNCE" envDefault:"10s"`
	RebuildSchedule      string        `env:"REBUILD_SCHEDULE" envDefault:"0 3 * * *"`
	AggregationWorkers   int           `env:"AGGREGATION_WORKERS" envDefault:"4"`
	AggregationQueueSize int           `env:"AGGREGATION_QUEUE_SIZE" envDefault:"256"`
	NeighborhoodsGeoJSON string        `env:"NEIGHBORHOODS_GEOJSON"`

	// News reconciliation
	ReconcileWindow        time.Duration `env:"RECONCILE_WINDOW" envDefault:"168h"`
	ReconcileRadiusMeters  float64       `env:"RECONCILE_RADIUS_METERS" envDefault:"200"`
	NewsReporterReputation int           `env:"NEWS_REPORTER_REPUTATION" envDefault:"100"`
	NewsSchedule           string        `env:"NEWS_SCHEDULE" envDefault:"*/15 * * * *"`
	NewsFeeds              []string      `env:"NEWS_FEEDS"`
	NewsFetchTimeout       time.Duration `env:"NEWS_FETCH_TIMEOUT" envDefault:"20s"`

	// Geocoder / classifier
	GeocoderTimeout   time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`
	GeocoderRate      float64       `env:"GEOCODER_RATE" envDefault:"1"`
	GeocoderCacheSize int           `env:"GEOCODER_CACHE_SIZE" envDefault:"1000"`
	GoogleMapsAPIKey  string        `env:"GOOGLE_MAPS_API_KEY"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"20s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),

		EventBus:     getEnvAsList("EVENT_BUS", []string{"redis", "ws"}),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		KafkaBrokers: getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "safety-events"),

		ConsensusMinVotes:          getEnvAsInt("CONSENSUS_MIN_VOTES", 3),
		ConsensusPositiveThreshold: getEnvAsFloat("CONSENSUS_POSITIVE_THRESHOLD", 0.5),
		ConsensusNegativeThreshold: getEnvAsFloat("CONSENSUS_NEGATIVE_THRESHOLD", -0.5),

		DecayHalfLifeDays:    getEnvAsFloat("DECAY_HALF_LIFE_DAYS", 7),
		RebalanceInterval:    getEnvAsDuration("REBALANCE_INTERVAL", 5*time.Minute),
		RebalanceDebounce:    getEnvAsDuration("REBALANCE_DEBOUNCE", 10*time.Second),
		RebuildSchedule:      getEnv("REBUILD_SCHEDULE", "0 3 * * *"),
		AggregationWorkers:   getEnvAsInt("AGGREGATION_WORKERS", 4),
		AggregationQueueSize: getEnvAsInt("AGGREGATION_QUEUE_SIZE", 256),
		NeighborhoodsGeoJSON: os.Getenv("NEIGHBORHOODS_GEOJSON"),

		ReconcileWindow:        getEnvAsDuration("RECONCILE_WINDOW", 7*24*time.Hour),
		ReconcileRadiusMeters:  getEnvAsFloat("RECONCILE_RADIUS_METERS", 200),
		NewsReporterReputation: getEnvAsInt("NEWS_REPORTER_REPUTATION", 100),
		NewsSchedule:           getEnv("NEWS_SCHEDULE", "*/15 * * * *"),
		NewsFeeds:              getEnvAsList("NEWS_FEEDS", nil),
		NewsFetchTimeout:       getEnvAsDuration("NEWS_FETCH_TIMEOUT", 20*time.Second),

		GeocoderTimeout:   getEnvAsDuration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocoderRate:      getEnvAsFloat("GEOCODER_RATE", 1),
		GeocoderCacheSize: getEnvAsInt("GEOCODER_CACHE_SIZE", 1000),
		GoogleMapsAPIKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ClassifierTimeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 20*time.Second),

		APIKeys: getEnvAsList("API_KEYS", nil),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность политик
func (c *Config) Validate() error {
	if c.ConsensusMinVotes < 1 {
		return errors.New("CONSENSUS_MIN_VOTES must be at least 1")
	}
	if c.ConsensusPositiveThreshold <= 0 || c.ConsensusPositiveThreshold > 1 {
		return errors.New("CONSENSUS_POSITIVE_THRESHOLD must be in (0,1]")
	}
	if c.ConsensusNegativeThreshold >= 0 || c.ConsensusNegativeThreshold < -1 {
		return errors.New("CONSENSUS_NEGATIVE_THRESHOLD must be in [-1,0)")
	}
	if c.DecayHalfLifeDays <= 0 {
		return errors.New("DECAY_HALF_LIFE_DAYS must be positive")
	}
	if c.ReconcileRadiusMeters <= 0 || c.ReconcileWindow <= 0 {
		return errors.New("RECONCILE_RADIUS_METERS and RECONCILE_WINDOW must be positive")
	}
	if c.AggregationWorkers < 1 || c.AggregationQueueSize < 1 {
		return errors.New("AGGREGATION_WORKERS and AGGREGATION_QUEUE_SIZE must be positive")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
