package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// Допустимые значения перечислимых параметров.
const (
	OffsetEarliest = "earliest"
	OffsetLatest   = "latest"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Kafka struct {
	Brokers []string `default:"localhost:9092" envconfig:"BROKERS"`
	Topic   string   `default:"user-activity-events" envconfig:"TOPIC"`
	GroupID string   `default:"" envconfig:"GROUP_ID"`
}

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"activity-consumer" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Config — конфигурация процесса. Неизменяема после Load.
// Имена переменных окружения зафиксированы контрактом деплоя:
// KAFKA_BROKERS, KAFKA_TOPIC, KAFKA_GROUP_ID, AUTO_OFFSET_RESET,
// ENABLE_AUTO_COMMIT, MAX_RETRIES, RETRY_DELAY, ENVIRONMENT.
type Config struct {
	Kafka   Kafka
	HTTP    HTTP
	Tracing Tracing

	AutoOffsetReset  string        `default:"latest" envconfig:"AUTO_OFFSET_RESET"`
	EnableAutoCommit bool          `default:"true" envconfig:"ENABLE_AUTO_COMMIT"`
	MaxRetries       int           `default:"5" envconfig:"MAX_RETRIES"`
	RetryDelay       time.Duration `default:"5s" envconfig:"RETRY_DELAY"`
	PollTimeout      time.Duration `default:"1s" envconfig:"POLL_TIMEOUT"`
	Environment      string        `default:"development" envconfig:"ENVIRONMENT"`
	RecentCapacity   int           `default:"100" envconfig:"RECENT_CAPACITY"`
}

// Load — читает конфигурацию из окружения и валидирует её.
// Пустой KAFKA_GROUP_ID заменяется уникальной группой на запуск —
// удобно для разового чтения топика без наследования чужих оффсетов.
func Load() (Config, error) {
	var c Config

	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}

	c.AutoOffsetReset = strings.ToLower(strings.TrimSpace(c.AutoOffsetReset))
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))

	if err := c.validate(); err != nil {
		return Config{}, err
	}

	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "activity-consumer-" + uuid.NewString()
	}

	return c, nil
}

func (c *Config) validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: KAFKA_BROKERS must not be empty")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("config: KAFKA_TOPIC must not be empty")
	}
	if c.AutoOffsetReset != OffsetEarliest && c.AutoOffsetReset != OffsetLatest {
		return fmt.Errorf("config: AUTO_OFFSET_RESET must be %q or %q, got %q", OffsetEarliest, OffsetLatest, c.AutoOffsetReset)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("config: MAX_RETRIES must be >= 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("config: RETRY_DELAY must be >= 0, got %s", c.RetryDelay)
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("config: POLL_TIMEOUT must be > 0, got %s", c.PollTimeout)
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("config: ENVIRONMENT must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}
	if c.RecentCapacity < 0 {
		return fmt.Errorf("config: RECENT_CAPACITY must be >= 0, got %d", c.RecentCapacity)
	}
	return nil
}
