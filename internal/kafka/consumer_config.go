package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// autoCommitInterval — период автокоммита брокерского клиента
// (используется только при EnableAutoCommit).
const autoCommitInterval = 5 * time.Second

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// AutoOffsetReset: earliest|latest (неизвестное значение → latest).
	AutoOffsetReset string

	// EnableAutoCommit: true — оффсеты двигает таймер клиента независимо
	// от исхода обработки; false — ручной коммит после успешной обработки.
	EnableAutoCommit bool

	// Бюджет подключения: до MaxRetries попыток с фиксированной
	// задержкой RetryDelay между ними.
	MaxRetries int
	RetryDelay time.Duration

	// PollTimeout — ограниченное ожидание одного чтения, чтобы цикл
	// перепроверял сигнал остановки даже на пустом топике.
	PollTimeout time.Duration
}

func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers: c.Brokers,
		GroupID: c.GroupID,
		Topic:   c.Topic,
	}

	switch strings.ToLower(strings.TrimSpace(c.AutoOffsetReset)) {
	case "earliest":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	if c.EnableAutoCommit {
		rc.CommitInterval = autoCommitInterval
	} else {
		rc.CommitInterval = 0
	}

	return rc
}
