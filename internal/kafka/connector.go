package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// ConnState — состояние соединения с брокером.
// Единственный писатель — Connector; чтение через atomic.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateFailed
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrConnectionExhausted — бюджет попыток подключения исчерпан.
// Единственная невосстановимая ошибка ядра: процесс обязан завершиться
// с ненулевым кодом.
var ErrConnectionExhausted = errors.New("broker connection attempts exhausted")

// probeFunc — одна попытка проверить доступность брокера и топика.
type probeFunc func(ctx context.Context) error

// connectionManager — контракт Connector для цикла потребления:
// подключение с ограниченным бюджетом попыток и учёт состояния.
type connectionManager interface {
	Connect(ctx context.Context) error
	MarkDisconnected(ctx context.Context, cause error)
	State() ConnState
}

var _ connectionManager = (*Connector)(nil)

// Connector — владелец жизненного цикла соединения: ограниченная серия
// попыток подключения с фиксированной задержкой между ними и учёт
// состояния (RetryState сбрасывается при каждом успехе).
type Connector struct {
	probe      probeFunc
	log        ports.Logger
	maxRetries int
	retryDelay time.Duration

	state atomic.Int32

	// RetryState: живёт только на время серии переподключений.
	attempts    int
	lastFailure time.Time
}

func NewConnector(cfg *ConsumerConfig, log ports.Logger) *Connector {
	mr := cfg.MaxRetries
	if mr <= 0 {
		mr = 1
	}
	c := &Connector{
		probe:      defaultProbe(cfg.Brokers, cfg.Topic),
		log:        log,
		maxRetries: mr,
		retryDelay: cfg.RetryDelay,
	}
	c.state.Store(int32(StateDisconnected))
	return c
}

// Connect — до maxRetries попыток, между ними фиксированная пауза
// retryDelay (прерываемая отменой контекста). Каждая неудачная попытка
// логируется с номером и остатком бюджета — основной операционный
// сигнал. Успех переводит в Connected и обнуляет счётчик попыток;
// исчерпание бюджета — в Failed с ErrConnectionExhausted.
func (c *Connector) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			c.setState(StateDisconnected)
			return err
		}

		metrics.ConnectAttempts.Inc()
		err := c.probe(ctx)
		if err == nil {
			c.attempts = 0
			c.lastFailure = time.Time{}
			c.setState(StateConnected)
			c.log.Infof(ctx, "broker connected (attempt %d/%d)", attempt, c.maxRetries)
			return nil
		}

		c.attempts = attempt
		c.lastFailure = time.Now()
		remaining := c.maxRetries - attempt
		c.log.Warnf(ctx, "connect attempt %d/%d failed: %v (budget left: %d)", attempt, c.maxRetries, err, remaining)

		if remaining == 0 {
			break
		}
		if !c.sleep(ctx, c.retryDelay) {
			c.setState(StateDisconnected)
			return ctx.Err()
		}
	}

	c.setState(StateFailed)
	metrics.ConnectExhausted.Inc()
	return fmt.Errorf("%w after %d attempts", ErrConnectionExhausted, c.maxRetries)
}

// MarkDisconnected — фиксирует обрыв соединения посреди работы.
// Дальше цикл обязан вызвать Connect, а не продолжать опрос.
func (c *Connector) MarkDisconnected(ctx context.Context, cause error) {
	prev := c.State()
	c.setState(StateFailed)
	c.lastFailure = time.Now()
	c.log.Warnf(ctx, "broker connection lost (was %s): %v", prev, cause)
}

func (c *Connector) State() ConnState {
	return ConnState(c.state.Load())
}

func (c *Connector) setState(s ConnState) {
	c.state.Store(int32(s))
}

// sleep — ожидание с учётом отмены контекста.
func (c *Connector) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// defaultProbe — дозвон до первого bootstrap-брокера и чтение списка
// партиций топика: заодно проверяем, что топик существует.
func defaultProbe(brokers []string, topic string) probeFunc {
	return func(ctx context.Context) error {
		if len(brokers) == 0 {
			return errors.New("no brokers configured")
		}
		conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			return fmt.Errorf("dial %s: %w", brokers[0], err)
		}
		defer conn.Close()

		if _, err := conn.ReadPartitions(topic); err != nil {
			return fmt.Errorf("read partitions of %q: %w", topic, err)
		}
		return nil
	}
}
