package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// eventProcessor — зависимость на бизнес-логику,
// которая парсит/валидирует/обрабатывает событие.
type eventProcessor interface {
	ProcessFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — обёртка над kafka.Reader + зависимостями (connector, usecase, logger).
// Reader пересоздаётся при каждом переподключении, поэтому хранится
// фабрика newReader, а не только готовый экземпляр.
type Consumer struct {
	conn        connectionManager
	newReader   func() reader
	service     eventProcessor
	log         ports.Logger
	autoCommit  bool
	pollTimeout time.Duration
	closeOnce   sync.Once

	// reader переназначается горутиной Run при каждом переподключении,
	// а Close читает его из горутины остановки — доступ только под mu.
	mu     sync.Mutex
	reader reader
}

func (c *Consumer) setReader(r reader) {
	c.mu.Lock()
	c.reader = r
	c.mu.Unlock()
}

func (c *Consumer) currentReader() reader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reader
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит
// оффсетов при EnableAutoCommit=false.
func NewConsumer(cfg *ConsumerConfig, conn *Connector, service eventProcessor, log ports.Logger) *Consumer {
	pt := cfg.PollTimeout
	if pt <= 0 {
		pt = 1 * time.Second
	}

	rc := cfg.ReaderConfig()
	return &Consumer{
		conn:        conn,
		newReader:   func() reader { return kafka.NewReader(rc) },
		service:     service,
		log:         log,
		autoCommit:  cfg.EnableAutoCommit,
		pollTimeout: pt,
	}
}

// Run — основной цикл:
// 1) подключаемся к брокеру (ограниченный бюджет попыток внутри Connect);
// 2) читаем сообщение с ограниченным ожиданием (pollTimeout), чтобы
//    пустой топик не мешал реагировать на остановку;
// 3) успешная обработка → CommitMessages;
// 4) невалидные данные → лог и CommitMessages (пропускаем навсегда);
// 5) ошибка обработки → без коммита;
// 6) ошибка чтения → пометить обрыв и переподключиться в начале цикла.
// Возвращает ctx.Err() при штатной остановке и ErrConnectionExhausted,
// если бюджет переподключения исчерпан.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.conn.Connect(ctx); err != nil {
		return err
	}
	c.setReader(c.newReader())

	rc := c.currentReader().Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v auto_commit=%v",
		rc.Topic, rc.GroupID, rc.Brokers, c.autoCommit)

	for {
		// Сигнал остановки проверяется на каждой итерации: и до чтения,
		// и через ограниченное ожидание внутри poll.
		if err := ctx.Err(); err != nil {
			return err
		}

		if c.conn.State() != StateConnected {
			if err := c.reconnect(ctx); err != nil {
				return err
			}
		}

		msg, fetchErr := c.poll(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(fetchErr, context.DeadlineExceeded) {
				// Топик пуст: холостой тик, перепроверяем остановку.
				continue
			}
			// Ошибка брокера/сети: дальше опрашивать нельзя,
			// в начале цикла пойдём на переподключение.
			c.conn.MarkDisconnected(ctx, fetchErr)
			continue
		}

		metrics.EventsConsumed.WithLabelValues(rc.Topic).Inc()

		if shouldCommit := c.handleMessage(ctx, rc.Topic, &msg); shouldCommit {
			c.commitSafely(ctx, &msg)
		}
	}
}

// Close — закрывает reader. Вызывается при остановке приложения,
// возможно параллельно с работающим Run.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		if r := c.currentReader(); r != nil {
			retErr = r.Close()
		}
	})
	return retErr
}
