package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/activity-consumer/pkg/metrics"
	"github.com/Gunvolt24/activity-consumer/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// handleMessage обрабатывает одно сообщение и определяет, нужно ли коммитить оффсет.
// Обработка намеренно без таймаута: медленное сообщение должно завершиться,
// а не тихо прерваться на полпути.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	start := time.Now()
	err := c.service.ProcessFromMessage(ctx, msg.Value)

	switch {
	case err == nil:
		metrics.EventsProcessed.WithLabelValues(topic).Inc()
		metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
		return true
	case errors.Is(err, validate.ErrInvalidEvent):
		// Невалидные данные: логируем и коммитим, чтобы «ядовитое»
		// сообщение не блокировало партицию.
		metrics.EventsSkipped.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid event offset=%d: %v (skipped)", msg.Offset, err)
		return true
	default:
		// Ошибка обработки: этот оффсет не коммитим, идём к следующему
		// сообщению. Гарантия слабая: коммит любого более позднего
		// оффсета неявно перешагнёт сбойное сообщение, так что повторная
		// доставка случится только при рестарте/ребалансе ДО такого
		// коммита. При автокоммите оффсет уедет вперёд и по таймеру
		// клиента.
		metrics.EventsFailed.WithLabelValues(topic).Inc()
		c.log.Errorf(ctx, "process failed offset=%d: %v (offset not committed)", msg.Offset, err)
		return false
	}
}

// commitSafely пытается закоммитить оффсет и логирует ошибку.
// При автокоммите CommitMessages лишь ставит оффсет в очередь —
// на брокер его отправит таймер клиента.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.currentReader().CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// poll — одно чтение с ограниченным ожиданием: если за pollTimeout
// сообщений нет, FetchMessage вернёт context.DeadlineExceeded и цикл
// сможет перепроверить сигнал остановки.
func (c *Consumer) poll(ctx context.Context) (kafka.Message, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()
	return c.currentReader().FetchMessage(pollCtx)
}

// reconnect — закрыть старый reader, восстановить соединение в рамках
// бюджета попыток и собрать новый reader. Ошибка Connect (включая
// ErrConnectionExhausted) отдаётся наверх как причина остановки.
func (c *Consumer) reconnect(ctx context.Context) error {
	if r := c.currentReader(); r != nil {
		if err := r.Close(); err != nil {
			c.log.Warnf(ctx, "reader close before reconnect: %v", err)
		}
	}
	if err := c.conn.Connect(ctx); err != nil {
		return err
	}
	c.setReader(c.newReader())
	return nil
}
