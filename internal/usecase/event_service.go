package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/ctxmeta"
)

// EventService — прикладная логика обработки событий (без знаний о транспорте).
type EventService struct {
	validator ports.EventValidator // разбор и проверка конверта
	handler   ports.EventHandler   // бизнес-обработка валидного события
	recent    ports.RecentEvents   // буфер последних обработанных
	log       ports.Logger
}

// NewEventService — DI-конструктор.
func NewEventService(
	validator ports.EventValidator,
	handler ports.EventHandler,
	recent ports.RecentEvents,
	log ports.Logger,
) *EventService {
	return &EventService{
		validator: validator,
		handler:   handler,
		recent:    recent,
		log:       log,
	}
}

// ProcessFromMessage — обработать событие, пришедшее из Kafka (raw JSON).
// Шаги:
//  1. разбор и проверка конверта (Parse вернёт ошибку с
//     validate.ErrInvalidEvent внутри — и на битом JSON, и на
//     отсутствующих обязательных полях);
//  2. event_id/request_id в контекст — чтобы логи обработчика были связаны;
//  3. вызов обработчика; его ошибка — сбой обработки, не валидации;
//  4. метки времени обработки и запись в буфер последних событий.
func (s *EventService) ProcessFromMessage(ctx context.Context, raw []byte) error {
	received := time.Now().UTC()

	event, err := s.validator.Parse(ctx, raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid event: %v", err)
		return err
	}

	ctx = ctxmeta.WithEventID(ctx, event.EventID)
	ctx = ctxmeta.WithRequestID(ctx, event.RequestID)

	event.ProcessingInfo.ReceivedAt = received
	if err := s.handler.Handle(ctx, event); err != nil {
		s.log.Errorf(ctx, "handler failed event_id=%s err=%v", event.EventID, err)
		return fmt.Errorf("handle event %s: %w", event.EventID, err)
	}

	done := time.Now().UTC()
	event.ProcessingInfo.ProcessedAt = done
	event.ProcessingInfo.ProcessingMS = done.Sub(received).Milliseconds()
	s.recent.Add(ctx, event)

	s.log.Infof(ctx, "event processed id=%s type=%s user=%s took=%s",
		event.EventID, event.EventType, event.UserID, done.Sub(received))
	return nil
}

// RecentEvents — до limit последних обработанных событий, новые первыми.
func (s *EventService) RecentEvents(ctx context.Context, limit int) []*domain.EnrichedEvent {
	return s.recent.List(ctx, limit)
}
