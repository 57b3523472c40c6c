package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
	"github.com/Gunvolt24/activity-consumer/internal/ports"
)

// Проверка, что EventValidator удовлетворяет порту EventValidator.
var _ ports.EventValidator = (*EventValidator)(nil)

// ErrInvalidEvent — базовая (sentinel error) ошибка валидации конверта.
// Цикл потребления по ней отличает «ядовитое» сообщение от сбоя обработки.
var (
	ErrInvalidEvent = errors.New("event validation failed")

	// ErrMalformed — payload не декодируется вовсе.
	ErrMalformed = fmt.Errorf("%w: malformed payload", ErrInvalidEvent)

	// ErrMissingField — отсутствует одно из обязательных полей.
	ErrMissingField = fmt.Errorf("%w: missing required field", ErrInvalidEvent)
)

// EventValidator — разбор и проверка конверта события.
type EventValidator struct{}

// NewEventValidator — конструктор EventValidator.
func NewEventValidator() *EventValidator { return &EventValidator{} }

// Parse — декодирует сырой payload в EnrichedEvent и проверяет обязательные поля.
// Незнакомые верхнеуровневые ключи игнорируются, event_data и client_info
// пропускаются как есть — конверт обязан переживать расширение схемы продюсером.
func (v *EventValidator) Parse(ctx context.Context, raw []byte) (*domain.EnrichedEvent, error) {
	var event domain.EnrichedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := v.Validate(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Validate — проверяет обязательные поля конверта:
// event_id, event_type, timestamp, user_id.
func (v *EventValidator) Validate(_ context.Context, event *domain.EnrichedEvent) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if event.EventID == "" {
		return fmt.Errorf("%w: event_id", ErrMissingField)
	}
	if event.EventType == "" {
		return fmt.Errorf("%w: event_type", ErrMissingField)
	}
	if event.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp", ErrMissingField)
	}
	if event.UserID == "" {
		return fmt.Errorf("%w: user_id", ErrMissingField)
	}
	return nil
}
