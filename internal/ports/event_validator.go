package ports

import (
	"context"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
)

// EventValidator — разбор и проверка конверта события.
type EventValidator interface {
	// Parse — декодирует сырой payload в EnrichedEvent.
	// Возвращает validate.ErrMalformed / validate.ErrMissingField (обе
	// оборачивают validate.ErrInvalidEvent) при невалидном конверте.
	Parse(ctx context.Context, raw []byte) (*domain.EnrichedEvent, error)

	// Validate — проверка обязательных полей уже распарсенного события.
	Validate(ctx context.Context, event *domain.EnrichedEvent) error
}
