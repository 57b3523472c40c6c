package ports

import (
	"context"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
)

// EventReadService — сервис чтения обработанных событий (для HTTP-слоя).
type EventReadService interface {
	RecentEvents(ctx context.Context, limit int) []*domain.EnrichedEvent
}
