package ports

import (
	"context"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
)

// RecentEvents — ограниченный буфер последних обработанных событий.
// Требования к реализации: потокобезопасность; возврат копий сущности;
// новые записи вытесняют самые старые.
type RecentEvents interface {
	// Add — положить событие в буфер.
	Add(ctx context.Context, event *domain.EnrichedEvent)

	// List — вернуть до limit последних событий, новые первыми.
	List(ctx context.Context, limit int) []*domain.EnrichedEvent

	// Len — текущее количество событий в буфере.
	Len() int
}
