package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
	"github.com/Gunvolt24/activity-consumer/internal/ports"
	"github.com/Gunvolt24/activity-consumer/pkg/metrics"
)

// Проверка, что буфер удовлетворяет порту RecentEvents.
var _ ports.RecentEvents = (*RecentEventsBuffer)(nil)

// RecentEventsBuffer — кольцевой буфер последних обработанных событий.
// События не имеют персистентной идентичности: буфер хранит копии и
// служит только для отладочной видимости через HTTP.
type RecentEventsBuffer struct {
	capacity int

	mu   sync.Mutex
	ring []*domain.EnrichedEvent
	next int // позиция следующей записи
	size int
}

func NewRecentEventsBuffer(capacity int) *RecentEventsBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RecentEventsBuffer{
		capacity: capacity,
		ring:     make([]*domain.EnrichedEvent, capacity),
	}
}

// Add — положить копию события; самая старая запись вытесняется.
func (b *RecentEventsBuffer) Add(_ context.Context, event *domain.EnrichedEvent) {
	if event == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.ring[b.next] = event.Clone()
	b.next = (b.next + 1) % b.capacity
	if b.size < b.capacity {
		b.size++
	}
	metrics.RecentEventsSize.Set(float64(b.size))
}

// List — до limit последних событий, новые первыми; возвращаются копии.
func (b *RecentEventsBuffer) List(_ context.Context, limit int) []*domain.EnrichedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if limit <= 0 || limit > b.size {
		limit = b.size
	}

	out := make([]*domain.EnrichedEvent, 0, limit)
	for i := 0; i < limit; i++ {
		// от последней записи назад по кольцу
		idx := (b.next - 1 - i + b.capacity*2) % b.capacity
		out = append(out, b.ring[idx].Clone())
	}
	return out
}

// Len — текущее количество событий в буфере.
func (b *RecentEventsBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}
