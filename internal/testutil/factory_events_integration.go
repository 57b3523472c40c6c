//go:build integration

package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
)

// MakeEvent — мини-генератор валидного события активности.
func MakeEvent(opts ...func(*domain.EnrichedEvent)) domain.EnrichedEvent {
	now := time.Now().UTC().Truncate(time.Second)

	e := domain.EnrichedEvent{
		EventID:   uuid.NewString(),
		RequestID: uuid.NewString(),
		EventType: "page_view",
		Timestamp: now,
		UserID:    "user-" + uuid.NewString()[:8],
		SessionID: "sess-" + uuid.NewString()[:8],
		PageURL:   "https://shop.example/catalog",
		EventData: map[string]any{
			"referrer": "https://google.com",
			"duration": 42,
		},
		ClientInfo: map[string]any{
			"user_agent": "Mozilla/5.0 (integration test)",
			"ip":         "10.0.0.1",
		},
		ServiceInfo: domain.ServiceInfo{
			ServiceName:    "activity-enricher",
			ServiceVersion: "1.0.0",
			Environment:    "test",
		},
	}

	for _, fn := range opts {
		fn(&e)
	}
	return e
}

// WithEventType — переопределить тип события.
func WithEventType(eventType string) func(*domain.EnrichedEvent) {
	return func(e *domain.EnrichedEvent) { e.EventType = eventType }
}

// WithUser — переопределить пользователя.
func WithUser(userID string) func(*domain.EnrichedEvent) {
	return func(e *domain.EnrichedEvent) { e.UserID = userID }
}

// WithoutUser — убрать обязательное поле (для негативных сценариев).
func WithoutUser() func(*domain.EnrichedEvent) {
	return func(e *domain.EnrichedEvent) { e.UserID = "" }
}
