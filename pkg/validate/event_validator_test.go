package validate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
	"github.com/Gunvolt24/activity-consumer/pkg/validate"
)

const validEventJSON = `{
	"event_id": "evt-1",
	"request_id": "req-1",
	"event_type": "page_view",
	"timestamp": "2025-06-01T12:00:00Z",
	"user_id": "user-1",
	"session_id": "sess-1",
	"page_url": "https://example.com/home",
	"event_data": {"button": "signup", "position": 3},
	"client_info": {"user_agent": "UA", "language": "en-US"},
	"service_info": {"service_name": "ingestion", "service_version": "1.2.3", "environment": "production"},
	"processing_info": {"received_at": "2025-06-01T12:00:00Z", "processed_at": "2025-06-01T12:00:01Z", "processing_ms": 42}
}`

// Обязательные поля валидного payload'а возвращаются без искажений.
func TestParse_Valid_RoundTripsRequiredFields(t *testing.T) {
	t.Parallel()

	v := validate.NewEventValidator()
	event, err := v.Parse(context.Background(), []byte(validEventJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if event.EventID != "evt-1" {
		t.Fatalf("EventID: want evt-1, got %q", event.EventID)
	}
	if event.EventType != "page_view" {
		t.Fatalf("EventType: want page_view, got %q", event.EventType)
	}
	if event.UserID != "user-1" {
		t.Fatalf("UserID: want user-1, got %q", event.UserID)
	}
	wantTS := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !event.Timestamp.Equal(wantTS) {
		t.Fatalf("Timestamp: want %s, got %s", wantTS, event.Timestamp)
	}

	// Открытые словари проходят насквозь.
	if event.EventData["button"] != "signup" {
		t.Fatalf("event_data must pass through, got %v", event.EventData)
	}
	if event.ClientInfo["language"] != "en-US" {
		t.Fatalf("client_info must pass through, got %v", event.ClientInfo)
	}
	if event.ServiceInfo.ServiceName != "ingestion" {
		t.Fatalf("service_info wrong: %+v", event.ServiceInfo)
	}
	if event.ProcessingInfo.ProcessingMS != 42 {
		t.Fatalf("processing_ms: want 42, got %d", event.ProcessingInfo.ProcessingMS)
	}
}

func TestParse_MissingRequiredField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"no_event_id", `{"event_type":"click","timestamp":"2025-06-01T12:00:00Z","user_id":"u1"}`},
		{"no_event_type", `{"event_id":"e1","timestamp":"2025-06-01T12:00:00Z","user_id":"u1"}`},
		{"no_timestamp", `{"event_id":"e1","event_type":"click","user_id":"u1"}`},
		{"no_user_id", `{"event_id":"e1","event_type":"click","timestamp":"2025-06-01T12:00:00Z"}`},
		{"empty_object", `{}`},
	}

	v := validate.NewEventValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := v.Parse(context.Background(), []byte(tt.raw))
			if !errors.Is(err, validate.ErrMissingField) {
				t.Fatalf("want ErrMissingField, got %v", err)
			}
			if !errors.Is(err, validate.ErrInvalidEvent) {
				t.Fatalf("ErrMissingField must wrap ErrInvalidEvent, got %v", err)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"not_json", "not json at all"},
		{"truncated", `{"event_id":"e1"`},
		{"wrong_type", `["array","not","object"]`},
		{"binary", "\x00\x01\x02"},
	}

	v := validate.NewEventValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := v.Parse(context.Background(), []byte(tt.raw))
			if !errors.Is(err, validate.ErrMalformed) {
				t.Fatalf("want ErrMalformed, got %v", err)
			}
			if !errors.Is(err, validate.ErrInvalidEvent) {
				t.Fatalf("ErrMalformed must wrap ErrInvalidEvent, got %v", err)
			}
		})
	}
}

// Неизвестные ключи — и на верхнем уровне, и внутри словарей — не ошибка.
func TestParse_UnknownKeysTolerated(t *testing.T) {
	t.Parallel()

	raw := `{
		"event_id": "e1", "event_type": "click",
		"timestamp": "2025-06-01T12:00:00Z", "user_id": "u1",
		"future_top_level_field": true,
		"event_data": {"brand_new_key": {"nested": [1,2,3]}},
		"client_info": {"gpu": "unknown-model"}
	}`

	v := validate.NewEventValidator()
	event, err := v.Parse(context.Background(), []byte(raw))
	if err != nil {
		t.Fatalf("unknown keys must not fail validation: %v", err)
	}
	if _, ok := event.EventData["brand_new_key"]; !ok {
		t.Fatalf("unknown event_data keys must pass through")
	}
}

func TestValidate_NilEvent(t *testing.T) {
	t.Parallel()

	v := validate.NewEventValidator()
	err := v.Validate(context.Background(), nil)
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("nil event: want ErrInvalidEvent, got %v", err)
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	v := validate.NewEventValidator()
	event := &domain.EnrichedEvent{
		EventID:   "e1",
		EventType: "click",
		Timestamp: time.Now().UTC(),
		UserID:    "u1",
	}
	if err := v.Validate(context.Background(), event); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
