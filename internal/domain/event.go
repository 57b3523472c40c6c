package domain

import "time"

// ServiceInfo — сведения о сервисе-продюсере, обогатившем событие.
type ServiceInfo struct {
	ServiceName    string `json:"service_name,omitempty"`
	ServiceVersion string `json:"service_version,omitempty"`
	Environment    string `json:"environment,omitempty"`
}

// ProcessingInfo — временные метки обработки на стороне продюсера.
// omitempty на struct-типах (time.Time в том числе) не работает,
// поэтому метки сериализуются всегда, нулевые — как zero value.
type ProcessingInfo struct {
	ReceivedAt   time.Time `json:"received_at"`
	ProcessedAt  time.Time `json:"processed_at"`
	ProcessingMS int64     `json:"processing_ms,omitempty"`
}

// EnrichedEvent — обогащённое событие пользовательской активности.
// Обязательные поля: EventID, EventType, Timestamp, UserID.
// EventData и ClientInfo — открытые словари произвольной формы:
// ядро их не интерпретирует и не перечисляет ключи (forward-compatibility).
type EnrichedEvent struct {
	EventID   string    `json:"event_id"`
	RequestID string    `json:"request_id,omitempty"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	PageURL   string    `json:"page_url,omitempty"`

	EventData  map[string]any `json:"event_data,omitempty"`
	ClientInfo map[string]any `json:"client_info,omitempty"`

	ServiceInfo    ServiceInfo    `json:"service_info"`
	ProcessingInfo ProcessingInfo `json:"processing_info"`
}

// Clone — глубокая копия события (словари копируются поверхностно по ключам,
// значения считаются неизменяемыми после парсинга).
func (e *EnrichedEvent) Clone() *EnrichedEvent {
	if e == nil {
		return nil
	}
	cloned := *e
	if e.EventData != nil {
		cloned.EventData = make(map[string]any, len(e.EventData))
		for k, v := range e.EventData {
			cloned.EventData[k] = v
		}
	}
	if e.ClientInfo != nil {
		cloned.ClientInfo = make(map[string]any, len(e.ClientInfo))
		for k, v := range e.ClientInfo {
			cloned.ClientInfo[k] = v
		}
	}
	return &cloned
}
