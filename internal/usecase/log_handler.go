package usecase

import (
	"context"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
	"github.com/Gunvolt24/activity-consumer/internal/ports"
)

// Проверка соответствия порту.
var _ ports.EventHandler = (*LogHandler)(nil)

// LogHandler — обработчик по умолчанию: выводит сводку события в лог.
// Сюда же подключаются будущие обработчики (запись в хранилище,
// пересылка дальше) — цикл потребления про них ничего не знает.
type LogHandler struct {
	log ports.Logger
}

func NewLogHandler(log ports.Logger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) Handle(ctx context.Context, event *domain.EnrichedEvent) error {
	h.log.Infof(ctx, "activity event id=%s type=%s user=%s session=%s page=%s service=%s/%s data_keys=%d",
		event.EventID, event.EventType, event.UserID, event.SessionID, event.PageURL,
		event.ServiceInfo.ServiceName, event.ServiceInfo.ServiceVersion, len(event.EventData))
	return nil
}
