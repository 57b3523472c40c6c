package ports

import (
	"context"

	"github.com/Gunvolt24/activity-consumer/internal/domain"
)

// EventHandler — точка расширения бизнес-логики: вызывается для каждого
// валидного события. Ошибка означает сбой обработки (не валидации) —
// решение о коммите оффсета принимает цикл потребления.
type EventHandler interface {
	Handle(ctx context.Context, event *domain.EnrichedEvent) error
}
