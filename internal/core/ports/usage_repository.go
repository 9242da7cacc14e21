package ports

import (
	"context"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// UsageRepository persists usage events for auditing.
type UsageRepository interface {
	InsertUsage(ctx context.Context, event *domain.UsageEvent) error
}

// UsageRecorder accepts usage events without blocking the caller.
type UsageRecorder interface {
	Record(event domain.UsageEvent)
}
