package ports

import (
	"context"

	"github.com/daiimus/paracord/internal/domain"
)

// CheckpointStore persists per-target progress. Save must be durable
// before it returns; it is invoked after every processed message and is
// the sole resume mechanism after a crash or interrupt.
type CheckpointStore interface {
	Load(ctx context.Context) (map[string]domain.ProgressRecord, error)
	Save(ctx context.Context, record domain.ProgressRecord) error
}
