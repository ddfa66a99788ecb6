package lookup

import (
	"context"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
)

// Executor runs planned queries and returns their result slots.
type Executor interface {
	Run(ctx context.Context, descs []query.Descriptor) ([]executor.Slot, error)
}
