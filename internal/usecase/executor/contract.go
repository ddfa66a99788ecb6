package executor

import (
	"context"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/query"
)

// Requester executes one planned query against the remote service.
type Requester interface {
	Execute(ctx context.Context, d query.Descriptor) (query.Envelope, error)
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context, d query.Descriptor) (query.Envelope, error)

// Execute calls f.
func (f RequesterFunc) Execute(ctx context.Context, d query.Descriptor) (query.Envelope, error) {
	return f(ctx, d)
}
