package stream

import "context"

// StreamConsumer pulls circuit jobs from a queue until its context ends.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
