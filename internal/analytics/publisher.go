package analytics

import (
	"context"

	"github.com/fourstack/dropfour/internal/model"
)

// Publisher is the sink for lifecycle events. Implementations must not
// block the caller for long; gameplay never waits on a publish.
type Publisher interface {
	Publish(ctx context.Context, event model.Event)
	Close() error
}

// Nop is a publisher that discards every event. Used when no analytics
// backend is configured, and in tests.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) Publish(ctx context.Context, event model.Event) {}

func (n *Nop) Close() error {
	return nil
}

var _ Publisher = (*Nop)(nil)
