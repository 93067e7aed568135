package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBufferFull is returned when async mode cannot accept another event.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. In sync mode
// Emit writes through to the store; with WithAsyncBuffer events are queued
// and drained by a background worker.
type Publisher struct {
	store Store

	inbox chan Event
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// Option configures a Publisher instance.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous emission with the given buffer size.
// When the buffer is full, Emit drops the event and returns ErrBufferFull
// rather than blocking the request path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan Event, size)
		}
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		// Persistence failures are swallowed in async mode; audit must
		// never take down the request path.
		_ = p.store.Append(context.Background(), event)
	}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, base)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.inbox <- base:
		return nil
	default:
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, userID string) ([]Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close stops the async worker after draining queued events. Safe to call
// in sync mode and safe to call more than once.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}
