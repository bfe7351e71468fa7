package daemon

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultQueueSize is the number of events buffered before Post blocks.
const DefaultQueueSize = 64

// EventLoop runs posted functions one at a time, in order, on the goroutine
// that called Run. Every handler runs to completion before the next starts.
type EventLoop struct {
	logger *slog.Logger
	events chan func()
	done   chan struct{}

	mu        sync.Mutex
	afterEach func()
	stopped   bool
}

// NewEventLoop creates an event loop.
func NewEventLoop(logger *slog.Logger) *EventLoop {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLoop{
		logger: logger,
		events: make(chan func(), DefaultQueueSize),
		done:   make(chan struct{}),
	}
}

// SetAfterEach sets a hook run on the loop goroutine after every event.
func (l *EventLoop) SetAfterEach(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.afterEach = fn
}

// Post queues fn. It is safe to call from any goroutine. Events posted
// after the loop stops are dropped.
func (l *EventLoop) Post(fn func()) {
	select {
	case <-l.done:
		l.logger.Debug("event loop stopped, dropping event")
	case l.events <- fn:
	}
}

// Run processes events until ctx is cancelled. Events still queued at that
// point are discarded.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			l.handle(fn)
		}
	}
}

func (l *EventLoop) handle(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", "panic", r)
		}
	}()

	fn()

	l.mu.Lock()
	after := l.afterEach
	l.mu.Unlock()
	if after != nil {
		after()
	}
}

func (l *EventLoop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.done)
	}
}
