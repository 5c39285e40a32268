package collector

import (
	"context"
	"sync"
	"time"

	"github.com/wolfman30/leadform/pkg/logging"
)

// Sender delivers a payload to the collector.
type Sender interface {
	Send(ctx context.Context, p Payload) error
}

// Notifier is told about qualified leads after they were sent.
type Notifier interface {
	NotifyQualified(ctx context.Context, p Payload) error
}

// Observer records dispatch outcomes.
type Observer interface {
	ObserveDispatch(status string, seconds float64)
}

// Dispatcher sends payloads without making the visitor wait. Each dispatch
// runs in its own goroutine, detached from the request's cancellation, and
// failures are only logged. Nothing is retried.
type Dispatcher struct {
	sender   Sender
	notifier Notifier
	observer Observer
	timeout  time.Duration
	logger   *logging.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithNotifier alerts on qualified leads.
func WithNotifier(n Notifier) DispatcherOption {
	return func(d *Dispatcher) { d.notifier = n }
}

// WithObserver records dispatch metrics.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observer = o }
}

// WithTimeout bounds each background send. Defaults to 15s.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher creates a fire-and-forget dispatcher.
func NewDispatcher(sender Sender, logger *logging.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		sender:  sender,
		timeout: 15 * time.Second,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch starts sending p and returns immediately. It reports false when
// the dispatcher is already closed.
func (d *Dispatcher) Dispatch(ctx context.Context, p Payload) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("collector dispatch after close", "email", p.Email)
		d.observe("dropped", 0)
		return false
	}
	d.wg.Add(1)
	d.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()
		d.run(ctx, p)
	}()
	return true
}

func (d *Dispatcher) run(parent context.Context, p Payload) {
	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.sender.Send(ctx, p); err != nil {
		d.logger.Error("error submitting form", "error", err, "qualified", p.IsQualified)
		d.observe("error", time.Since(start).Seconds())
		return
	}
	d.observe("sent", time.Since(start).Seconds())
	d.logger.Info("submission forwarded", "qualified", p.IsQualified, "business_model", p.BusinessModel)

	if d.notifier == nil || !p.IsQualified {
		return
	}
	if err := d.notifier.NotifyQualified(ctx, p); err != nil {
		d.logger.Warn("qualified lead alert failed", "error", err)
	}
}

func (d *Dispatcher) observe(status string, seconds float64) {
	if d.observer != nil {
		d.observer.ObserveDispatch(status, seconds)
	}
}

// Close stops accepting dispatches and waits for in-flight sends or ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
