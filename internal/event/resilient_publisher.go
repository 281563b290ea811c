package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/BrandishShop/internal/logger"
)

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	mu       sync.RWMutex
	stopped  bool
	dlClosed bool
	wg       sync.WaitGroup
	stopCh   chan struct{}
}

// NewResilientPublisher creates a new ResilientPublisher writing undeliverable
// events to deadLetterPath
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		stopCh:     make(chan struct{}),
	}, nil
}

// Publish makes one synchronous attempt. On failure the event is retried in
// the background and nil is returned, so callers never block on delivery.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes event, retrying with exponential backoff and
// dead-lettering it once retries are exhausted
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(context.WithoutCancel(ctx), event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		if p.dlClosed {
			log.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "attempts", 1)
			return
		}
		p.writeDeadLetter(ctx, event, 1, err)
		return
	}

	log.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.maxRetries)

	p.wg.Add(1)
	go p.retryLoop(context.WithoutCancel(ctx), event, err)
}

func (p *ResilientPublisher) retryLoop(ctx context.Context, event Event, lastErr error) {
	defer p.wg.Done()
	log := logger.FromContext(ctx)

	attempts := 1
	for i := 1; i <= p.maxRetries; i++ {
		timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, i))
		select {
		case <-p.stopCh:
			timer.Stop()
			log.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "attempts", attempts)
			p.writeDeadLetter(ctx, event, attempts, lastErr)
			return
		case <-timer.C:
		}

		attempts++
		err := p.inner.Publish(ctx, event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", i)
			return
		}
		lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", i, "error", err)
	}

	p.writeDeadLetter(ctx, event, attempts, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(ctx context.Context, event Event, attempts int, lastErr error) {
	log := logger.FromContext(ctx)
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", err)
		return
	}
	log.Info(LogMsgEventDeadLettered, "event_type", event.Type, "attempts", attempts)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops scheduling retries, dead-letters anything still pending and
// closes the dead-letter file. It returns ctx.Err() if pending retries do
// not drain in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.stopCh)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.dlClosed {
			return nil
		}
		p.dlClosed = true
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Error(LogMsgShutdownTimeout, "error", ctx.Err())
		return ctx.Err()
	}
}
