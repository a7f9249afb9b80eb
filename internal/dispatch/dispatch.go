// Package dispatch runs balance computations off the caller's goroutine and
// delivers only the outcome of the most recent submission.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/gapaero/loadsheet/internal/balance"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("dispatcher closed")

// Engine computes one balance.
type Engine interface {
	CalculateContext(ctx context.Context, in balance.Input) (*balance.Result, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, in balance.Input) (*balance.Result, error)

// CalculateContext calls f.
func (f EngineFunc) CalculateContext(ctx context.Context, in balance.Input) (*balance.Result, error) {
	return f(ctx, in)
}

// Outcome is the result or error of one submission.
type Outcome struct {
	Ticket uuid.UUID
	Input  balance.Input
	Result *balance.Result
	Err    error
}

// Dispatcher serialises computations and cancels superseded ones. deliver is
// called at most once per submission, only for the latest one, and never
// concurrently with itself. deliver may call Submit but must not call Close.
type Dispatcher struct {
	logger  *zap.Logger
	engine  Engine
	deliver func(Outcome)
	sem     *semaphore.Weighted

	mu     sync.Mutex
	latest uuid.UUID
	cancel context.CancelFunc
	closed bool

	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New constructs a Dispatcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger, engine Engine, deliver func(Outcome)) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		logger:  logger,
		engine:  engine,
		deliver: deliver,
		sem:     semaphore.NewWeighted(1),
	}
}

// Submit schedules a computation of in, cancelling the previous one if it
// has not finished, and returns the ticket its outcome will carry.
func (d *Dispatcher) Submit(in balance.Input) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return uuid.Nil, ErrClosed
	}
	if d.cancel != nil {
		d.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticket := uuid.New()
	d.latest = ticket
	d.cancel = cancel

	d.logger.Debug("computation submitted",
		zap.String("op", "dispatch.Submit"),
		zap.String("ticket", ticket.String()),
	)

	d.wg.Add(1)
	go d.run(ctx, ticket, in)
	return ticket, nil
}

// Latest returns the ticket of the most recent submission.
func (d *Dispatcher) Latest() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

func (d *Dispatcher) current(ticket uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest == ticket
}

func (d *Dispatcher) run(ctx context.Context, ticket uuid.UUID, in balance.Input) {
	defer d.wg.Done()
	log := d.logger.With(
		zap.String("op", "dispatch.run"),
		zap.String("ticket", ticket.String()),
	)

	if err := d.sem.Acquire(ctx, 1); err != nil {
		log.Debug("computation superseded before start")
		return
	}
	result, err := d.engine.CalculateContext(ctx, in)
	d.sem.Release(1)

	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	if !d.current(ticket) {
		log.Debug("dropping superseded outcome", zap.Error(err))
		return
	}
	if err != nil {
		log.Info("computation failed", zap.Error(err))
	}
	if d.deliver != nil {
		d.deliver(Outcome{Ticket: ticket, Input: in, Result: result, Err: err})
	}
}

// Close rejects further submissions and waits for in-flight computations.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}
