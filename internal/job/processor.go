package job

import (
	"context"
	"log/slog"
	"sync"
)

// Processor is the single long-running consumer loop bound to one lane.
// It dequeues payloads one at a time (which guarantees FIFO processing
// within the lane), opens a fresh resource scope per job, resolves and
// invokes the job's handler inside that scope, and discards the scope
// afterwards. A failing job is logged and dropped; it never stops the
// loop or reaches the caller that enqueued it.
//
// There is no timeout on individual job execution: a hung handler hangs
// its lane's processor indefinitely.
type Processor[P Payload] struct {
	lane     *Lane[P]
	scopes   ScopeFactory
	handlers *Registry
	logger   *slog.Logger

	// ctx is used only to interrupt the dequeue wait; an in-flight job
	// always runs to completion.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProcessor creates a processor for the given lane. The logger is
// passed explicitly at construction; the processor never reaches for a
// global one.
func NewProcessor[P Payload](
	lane *Lane[P],
	scopes ScopeFactory,
	handlers *Registry,
	logger *slog.Logger,
) *Processor[P] {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor[P]{
		lane:     lane,
		scopes:   scopes,
		handlers: handlers,
		logger:   logger.With("component", "job_processor", "lane", lane.Name()),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the consumer loop goroutine. It is called once at
// process startup; the loop runs until Stop.
func (p *Processor[P]) Start() {
	p.wg.Add(1)
	go p.run()
}

// Stop signals cancellation and waits for the loop to exit. The signal
// is only observed while the loop is waiting on an empty lane, so a job
// that is already executing finishes before the processor stops.
func (p *Processor[P]) Stop() {
	p.cancel()
	p.wg.Wait()
}

// run is the Running/Executing loop. It exits only when the dequeue
// wait is cancelled.
func (p *Processor[P]) run() {
	defer p.wg.Done()

	p.logger.Debug("processor started")

	for {
		payload, err := p.lane.Dequeue(p.ctx)
		if err != nil {
			// Cancellation is the expected, orderly way out of the loop.
			p.logger.Debug("processor stopping", "reason", err)
			return
		}

		Execute(context.Background(), p.scopes, p.handlers, p.logger, payload)
	}
}

// Execute runs a single payload through the full per-job discipline:
// open an isolated scope, resolve the handler for the payload's kind,
// adapt the parameters, invoke, and close the scope. Every failure is
// caught and logged with target and kind context, then the job is
// discarded; nothing propagates to the caller. The queued processor
// loop and the synchronous fallback path both funnel through here so
// their failure handling is identical.
func Execute[P Payload](
	ctx context.Context,
	scopes ScopeFactory,
	handlers *Registry,
	logger *slog.Logger,
	payload P,
) {
	logger = logger.With(
		"job_id", payload.JobID(),
		"job_kind", payload.JobKind(),
		"target", payload.JobTarget(),
	)

	scope, err := scopes.NewScope(ctx)
	if err != nil {
		logger.Error("failed to open job scope, job discarded", "error", err)
		return
	}
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			logger.Error("failed to close job scope", "error", cerr)
		}
	}()

	handler, err := handlers.Resolve(payload.JobKind())
	if err != nil {
		logger.Error("job discarded", "error", err)
		return
	}

	if err := handler.Execute(ctx, payload.JobTarget(), payload.JobParams().TemplateData(), scope); err != nil {
		logger.Error("job execution failed, job discarded", "error", err)
		return
	}

	logger.Debug("job completed")
}
