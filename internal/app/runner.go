package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"savekeeper/internal/domain"
	appErrors "savekeeper/internal/errors"
	"savekeeper/internal/logging"
)

// Runner executes each operation on its own goroutine and reports the outcome once.
// Runs are not queued and, unless Locks is set, not serialized against each other.
type Runner struct {
	Copier   *Copier
	Deleter  *Deleter
	Dispatch DispatchFunc
	Locks    *SubtreeLocks
	Logger   logging.Logger

	wg sync.WaitGroup
}

// Run starts op in the background and returns immediately. onComplete is called
// exactly once, through Dispatch when it is set.
func (r *Runner) Run(op domain.Operation, onComplete func(domain.Outcome)) {
	id := uuid.NewString()[:8]
	logger := r.Logger.With(id)

	release := func() {}
	if r.Locks != nil {
		var ok bool
		release, ok = r.Locks.TryAcquire(op.Target())
		if !ok {
			logger.Warnf("Rejected %s of %s: subtree busy", op.Kind(), op.Target())
			busy := domain.FailedOutcome(op.Kind(), op.Target(),
				appErrors.Wrap(appErrors.Busy, string(op.Kind()), op.Target(), errors.New("subtree is locked by another run")))
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				r.deliver(onComplete, busy)
			}()
			return
		}
	}

	logger.Verbosef("Starting %s of %s", op.Kind(), op.Target())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		outcome := r.execute(id, logger, op)
		release()
		logger.Verbosef("Finished %s of %s: %s", op.Kind(), op.Target(), outcome.Status)
		r.deliver(onComplete, outcome)
	}()
}

// Wait blocks until every started run has delivered its outcome.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) execute(id string, logger logging.Logger, op domain.Operation) (outcome domain.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warnf("Recovered from panic in %s: %v", op.Kind(), rec)
			outcome = domain.FailedOutcome(op.Kind(), op.Target(),
				appErrors.Wrap(appErrors.Internal, string(op.Kind()), op.Target(), fmt.Errorf("panic: %v", rec)))
		}
	}()

	ctx := context.Background()
	switch req := op.(type) {
	case domain.CopyRequest:
		if r.Copier == nil {
			return domain.FailedOutcome(op.Kind(), op.Target(), errors.New("runner has no copier"))
		}
		copier := *r.Copier
		copier.Logger = copier.Logger.With(id)
		return copier.Copy(ctx, req)
	case domain.DeleteRequest:
		if r.Deleter == nil {
			return domain.FailedOutcome(op.Kind(), op.Target(), errors.New("runner has no deleter"))
		}
		deleter := *r.Deleter
		deleter.Logger = deleter.Logger.With(id)
		return deleter.Delete(ctx, req)
	default:
		return domain.FailedOutcome(op.Kind(), op.Target(), fmt.Errorf("unsupported operation %T", op))
	}
}

func (r *Runner) deliver(onComplete func(domain.Outcome), outcome domain.Outcome) {
	if onComplete == nil {
		return
	}
	if r.Dispatch != nil {
		r.Dispatch(func() { onComplete(outcome) })
		return
	}
	onComplete(outcome)
}
