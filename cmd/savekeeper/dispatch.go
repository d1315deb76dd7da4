package main

import (
	"savekeeper/internal/app"
	"savekeeper/internal/domain"
)

// dispatcher hands runner callbacks to the goroutine draining it, so outcomes are
// printed from main and never from a worker.
type dispatcher struct {
	calls chan func()
}

func newDispatcher() *dispatcher {
	return &dispatcher{calls: make(chan func())}
}

func (d *dispatcher) Dispatch(fn func()) {
	d.calls <- fn
}

// drain runs delivered callbacks until done is closed.
func (d *dispatcher) drain(done <-chan struct{}) {
	for {
		select {
		case fn := <-d.calls:
			fn()
		case <-done:
			return
		}
	}
}

// runAndWait starts op on runner and blocks until its outcome has been delivered
// on the calling goroutine.
func runAndWait(runner *app.Runner, d *dispatcher, op domain.Operation) domain.Outcome {
	runner.Dispatch = d.Dispatch
	var outcome domain.Outcome
	done := make(chan struct{})
	runner.Run(op, func(o domain.Outcome) {
		outcome = o
		close(done)
	})
	d.drain(done)
	return outcome
}
