package snackbar

import (
	"context"
	"sync"

	"github.com/jmylchreest/snackbars/internal/model"
)

// recordingQueue is a HostQueue that records every request and finishes it at once.
type recordingQueue struct {
	mu       sync.Mutex
	requests []model.Request
}

func (q *recordingQueue) Submit(_ context.Context, req model.Request) (<-chan model.Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.requests = append(q.requests, req)
	results := make(chan model.Result, 1)
	results <- model.Result{Outcome: model.OutcomeDismissed}
	return results, nil
}

func (q *recordingQueue) Requests() []model.Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.Request, len(q.requests))
	copy(out, q.requests)
	return out
}

func (q *recordingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}
