package test

import (
	"context"
	"sync"

	"github.com/matheuscscp/net-sock/socket"
)

type (
	// Scheduler records Poll calls and reports every descriptor as ready.
	Scheduler struct {
		mu    sync.Mutex
		calls int
	}
)

// Poll records the call and returns ctx.Err().
func (s *Scheduler) Poll(ctx context.Context, fd int, op socket.PollOp) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return ctx.Err()
}

// Calls returns how many times Poll was called.
func (s *Scheduler) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
