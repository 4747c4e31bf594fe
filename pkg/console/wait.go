package console

import (
	"context"
	"time"
)

// WaitResult is the outcome of waiting for submitted input
type WaitResult int

const (
	// InputReady means a line is queued and the session is live
	InputReady WaitResult = iota
	// InputExpired means the deadline passed with nothing queued
	InputExpired
	// InputClosed means the session is disabled and will deliver no more input
	InputClosed
)

func (r WaitResult) String() string {
	switch r {
	case InputReady:
		return "ready"
	case InputExpired:
		return "expired"
	case InputClosed:
		return "closed"
	}
	return "unknown"
}

// WaitInput blocks until a line is submitted or the session is disabled.
// It returns false once the session is disabled, even if lines remain queued.
func (s *Session) WaitInput() bool {
	return s.WaitInputContext(context.Background()) == InputReady
}

// WaitInputFor is WaitInput bounded by a timeout
func (s *Session) WaitInputFor(timeout time.Duration) WaitResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.WaitInputContext(ctx)
}

// WaitInputContext is WaitInput bounded by ctx. A canceled or expired ctx
// yields InputExpired.
func (s *Session) WaitInputContext(ctx context.Context) WaitResult {
	for {
		s.mu.Lock()
		if !s.enabled.Load() {
			s.mu.Unlock()
			return InputClosed
		}
		if len(s.queue) > 0 {
			s.mu.Unlock()
			return InputReady
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return InputExpired
		}
	}
}
