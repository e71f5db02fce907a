// Package timer tracks total and per-stage elapsed time for multi-step operations.
package timer

import (
	"sync"
	"time"
)

// Timer measures elapsed time across the stages of an operation.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the time spent in the current stage.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the timer so subsequent GetTiming calls return fixed values.
	Stop()
}

type stopwatch struct {
	mu         sync.Mutex
	now        func() time.Time
	started    time.Time
	stageStart time.Time
	stoppedAt  time.Time
	stopped    bool
}

// New returns a Timer backed by the wall clock.
func New() Timer {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Timer that reads time from now.
func NewWithClock(now func() time.Time) Timer {
	return &stopwatch{now: now}
}

func (s *stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.now()
	s.started = current
	s.stageStart = current
	s.stopped = false
}

func (s *stopwatch) NewStage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.IsZero() {
		s.started = s.now()
	}

	s.stageStart = s.now()
}

func (s *stopwatch) GetTiming() (time.Duration, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started.IsZero() {
		return 0, 0
	}

	end := s.now()
	if s.stopped {
		end = s.stoppedAt
	}

	return end.Sub(s.started), end.Sub(s.stageStart)
}

func (s *stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	s.stoppedAt = s.now()
	s.stopped = true
}
