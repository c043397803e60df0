// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/semaphore"

	"github.com/danielhkuo/mock-ballot/models"
)

const progressSteps = 10

// pipeline tracks the single vote commit a session may have in flight.
type pipeline struct {
	clock clockwork.Clock
	delay time.Duration
	sem   *semaphore.Weighted

	mu       sync.Mutex
	started  time.Time
	inFlight bool
}

func newPipeline(clock clockwork.Clock, delay time.Duration) *pipeline {
	return &pipeline{
		clock: clock,
		delay: delay,
		sem:   semaphore.NewWeighted(1),
	}
}

// begin claims the pipeline; false means a commit is already running.
func (p *pipeline) begin() bool {
	if !p.sem.TryAcquire(1) {
		return false
	}
	p.mu.Lock()
	p.started = p.clock.Now()
	p.inFlight = true
	p.mu.Unlock()
	return true
}

func (p *pipeline) end() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
	p.sem.Release(1)
}

// wait blocks for the simulated encryption delay. It cannot be cancelled.
func (p *pipeline) wait() {
	if p.delay > 0 {
		<-p.clock.After(p.delay)
	}
}

func (p *pipeline) progress() models.ProgressResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inFlight {
		return models.ProgressResponse{}
	}
	percent, dots := ProgressAt(p.clock.Since(p.started), p.delay)
	return models.ProgressResponse{
		InFlight: true,
		Percent:  percent,
		Dots:     dotString(dots),
	}
}

// ProgressAt maps elapsed time onto the encryption animation: ten 10% steps
// spread over the first 80% of delay, then a hold at 100%. dots cycles 0..3
// with each step.
func ProgressAt(elapsed, delay time.Duration) (percent, dots int) {
	if delay <= 0 {
		return 100, 0
	}
	if elapsed <= 0 {
		return 0, 0
	}
	animation := delay * 4 / 5
	step := progressSteps
	if animation > 0 && elapsed < animation {
		step = int(elapsed * progressSteps / animation)
	}
	return step * 100 / progressSteps, step % 4
}

func dotString(n int) string {
	return "..."[:n]
}
