// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"sync"
	"time"

	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// RetrySession is the policy's own bookkeeping of the current reconnect
// attempt, distinct from the persisted playback state.
type RetrySession struct {
	RetryCount        int
	MaxRetries        int
	IsRetrying        bool
	MaxRetriesReached bool
}

// ErrorStatus is the whole externally visible surface of the policy, shaped
// for the error display boundary.
type ErrorStatus struct {
	Err               *player.Error
	IsRetrying        bool
	RetryCount        int
	MaxRetries        int
	MaxRetriesReached bool
	Recoverable       bool
}

// RetryPolicy observes error events, classifies them by the engine-asserted
// Recoverable flag and drives a bounded reconnect loop.
//
// Backoff is exponential: baseDelay doubles per attempt (1s, 2s, 4s with the
// defaults). The retry count is monotonic within a session and resets on
// recovery, on a new load, or on manual retry.
type RetryPolicy struct {
	store  *Store
	logger logger.LoggerInterface

	mu      sync.Mutex
	session RetrySession
	lastErr *player.Error

	baseDelay time.Duration
	reload    func()
	timer     *time.Timer

	// replaced in tests to capture scheduling instead of sleeping
	afterFunc func(d time.Duration, fn func()) *time.Timer
}

func NewRetryPolicy(store *Store, maxRetries int, baseDelay time.Duration, lg logger.LoggerInterface) *RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &RetryPolicy{
		store:     store,
		logger:    lg,
		session:   RetrySession{MaxRetries: maxRetries},
		baseDelay: baseDelay,
		afterFunc: time.AfterFunc,
	}
}

// SetReload wires the reconnect action, a re-load of the last known URL.
// The controller owns that URL, so it supplies the closure.
func (p *RetryPolicy) SetReload(fn func()) {
	p.mu.Lock()
	p.reload = fn
	p.mu.Unlock()
}

// HandleError is the single entry point for every failure mode, structural
// or asynchronous. The error always lands in the store; whether a reconnect
// is scheduled depends on the engine's classification and the budget.
func (p *RetryPolicy) HandleError(err *player.Error) {
	p.store.SetError(err)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err

	if !err.Recoverable {
		// only a user-initiated retry can move us forward
		p.session.IsRetrying = false
		p.stopTimerLocked()
		p.logger.Printf("retry: %s not recoverable, surfacing", err.Code)
		return
	}

	if p.session.RetryCount >= p.session.MaxRetries {
		// automatic budget spent; only a manual retry restarts the loop
		p.session.MaxRetriesReached = true
		p.session.IsRetrying = false
		p.stopTimerLocked()
		p.logger.Printf("retry: giving up after %d attempts", p.session.RetryCount)
		return
	}

	p.session.RetryCount++
	if p.session.RetryCount >= p.session.MaxRetries {
		// this schedules the final attempt of the budget; a further failure
		// stops the loop above
		p.session.MaxRetriesReached = true
	}
	p.session.IsRetrying = true
	delay := p.backoffLocked(p.session.RetryCount)
	p.logger.Printf("retry: attempt %d/%d in %v", p.session.RetryCount, p.session.MaxRetries, delay)
	p.scheduleLocked(delay)
}

func (p *RetryPolicy) backoffLocked(attempt int) time.Duration {
	d := p.baseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}

func (p *RetryPolicy) scheduleLocked(delay time.Duration) {
	p.stopTimerLocked()
	p.timer = p.afterFunc(delay, func() {
		p.mu.Lock()
		reload := p.reload
		p.mu.Unlock()
		if reload != nil {
			reload()
		}
	})
}

func (p *RetryPolicy) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// NotifyLoaded marks a load that made it past track discovery. The session
// resets to empty and the stored error clears; clearing does not by itself
// resume playback.
func (p *RetryPolicy) NotifyLoaded() {
	p.mu.Lock()
	wasRetrying := p.session.IsRetrying || p.session.RetryCount > 0
	p.session = RetrySession{MaxRetries: p.session.MaxRetries}
	p.lastErr = nil
	p.stopTimerLocked()
	p.mu.Unlock()

	if wasRetrying {
		p.logger.Print("retry: recovered")
	}
	if p.store.Snapshot().Err != nil {
		p.store.SetError(nil)
	}
}

// Reset clears the session without touching the store, for a fresh URL.
func (p *RetryPolicy) Reset() {
	p.mu.Lock()
	p.session = RetrySession{MaxRetries: p.session.MaxRetries}
	p.lastErr = nil
	p.stopTimerLocked()
	p.mu.Unlock()
}

// ManualRetry is always accepted, even past the budget. The count starts
// over and the last known URL is attempted immediately.
func (p *RetryPolicy) ManualRetry() {
	p.mu.Lock()
	p.session = RetrySession{MaxRetries: p.session.MaxRetries, IsRetrying: true}
	p.stopTimerLocked()
	reload := p.reload
	p.mu.Unlock()

	if reload != nil {
		reload()
	}
}

// Cancel stops any pending reconnect. Called on destroy.
func (p *RetryPolicy) Cancel() {
	p.mu.Lock()
	p.session.IsRetrying = false
	p.stopTimerLocked()
	p.mu.Unlock()
}

// Session returns a copy of the current bookkeeping.
func (p *RetryPolicy) Session() RetrySession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// Status shapes the policy state for the error display boundary.
func (p *RetryPolicy) Status() ErrorStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := ErrorStatus{
		Err:               p.lastErr,
		IsRetrying:        p.session.IsRetrying,
		RetryCount:        p.session.RetryCount,
		MaxRetries:        p.session.MaxRetries,
		MaxRetriesReached: p.session.MaxRetriesReached,
	}
	if p.lastErr != nil {
		st.Recoverable = p.lastErr.Recoverable
	}
	return st
}
