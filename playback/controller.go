// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"math"
	"sync"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// Player is what the controller needs from the adapter. *player.Adapter
// satisfies it; tests hand in a stub.
type Player interface {
	Load(url string, autoPlay bool) error
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(v float64) error
	Mute() error
	Unmute() error
	SetQuality(track *player.QualityTrack) error
	SetAudioTrack(track *player.AudioTrack) error
	SetSubtitleTrack(track *player.SubtitleTrack) error
	RegisterEventConsumer(consumer player.EventConsumer)
	Destroy() error
}

// Controller is the mounted player instance: the one owner of the store and
// the only component allowed to drive the adapter on behalf of the user.
// UI layers read the store and call the methods here; they never reach the
// adapter directly.
//
// Load is not safe for concurrent use with itself; callers serialize loads,
// as the engine contract demands.
type Controller struct {
	adapter    Player
	store      *Store
	policy     *RetryPolicy
	normalizer *Normalizer
	logger     logger.LoggerInterface
	cfg        player.Config

	mu           sync.Mutex
	lastURL      string
	lastType     capability.StreamType
	lastAutoPlay bool
	destroyed    bool
}

func NewController(adapter Player, cfg player.Config, lg logger.LoggerInterface) *Controller {
	store := NewStore(cfg.InitialVolume, cfg.StartMuted)
	policy := NewRetryPolicy(store, cfg.RetryAttempts, cfg.RetryDelay, lg)

	c := &Controller{
		adapter: adapter,
		store:   store,
		policy:  policy,
		logger:  lg,
		cfg:     cfg,
	}
	c.normalizer = NewNormalizer(store, policy, lg)
	policy.SetReload(c.reloadLast)
	adapter.RegisterEventConsumer(c.normalizer)
	return c
}

// Store exposes the shared state for read access and subscriptions.
func (c *Controller) Store() *Store {
	return c.store
}

// Snapshot is shorthand for Store().Snapshot().
func (c *Controller) Snapshot() State {
	return c.store.Snapshot()
}

// ErrorStatus exposes the retry policy for the error display boundary.
func (c *Controller) ErrorStatus() ErrorStatus {
	return c.policy.Status()
}

// Load mounts a new source. The store rewinds and clears any previous error
// before the first event from the new source arrives, and the retry session
// starts fresh.
func (c *Controller) Load(url string) error {
	return c.load(url, c.cfg.AutoPlay)
}

func (c *Controller) load(url string, autoPlay bool) error {
	streamType := capability.DetectStreamType(url)

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return player.ErrDestroyed
	}
	c.lastURL = url
	c.lastType = streamType
	c.lastAutoPlay = autoPlay
	c.mu.Unlock()

	c.policy.Reset()
	c.store.SetCurrentURL(url, streamType)
	return c.adapter.Load(url, autoPlay)
}

// Unload unmounts the current source and idles the store.
func (c *Controller) Unload() {
	c.mu.Lock()
	c.lastURL = ""
	c.mu.Unlock()

	c.policy.Reset()
	c.store.SetCurrentURL("", capability.StreamUnknown)
}

func (c *Controller) reloadLast() {
	c.mu.Lock()
	url, streamType, autoPlay := c.lastURL, c.lastType, c.lastAutoPlay
	destroyed := c.destroyed
	c.mu.Unlock()
	if destroyed || url == "" {
		return
	}

	c.store.SetCurrentURL(url, streamType)
	if err := c.adapter.Load(url, autoPlay); err != nil {
		c.logger.PrintError("reload", err)
	}
}

// TogglePlayPause resumes, pauses, or restarts the last source when playback
// already finished.
func (c *Controller) TogglePlayPause() {
	snap := c.store.Snapshot()
	switch snap.Playback {
	case player.StatePlaying, player.StateBuffering, player.StateLoading:
		if err := c.adapter.Pause(); err != nil {
			c.logger.PrintError("pause", err)
		}
	case player.StatePaused:
		if err := c.adapter.Play(); err != nil {
			c.logger.PrintError("play", err)
		}
	default:
		// idle, ended or error: start the last source over, if there is one
		c.mu.Lock()
		url := c.lastURL
		c.mu.Unlock()
		if url != "" {
			if err := c.load(url, true); err != nil {
				c.logger.PrintError("restart", err)
			}
		}
	}
}

// SeekBy jumps relative to the current position. Silently ignored on
// non-seekable (live) sources.
func (c *Controller) SeekBy(delta float64) {
	snap := c.store.Snapshot()
	if !snap.Seekable {
		return
	}
	target := snap.CurrentTime + delta
	if target < 0 {
		target = 0
	}
	if snap.Duration > 0 {
		target = math.Min(target, snap.Duration)
	}
	if err := c.adapter.Seek(target); err != nil {
		c.logger.PrintError("seek", err)
	}
}

// SeekTo jumps to an absolute position, subject to the same seekable gate.
func (c *Controller) SeekTo(position float64) {
	snap := c.store.Snapshot()
	if !snap.Seekable {
		return
	}
	if position < 0 {
		position = 0
	}
	if err := c.adapter.Seek(position); err != nil {
		c.logger.PrintError("seek", err)
	}
}

// SetVolume writes the clamped volume to the store and pushes it to the
// engine; the engine's own volumechange echo is idempotent on the store.
func (c *Controller) SetVolume(v float64) {
	c.store.SetVolume(v)
	if err := c.adapter.SetVolume(v); err != nil {
		c.logger.PrintError("set volume", err)
	}
}

// VolumeStep nudges the volume by delta, clamped to [0,1].
func (c *Controller) VolumeStep(delta float64) {
	c.SetVolume(c.store.Snapshot().Volume + delta)
}

func (c *Controller) ToggleMute() {
	muted := !c.store.Snapshot().Muted
	c.store.SetMuted(muted)
	var err error
	if muted {
		err = c.adapter.Mute()
	} else {
		err = c.adapter.Unmute()
	}
	if err != nil {
		c.logger.PrintError("toggle mute", err)
	}
}

func (c *Controller) ToggleFullscreen() {
	c.store.ToggleFullscreen()
}

func (c *Controller) ShowControls() {
	c.store.ShowControls()
}

func (c *Controller) HideControls() {
	c.store.HideControls()
}

// SelectQuality pins a rendition; nil re-enables the automatic ladder. The
// store follows through the adapter's qualitychange echo.
func (c *Controller) SelectQuality(track *player.QualityTrack) {
	if err := c.adapter.SetQuality(track); err != nil {
		c.logger.PrintError("select quality", err)
	}
}

func (c *Controller) SelectAudioTrack(track *player.AudioTrack) {
	if err := c.adapter.SetAudioTrack(track); err != nil {
		c.logger.PrintError("select audio", err)
	}
}

func (c *Controller) SelectSubtitleTrack(track *player.SubtitleTrack) {
	if err := c.adapter.SetSubtitleTrack(track); err != nil {
		c.logger.PrintError("select subtitle", err)
	}
}

// ManualRetry re-attempts the last known URL, always accepted regardless of
// the automatic budget.
func (c *Controller) ManualRetry() {
	c.policy.ManualRetry()
}

// Destroy tears the instance down: pending retries are cancelled, the
// adapter is silenced and destroyed, and the store returns to defaults.
// Safe to call more than once.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.mu.Unlock()

	c.policy.Cancel()
	if err := c.adapter.Destroy(); err != nil {
		c.logger.PrintError("destroy", err)
	}
	c.store.Reset()
}
