// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package input translates discrete remote-control key presses into the
// playback action vocabulary. The mapper owns no playback state of its own;
// it reads a store snapshot per key press and delegates every action to
// caller-supplied callbacks.
package input

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
)

var ErrAlreadyAttached = errors.New("input: mapper already attached")

const (
	DefaultSeekStep   = 10.0
	DefaultVolumeStep = 0.1
)

// StateSource yields the snapshot a key decision is based on.
type StateSource interface {
	Snapshot() playback.State
}

// Callbacks are the actions the mapper can invoke. Nil entries disable the
// corresponding keys.
type Callbacks struct {
	PlayPause        func()
	PlayChannel      func(Channel)
	SeekBy           func(delta float64)
	VolumeStep       func(delta float64)
	ToggleMute       func()
	ToggleFullscreen func()
	Back             func()
	ShowControls     func()

	// TextEntryFocused reports whether a text-entry element currently has
	// focus; while it does, every key is ignored outright.
	TextEntryFocused func() bool
}

// Mapper routes key events to callbacks. One global key listener per active
// instance; Attach a second time without Detach is refused.
type Mapper struct {
	source     StateSource
	cb         Callbacks
	seekStep   float64
	volumeStep float64
	logger     logger.LoggerInterface

	mu       sync.Mutex
	channels []Channel
	current  string
	stop     chan struct{}
	done     chan struct{}
}

// MapperOption tunes step sizes.
type MapperOption func(*Mapper)

func WithSeekStep(seconds float64) MapperOption {
	return func(m *Mapper) {
		if seconds > 0 {
			m.seekStep = seconds
		}
	}
}

func WithVolumeStep(step float64) MapperOption {
	return func(m *Mapper) {
		if step > 0 {
			m.volumeStep = step
		}
	}
}

func NewMapper(source StateSource, cb Callbacks, lg logger.LoggerInterface, opts ...MapperOption) *Mapper {
	m := &Mapper{
		source:     source,
		cb:         cb,
		seekStep:   DefaultSeekStep,
		volumeStep: DefaultVolumeStep,
		logger:     lg,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetChannels replaces the filtered channel list used for zapping.
func (m *Mapper) SetChannels(list []Channel) {
	m.mu.Lock()
	m.channels = append([]Channel(nil), list...)
	m.mu.Unlock()
}

// SetCurrentChannel records which channel the front end considers active.
func (m *Mapper) SetCurrentChannel(id string) {
	m.mu.Lock()
	m.current = id
	m.mu.Unlock()
}

// Attach starts consuming key events from keys. Exactly one listener may be
// active per mapper; a second Attach fails until Detach is called.
func (m *Mapper) Attach(keys <-chan *tcell.EventKey) error {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return ErrAlreadyAttached
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	m.stop = stop
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-keys:
				if !ok {
					return
				}
				m.HandleKey(ev)
			}
		}
	}()
	return nil
}

// Detach removes the listener. Idempotent.
func (m *Mapper) Detach() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

// HandleKey maps one key press to at most one action. It returns true when
// the key was consumed; an unhandled key is the caller's to route (UI focus
// traversal and the like).
func (m *Mapper) HandleKey(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	if m.cb.TextEntryFocused != nil && m.cb.TextEntryFocused() {
		return false
	}

	snap := m.source.Snapshot()

	switch ev.Key() {
	case tcell.KeyEnter:
		return m.playPause()

	case tcell.KeyPgUp:
		return m.stepChannel(+1)

	case tcell.KeyPgDn:
		return m.stepChannel(-1)

	case tcell.KeyLeft:
		return m.seek(-m.seekStep, snap)

	case tcell.KeyRight:
		return m.seek(+m.seekStep, snap)

	case tcell.KeyUp:
		return m.volume(+m.volumeStep, snap)

	case tcell.KeyDown:
		return m.volume(-m.volumeStep, snap)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return m.back()

	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'p', 'P':
			return m.playPause()
		case 'm', 'M':
			return m.mute()
		case 'f', 'F':
			return m.fullscreen()
		}
	}

	return false
}

func (m *Mapper) showControls() {
	if m.cb.ShowControls != nil {
		m.cb.ShowControls()
	}
}

func (m *Mapper) playPause() bool {
	if m.cb.PlayPause == nil {
		return false
	}
	m.cb.PlayPause()
	m.showControls()
	return true
}

func (m *Mapper) stepChannel(delta int) bool {
	if m.cb.PlayChannel == nil {
		return false
	}
	m.mu.Lock()
	list := m.channels
	current := m.current
	m.mu.Unlock()

	next, ok := Step(list, current, delta)
	if !ok {
		// current channel not in the filtered list: do nothing, but the
		// key still belongs to us
		m.logger.Printf("input: channel %q not in zapping list", current)
		return true
	}
	m.cb.PlayChannel(next)
	m.showControls()
	return true
}

func (m *Mapper) seek(delta float64, snap playback.State) bool {
	if m.cb.SeekBy == nil {
		return false
	}
	if snap.Seekable {
		m.cb.SeekBy(delta)
	}
	m.showControls()
	return true
}

// volume handles Up/Down, which double as focus movement while the controls
// overlay is visible; in that case the key is left to the UI.
func (m *Mapper) volume(delta float64, snap playback.State) bool {
	if snap.ControlsVisible {
		return false
	}
	if m.cb.VolumeStep == nil {
		return false
	}
	m.cb.VolumeStep(delta)
	m.showControls()
	return true
}

func (m *Mapper) mute() bool {
	if m.cb.ToggleMute == nil {
		return false
	}
	m.cb.ToggleMute()
	m.showControls()
	return true
}

func (m *Mapper) fullscreen() bool {
	if m.cb.ToggleFullscreen == nil {
		return false
	}
	m.cb.ToggleFullscreen()
	m.showControls()
	return true
}

func (m *Mapper) back() bool {
	if m.cb.Back == nil {
		return false
	}
	m.cb.Back()
	m.showControls()
	return true
}
