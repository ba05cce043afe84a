// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package playback holds the shared player state and everything allowed to
// write it: the store's named action surface, the event normalizer, the
// retry policy and the controller. Everyone else gets read-only snapshots or
// change notifications.
package playback

import (
	"math"
	"sync"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// State is the full shared playback record. Copies handed out by Snapshot
// are safe to keep; slices are never aliased with the store's own.
type State struct {
	Playback     player.PlaybackState
	CurrentTime  float64
	Duration     float64
	BufferedTime float64

	Volume float64
	Muted  bool

	Live     bool
	Seekable bool

	// CurrentURL is empty when no source is mounted.
	CurrentURL string
	StreamType capability.StreamType

	Qualities       []player.QualityTrack
	SelectedQuality *player.QualityTrack
	AutoQuality     bool

	AudioTracks   []player.AudioTrack
	SelectedAudio *player.AudioTrack

	SubtitleTracks   []player.SubtitleTrack
	SelectedSubtitle *player.SubtitleTrack

	Err *player.Error

	ControlsVisible bool
	Fullscreen      bool
}

// Store owns one State. All mutation goes through the named actions below;
// reads go through Snapshot or the derived queries.
type Store struct {
	mu    sync.RWMutex
	state State

	defaultVolume float64
	defaultMuted  bool

	subs    map[int]func(State)
	nextSub int
}

// NewStore builds a store in its documented default state. initialVolume is
// clamped to [0,1].
func NewStore(initialVolume float64, startMuted bool) *Store {
	s := &Store{
		defaultVolume: clampVolume(initialVolume),
		defaultMuted:  startMuted,
		subs:          make(map[int]func(State)),
	}
	s.state = s.defaults()
	return s
}

func (s *Store) defaults() State {
	return State{
		Playback:    player.StateIdle,
		Volume:      s.defaultVolume,
		Muted:       s.defaultMuted,
		StreamType:  capability.StreamUnknown,
		AutoQuality: true,
	}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Subscribe registers a change callback invoked with a snapshot after every
// mutation. The returned handle unsubscribes; calling it twice is harmless.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the write lock, then notifies subscribers with a
// detached snapshot outside of it.
func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, cb := range s.subs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	for _, cb := range subs {
		cb(snap)
	}
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Qualities = append([]player.QualityTrack(nil), s.state.Qualities...)
	snap.AudioTracks = append([]player.AudioTrack(nil), s.state.AudioTracks...)
	snap.SubtitleTracks = append([]player.SubtitleTrack(nil), s.state.SubtitleTracks...)
	return snap
}

// Snapshot returns a detached copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// --- action surface ---

func (s *Store) SetPlaybackState(st player.PlaybackState) {
	s.mutate(func(state *State) {
		state.Playback = st
	})
}

func (s *Store) SetCurrentTime(t float64) {
	s.mutate(func(state *State) {
		state.CurrentTime = t
	})
}

// SetProgress updates current and buffered time as one atomic mutation.
func (s *Store) SetProgress(currentTime, bufferedTime float64) {
	s.mutate(func(state *State) {
		state.CurrentTime = currentTime
		state.BufferedTime = bufferedTime
	})
}

// SetDuration also derives Seekable; live streams are not seekable. The two
// are never written independently.
func (s *Store) SetDuration(d float64, live bool) {
	s.mutate(func(state *State) {
		state.Duration = d
		state.Live = live
		state.Seekable = !live
	})
}

func (s *Store) SetBufferedTime(t float64) {
	s.mutate(func(state *State) {
		state.BufferedTime = t
	})
}

// SetVolume clamps to [0,1]; no caller can store an out-of-range value.
func (s *Store) SetVolume(v float64) {
	s.mutate(func(state *State) {
		state.Volume = clampVolume(v)
	})
}

// SetAudio updates volume and mute flag together, for volumechange events.
func (s *Store) SetAudio(v float64, muted bool) {
	s.mutate(func(state *State) {
		state.Volume = clampVolume(v)
		state.Muted = muted
	})
}

func (s *Store) SetMuted(muted bool) {
	s.mutate(func(state *State) {
		state.Muted = muted
	})
}

func (s *Store) ToggleMute() {
	s.mutate(func(state *State) {
		state.Muted = !state.Muted
	})
}

// SetCurrentURL mounts a new source (or unmounts with ""). It rewinds
// CurrentTime, clears any error and moves to loading (or idle when
// unmounting), all before the first event from the new source can arrive.
func (s *Store) SetCurrentURL(url string, streamType capability.StreamType) {
	s.mutate(func(state *State) {
		state.CurrentURL = url
		state.StreamType = streamType
		state.CurrentTime = 0
		state.Err = nil
		if url != "" {
			state.Playback = player.StateLoading
		} else {
			state.Playback = player.StateIdle
		}
	})
}

func (s *Store) SetQualityTracks(tracks []player.QualityTrack) {
	s.mutate(func(state *State) {
		state.Qualities = append([]player.QualityTrack(nil), tracks...)
	})
}

// SelectQuality pins an explicit rendition, which always turns the automatic
// ladder off.
func (s *Store) SelectQuality(track *player.QualityTrack) {
	s.mutate(func(state *State) {
		state.SelectedQuality = track
		state.AutoQuality = track == nil
	})
}

// EnableAutoQuality re-enables the ladder and nulls the explicit selection.
func (s *Store) EnableAutoQuality() {
	s.mutate(func(state *State) {
		state.SelectedQuality = nil
		state.AutoQuality = true
	})
}

func (s *Store) SetAudioTracks(tracks []player.AudioTrack) {
	s.mutate(func(state *State) {
		state.AudioTracks = append([]player.AudioTrack(nil), tracks...)
	})
}

func (s *Store) SelectAudioTrack(track *player.AudioTrack) {
	s.mutate(func(state *State) {
		state.SelectedAudio = track
	})
}

func (s *Store) SetSubtitleTracks(tracks []player.SubtitleTrack) {
	s.mutate(func(state *State) {
		state.SubtitleTracks = append([]player.SubtitleTrack(nil), tracks...)
	})
}

func (s *Store) SelectSubtitleTrack(track *player.SubtitleTrack) {
	s.mutate(func(state *State) {
		state.SelectedSubtitle = track
	})
}

// SetAllTracks replaces the three track lists atomically, the tracksloaded
// contract.
func (s *Store) SetAllTracks(q []player.QualityTrack, a []player.AudioTrack, sub []player.SubtitleTrack) {
	s.mutate(func(state *State) {
		state.Qualities = append([]player.QualityTrack(nil), q...)
		state.AudioTracks = append([]player.AudioTrack(nil), a...)
		state.SubtitleTracks = append([]player.SubtitleTrack(nil), sub...)
	})
}

// SetError stores err and forces the error playback state. Clearing (nil)
// removes the error but does not by itself resume playback.
func (s *Store) SetError(err *player.Error) {
	s.mutate(func(state *State) {
		state.Err = err
		if err != nil {
			state.Playback = player.StateError
		} else if state.Playback == player.StateError {
			state.Playback = player.StateIdle
		}
	})
}

func (s *Store) ShowControls() {
	s.mutate(func(state *State) {
		state.ControlsVisible = true
	})
}

func (s *Store) HideControls() {
	s.mutate(func(state *State) {
		state.ControlsVisible = false
	})
}

func (s *Store) SetFullscreen(on bool) {
	s.mutate(func(state *State) {
		state.Fullscreen = on
	})
}

func (s *Store) ToggleFullscreen() {
	s.mutate(func(state *State) {
		state.Fullscreen = !state.Fullscreen
	})
}

func (s *Store) SetSeekable(seekable bool) {
	s.mutate(func(state *State) {
		state.Seekable = seekable
	})
}

// Reset restores every field to its documented default.
func (s *Store) Reset() {
	s.mutate(func(state *State) {
		*state = s.defaults()
	})
}

// --- derived queries ---

func (s *Store) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Playback == player.StatePlaying
}

func (s *Store) IsBuffering() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Playback == player.StateLoading || s.state.Playback == player.StateBuffering
}

func (s *Store) ProgressPercent() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Duration <= 0 {
		return 0
	}
	return s.state.CurrentTime / s.state.Duration * 100
}

func (s *Store) BufferPercent() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Duration <= 0 {
		return 0
	}
	return s.state.BufferedTime / s.state.Duration * 100
}

func (s *Store) VolumePercent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(math.Round(s.state.Volume * 100))
}

// CurrentQualityLabel names the pinned rendition, or "Auto" on the ladder.
func (s *Store) CurrentQualityLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AutoQuality || s.state.SelectedQuality == nil {
		return "Auto"
	}
	return s.state.SelectedQuality.Label
}
