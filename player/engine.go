// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

// Engine is the black-box contract a concrete media backend must satisfy.
// Decoding, DRM, ABR and manifest handling all live behind it; the adapter
// only drives the controls and drains the event channel.
//
// Engines report failures as EventError on the channel; method errors cover
// only command dispatch itself.
type Engine interface {
	// Load opens the source. Track discovery completes asynchronously and is
	// announced with EventTracksLoaded.
	Load(url string, autoPlay bool) error

	Play() error
	Pause() error

	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64) error

	// SetVolume takes 0..1.
	SetVolume(v float64) error
	SetMuted(muted bool) error

	// SelectQuality pins a rendition by track id; the empty id re-enables the
	// automatic ladder.
	SelectQuality(id string) error
	SelectAudio(id string) error
	// SelectSubtitle with the empty id turns subtitles off.
	SelectSubtitle(id string) error

	// Events yields engine events in emission order. The channel is closed by
	// Close and never before.
	Events() <-chan Event

	// Close tears the engine down. Idempotent.
	Close() error
}

// EngineFactory builds the one engine an adapter will use for its lifetime.
type EngineFactory func(cfg Config) (Engine, error)
