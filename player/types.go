// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

// PlaybackState is the single discriminator of what the player is doing.
// Exactly one value holds at any instant.
type PlaybackState string

const (
	StateIdle      PlaybackState = "idle"
	StateLoading   PlaybackState = "loading"
	StateBuffering PlaybackState = "buffering"
	StatePlaying   PlaybackState = "playing"
	StatePaused    PlaybackState = "paused"
	StateEnded     PlaybackState = "ended"
	StateError     PlaybackState = "error"
)

func (s PlaybackState) String() string {
	return string(s)
}

// QualityTrack is one selectable video rendition offered by the source.
// The list handed out at load time is immutable; a new load replaces it.
type QualityTrack struct {
	ID        string
	Label     string
	Height    int
	Width     int
	Bitrate   int
	Codec     string
	FrameRate float64
}

// AudioTrack is one selectable audio rendition.
type AudioTrack struct {
	ID       string
	Label    string
	Language string
	Channels int
	Codec    string
	Bitrate  int
}

// SubtitleTrack is one selectable subtitle rendition.
type SubtitleTrack struct {
	ID            string
	Label         string
	Language      string
	ClosedCaption bool
	MimeType      string
}
