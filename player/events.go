// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import "github.com/GhouI/Ted-IPTV-Player-sub000/capability"

// EventType tags the closed union of events an adapter can emit. No other
// component may invent a new tag.
type EventType string

const (
	EventStateChange         EventType = "statechange"
	EventTimeUpdate          EventType = "timeupdate"
	EventDurationChange      EventType = "durationchange"
	EventVolumeChange        EventType = "volumechange"
	EventQualityChange       EventType = "qualitychange"
	EventAudioTrackChange    EventType = "audiotrackchange"
	EventSubtitleTrackChange EventType = "subtitletrackchange"
	EventTracksLoaded        EventType = "tracksloaded"
	EventBuffering           EventType = "buffering"
	EventError               EventType = "error"
	EventEnded               EventType = "ended"
)

// Event goes from an engine backend to whoever consumes the adapter. Data
// holds the payload struct matching Type, nil for EventEnded.
type Event struct {
	Type EventType
	Data interface{}
}

// payload for EventStateChange
type StateChangeData struct {
	Previous PlaybackState
	New      PlaybackState
}

// payload for EventTimeUpdate; both fields are seconds from stream start
type TimeUpdateData struct {
	CurrentTime  float64
	BufferedTime float64
}

// payload for EventDurationChange
type DurationChangeData struct {
	Duration float64
	Live     bool
}

// payload for EventVolumeChange
type VolumeChangeData struct {
	Volume float64
	Muted  bool
}

// payload for EventQualityChange; nil Track means the automatic ladder
type QualityChangeData struct {
	Track *QualityTrack
}

// payload for EventAudioTrackChange
type AudioTrackChangeData struct {
	Track *AudioTrack
}

// payload for EventSubtitleTrackChange; nil Track means subtitles off
type SubtitleTrackChangeData struct {
	Track *SubtitleTrack
}

// payload for EventTracksLoaded, the "source is ready" signal
type TracksLoadedData struct {
	StreamType     capability.StreamType
	Qualities      []QualityTrack
	AudioTracks    []AudioTrack
	SubtitleTracks []SubtitleTrack
}

// payload for EventBuffering
type BufferingData struct {
	Buffering bool
}

// payload for EventError
type ErrorData struct {
	Err *Error
}

// EventConsumer receives every event the adapter dispatches, in emission
// order. The store normalizer is the one consumer in this program.
type EventConsumer interface {
	SendEvent(event Event)
}
