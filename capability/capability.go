// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package capability describes what the host environment can stream and
// decode. The descriptor is probed once at startup and treated as immutable;
// the player adapter uses it to pick a concrete engine.
package capability

import (
	"net/url"
	"path"
	"strings"
)

// StreamType is the transport/container of a source URL.
type StreamType string

const (
	StreamHLS     StreamType = "hls"
	StreamDASH    StreamType = "dash"
	StreamMP4     StreamType = "mp4"
	StreamUnknown StreamType = "unknown"
)

func (t StreamType) String() string {
	return string(t)
}

// Descriptor lists the stream formats and decode codecs the host supports.
type Descriptor struct {
	Streaming   map[StreamType]bool
	VideoCodecs []string
	AudioCodecs []string
}

// Probe returns the capabilities of the local mpv-backed playback stack.
// libmpv demuxes HLS and DASH manifests itself and decodes through ffmpeg,
// so the table is static for this build.
func Probe() Descriptor {
	return Descriptor{
		Streaming: map[StreamType]bool{
			StreamHLS:  true,
			StreamDASH: true,
			StreamMP4:  true,
		},
		VideoCodecs: []string{"h264", "hevc", "vp9", "av1", "mpeg2video"},
		AudioCodecs: []string{"aac", "ac3", "eac3", "mp3", "opus", "flac"},
	}
}

func (d Descriptor) SupportsStream(t StreamType) bool {
	return d.Streaming[t]
}

// SupportsVideoCodec returns true if the codec can be decoded. An empty codec
// list means no restriction.
func (d Descriptor) SupportsVideoCodec(codec string) bool {
	return supportsCodec(d.VideoCodecs, codec)
}

func (d Descriptor) SupportsAudioCodec(codec string) bool {
	return supportsCodec(d.AudioCodecs, codec)
}

func supportsCodec(accepted []string, codec string) bool {
	if len(accepted) == 0 {
		return true
	}
	codec = strings.ToLower(codec)
	for _, c := range accepted {
		if c == codec {
			return true
		}
	}
	return false
}

// DetectStreamType classifies a source URL by its path extension.
func DetectStreamType(rawURL string) StreamType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return StreamUnknown
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u8", ".m3u":
		return StreamHLS
	case ".mpd":
		return StreamDASH
	case ".mp4", ".m4v", ".mov":
		return StreamMP4
	}

	// query-string hints used by some IPTV providers
	q := strings.ToLower(u.RawQuery)
	if strings.Contains(q, "format=m3u8") {
		return StreamHLS
	}
	if strings.Contains(q, "format=mpd") {
		return StreamDASH
	}

	return StreamUnknown
}
