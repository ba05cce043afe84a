// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStreamType(t *testing.T) {
	cases := []struct {
		url  string
		want StreamType
	}{
		{"https://x/stream.m3u8", StreamHLS},
		{"https://x/live/channel.m3u", StreamHLS},
		{"https://x/vod/movie.mpd", StreamDASH},
		{"https://x/vod/movie.mp4", StreamMP4},
		{"https://x/vod/clip.m4v", StreamMP4},
		{"https://x/play?id=5&format=m3u8", StreamHLS},
		{"https://x/play?id=5&format=mpd", StreamDASH},
		{"https://x/play?id=5", StreamUnknown},
		{"://bad url", StreamUnknown},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, DetectStreamType(c.url), c.url)
	}
}

func TestProbeSupportsCommonFormats(t *testing.T) {
	d := Probe()

	assert.True(t, d.SupportsStream(StreamHLS))
	assert.True(t, d.SupportsStream(StreamDASH))
	assert.True(t, d.SupportsStream(StreamMP4))
	assert.False(t, d.SupportsStream(StreamUnknown))
}

func TestCodecAcceptance(t *testing.T) {
	d := Probe()

	assert.True(t, d.SupportsVideoCodec("h264"))
	assert.True(t, d.SupportsVideoCodec("HEVC"))
	assert.False(t, d.SupportsVideoCodec("wmv3"))
	assert.True(t, d.SupportsAudioCodec("aac"))

	// empty codec list means no restriction
	open := Descriptor{}
	assert.True(t, open.SupportsVideoCodec("anything"))
}
