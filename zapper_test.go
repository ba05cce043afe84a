// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhouI/Ted-IPTV-Player-sub000/input"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
	"github.com/GhouI/Ted-IPTV-Player-sub000/remote"
)

type quietLogger struct{}

func (quietLogger) Print(string)                  {}
func (quietLogger) Printf(string, ...interface{}) {}
func (quietLogger) PrintError(string, error)      {}

// recordingAdapter satisfies playback.Player and records load calls.
type recordingAdapter struct {
	loads []string
}

func (a *recordingAdapter) Load(url string, autoPlay bool) error {
	a.loads = append(a.loads, url)
	return nil
}

func (a *recordingAdapter) Play() error                                  { return nil }
func (a *recordingAdapter) Pause() error                                 { return nil }
func (a *recordingAdapter) Seek(float64) error                           { return nil }
func (a *recordingAdapter) SetVolume(float64) error                      { return nil }
func (a *recordingAdapter) Mute() error                                  { return nil }
func (a *recordingAdapter) Unmute() error                                { return nil }
func (a *recordingAdapter) SetQuality(*player.QualityTrack) error        { return nil }
func (a *recordingAdapter) SetAudioTrack(*player.AudioTrack) error       { return nil }
func (a *recordingAdapter) SetSubtitleTrack(*player.SubtitleTrack) error { return nil }
func (a *recordingAdapter) RegisterEventConsumer(player.EventConsumer)   {}
func (a *recordingAdapter) Destroy() error                               { return nil }

func zapperChannels() []input.Channel {
	return []input.Channel{
		{ID: "a", Name: "Alpha", URL: "https://cdn.example.com/a.m3u8"},
		{ID: "b", Name: "Beta", URL: "https://cdn.example.com/b.m3u8"},
		{ID: "c", Name: "Gamma", URL: "https://cdn.example.com/c.m3u8"},
	}
}

func newTestZapper(t *testing.T) (*zapper, *recordingAdapter) {
	t.Helper()
	adapter := &recordingAdapter{}
	controller := playback.NewController(adapter, player.DefaultConfig(), quietLogger{})
	t.Cleanup(controller.Destroy)
	return newZapper(controller, zapperChannels(), quietLogger{}), adapter
}

func TestPlayChannelLoadsAndNotifies(t *testing.T) {
	z, adapter := newTestZapper(t)
	var meta remote.ChannelInfo
	var zapped []string
	z.onChannelChange = func(info remote.ChannelInfo) { meta = info }
	z.onZap = func(ch input.Channel) { zapped = append(zapped, ch.ID) }

	z.PlayChannel(zapperChannels()[1])

	assert.Equal(t, []string{"https://cdn.example.com/b.m3u8"}, adapter.loads)
	require.NotNil(t, meta)
	assert.Equal(t, "b", meta.GetID())
	assert.Equal(t, "Beta", meta.GetName())
	assert.True(t, meta.IsValid())
	assert.Equal(t, []string{"b"}, zapped)
}

func TestChannelSteppingWraps(t *testing.T) {
	z, adapter := newTestZapper(t)
	z.PlayChannel(zapperChannels()[2])

	z.NextChannel() // wraps from last to first
	z.PreviousChannel()

	assert.Equal(t, []string{
		"https://cdn.example.com/c.m3u8",
		"https://cdn.example.com/a.m3u8",
		"https://cdn.example.com/c.m3u8",
	}, adapter.loads)
}

func TestStopUnloads(t *testing.T) {
	z, _ := newTestZapper(t)
	z.PlayChannel(zapperChannels()[0])

	z.Stop()

	snap := z.controller.Snapshot()
	assert.Empty(t, snap.CurrentURL)
	assert.Equal(t, player.StateIdle, snap.Playback)
}

func TestVolumeAndSeekableMirrorStore(t *testing.T) {
	z, _ := newTestZapper(t)

	z.SetVolume(0.4)
	assert.Equal(t, 0.4, z.Volume())

	assert.False(t, z.IsSeekable())
	z.controller.Store().SetDuration(600, false)
	assert.True(t, z.IsSeekable())
}
