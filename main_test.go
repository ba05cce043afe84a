// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"os"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

func TestMainWithoutTUI(t *testing.T) {
	// Mock osExit to prevent actual exit during test
	exitCalled := false
	osExit = func(code int) {
		exitCalled = true

		// 0 is the --help exit; 0x23420001 is the test mode exit before any
		// engine is touched
		if code != 0 && code != 0x23420001 {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := string(stackBuf[:stackSize])

			t.Fatalf("Unexpected exit with code: %d\nStack trace:\n%s\n", code, stackTrace)
		}
		// Since we don't abort execution here, we run main() until the end or a panic.
	}
	headlessMode = true
	testMode = true

	// Restore patches after the test
	defer func() {
		osExit = os.Exit
		headlessMode = false
		testMode = false
		viper.Reset()
	}()

	os.Args = []string{"cmd", "--config=tediptv-example.toml", "--help"}

	main()

	if !exitCalled {
		t.Fatalf("osExit was not called")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	missing := "does-not-exist.toml"

	assert.Error(t, readConfig(&missing))
}

func TestReadConfigRequiresChannels(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	f, err := os.CreateTemp(t.TempDir(), "tediptv-*.toml")
	require.NoError(t, err)
	_, err = f.WriteString("[player]\nautoplay = true\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	name := f.Name()
	assert.Error(t, readConfig(&name))
}

func TestLoadChannelsFillsDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("channels", []map[string]interface{}{
		{"name": "News", "url": "https://cdn.example.com/news.m3u8"},
		{"id": "vod", "name": "Movie", "url": "https://cdn.example.com/movie", "type": "mp4"},
	})

	channels, err := loadChannels()
	require.NoError(t, err)
	require.Len(t, channels, 2)

	assert.Equal(t, "ch-0", channels[0].ID)
	assert.Equal(t, capability.StreamHLS, channels[0].Type)

	assert.Equal(t, "vod", channels[1].ID)
	assert.Equal(t, capability.StreamMP4, channels[1].Type)
}

func TestLoadChannelsRejectsMissingURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("channels", []map[string]interface{}{
		{"id": "bad", "name": "No URL"},
	})

	_, err := loadChannels()
	assert.Error(t, err)
}

func TestSecondsToMinAndSec(t *testing.T) {
	min, sec := secondsToMinAndSec(125)
	assert.Equal(t, 2, min)
	assert.Equal(t, 5, sec)

	min, sec = secondsToMinAndSec(-3)
	assert.Zero(t, min)
	assert.Zero(t, sec)
}

func TestFormatPlayerStatus(t *testing.T) {
	snap := playback.State{
		Playback:    player.StatePlaying,
		Volume:      0.8,
		CurrentTime: 65,
		Duration:    600,
	}
	assert.Equal(t, "[playing][80%][01:05/10:00]", formatPlayerStatus(snap))

	snap.Live = true
	snap.Muted = true
	assert.Equal(t, "[playing][mut][LIVE]", formatPlayerStatus(snap))

	idle := playback.State{Playback: player.StateIdle, Volume: 1.0}
	assert.Equal(t, "[idle][100%][--:--]", formatPlayerStatus(idle))
}
