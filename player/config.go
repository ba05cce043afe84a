// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries the tunables of a player instance. All fields have
// working defaults; see DefaultConfig.
type Config struct {
	InitialVolume float64
	StartMuted    bool
	AutoPlay      bool

	// PreferredQuality is a rendition height (720, 1080, ...); 0 selects the
	// automatic ladder.
	PreferredQuality          int
	PreferredAudioLanguage    string
	PreferredSubtitleLanguage string

	// BufferSize is the demuxer readahead in seconds.
	BufferSize int

	RetryAttempts int
	RetryDelay    time.Duration

	LowLatencyMode bool
}

func DefaultConfig() Config {
	return Config{
		InitialVolume:             1.0,
		StartMuted:                false,
		AutoPlay:                  false,
		PreferredQuality:          0,
		PreferredAudioLanguage:    "en",
		PreferredSubtitleLanguage: "",
		BufferSize:                30,
		RetryAttempts:             3,
		RetryDelay:                1000 * time.Millisecond,
		LowLatencyMode:            false,
	}
}

// ConfigFromViper reads the player table from the loaded configuration,
// falling back to defaults for unset keys and clamping out-of-range values.
func ConfigFromViper() Config {
	cfg := DefaultConfig()

	if viper.IsSet("player.initial-volume") {
		cfg.InitialVolume = viper.GetFloat64("player.initial-volume")
	}
	if cfg.InitialVolume < 0 {
		cfg.InitialVolume = 0
	} else if cfg.InitialVolume > 1 {
		cfg.InitialVolume = 1
	}

	if viper.IsSet("player.start-muted") {
		cfg.StartMuted = viper.GetBool("player.start-muted")
	}
	if viper.IsSet("player.autoplay") {
		cfg.AutoPlay = viper.GetBool("player.autoplay")
	}
	if viper.IsSet("player.preferred-quality") {
		// "auto" and 0 both select the automatic ladder
		if viper.GetString("player.preferred-quality") != "auto" {
			cfg.PreferredQuality = viper.GetInt("player.preferred-quality")
		}
	}
	if viper.IsSet("player.audio-language") {
		cfg.PreferredAudioLanguage = viper.GetString("player.audio-language")
	}
	if viper.IsSet("player.subtitle-language") {
		cfg.PreferredSubtitleLanguage = viper.GetString("player.subtitle-language")
	}
	if viper.IsSet("player.buffer-size") {
		if n := viper.GetInt("player.buffer-size"); n > 0 {
			cfg.BufferSize = n
		}
	}
	if viper.IsSet("player.retry-attempts") {
		if n := viper.GetInt("player.retry-attempts"); n >= 0 {
			cfg.RetryAttempts = n
		}
	}
	if viper.IsSet("player.retry-delay") {
		if ms := viper.GetInt("player.retry-delay"); ms > 0 {
			cfg.RetryDelay = time.Duration(ms) * time.Millisecond
		}
	}
	if viper.IsSet("player.low-latency") {
		cfg.LowLatencyMode = viper.GetBool("player.low-latency")
	}

	return cfg
}
