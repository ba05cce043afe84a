// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"strconv"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
)

// streamEngine plays manifest-driven sources (HLS, DASH). It runs the same
// libmpv core as the native engine but with a streaming option profile, and
// it treats a missing duration as a live stream.
type streamEngine struct {
	*mpvCore
}

// NewStreamEngine builds the manifest-aware engine for the given stream type.
func NewStreamEngine(streamType capability.StreamType, cfg Config, lg logger.LoggerInterface) (Engine, error) {
	options := map[string]string{
		"ytdl":                   "no",
		"cache":                  "yes",
		"demuxer-readahead-secs": strconv.Itoa(cfg.BufferSize),
	}
	if cfg.LowLatencyMode {
		// trade buffer depth for glass-to-glass latency on live channels
		options["cache"] = "no"
		options["demuxer-readahead-secs"] = "1"
		options["untimed"] = "yes"
	}

	core, err := newMpvCore(cfg, lg, options)
	if err != nil {
		return nil, err
	}
	core.streamType = streamType
	core.assumeLive = true
	return &streamEngine{core}, nil
}
