// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"math"

	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
)

func secondsToMinAndSec(seconds float64) (int, int) {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(math.Floor(seconds / 60))
	remainingSeconds := int(seconds) % 60
	return minutes, remainingSeconds
}

func formatPlayerStatus(snap playback.State) string {
	positionMin, positionSec := secondsToMinAndSec(snap.CurrentTime)

	clock := "--:--"
	if snap.Live {
		clock = "LIVE"
	} else if snap.Duration > 0 {
		durationMin, durationSec := secondsToMinAndSec(snap.Duration)
		clock = fmt.Sprintf("%02d:%02d/%02d:%02d", positionMin, positionSec, durationMin, durationSec)
	}

	volume := fmt.Sprintf("%d%%", int(math.Round(snap.Volume*100)))
	if snap.Muted {
		volume = "mut"
	}

	return fmt.Sprintf("[%s][%s][%s]", snap.Playback, volume, clock)
}
