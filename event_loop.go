// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// runEventLoop pumps log lines and store snapshots until quit closes. The
// real front end renders the store; this shell prints a status line whenever
// something the status line shows has changed.
func runEventLoop(controller *playback.Controller, logger *logger.Logger, quit <-chan struct{}) {
	updates := make(chan playback.State, 16)
	unsubscribe := controller.Store().Subscribe(func(s playback.State) {
		select {
		case updates <- s:
		default:
			// the loop is behind; it will catch the next snapshot
		}
	})
	defer unsubscribe()

	var lastStatus string
	throttle := time.NewTicker(500 * time.Millisecond)
	defer throttle.Stop()
	var pending *playback.State

	for {
		select {
		case <-quit:
			return

		case msg := <-logger.Prints:
			fmt.Fprintln(os.Stderr, msg)

		case snap := <-updates:
			pending = &snap

		case <-throttle.C:
			if pending == nil {
				continue
			}
			status := formatPlayerStatus(*pending)
			if pending.Playback == player.StateError && pending.Err != nil {
				errStatus := controller.ErrorStatus()
				if errStatus.IsRetrying {
					status += fmt.Sprintf(" reconnecting %d/%d", errStatus.RetryCount, errStatus.MaxRetries)
				} else if errStatus.MaxRetriesReached {
					status += fmt.Sprintf(" gave up after %d attempts", errStatus.RetryCount)
				}
			}
			if status != lastStatus {
				fmt.Println(status)
				lastStatus = status
			}
			pending = nil
		}
	}
}
