// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package input

import "github.com/GhouI/Ted-IPTV-Player-sub000/capability"

// Channel is one entry of the caller's filtered channel list. IDs are stable;
// ordering is the zapping order.
type Channel struct {
	ID   string
	Name string
	URL  string
	Type capability.StreamType
}

// Step walks delta positions through list from the channel with currentID,
// wrapping at both ends. The second return is false when currentID is not in
// the list, in which case stepping does nothing.
func Step(list []Channel, currentID string, delta int) (Channel, bool) {
	n := len(list)
	if n == 0 {
		return Channel{}, false
	}

	current := -1
	for i, ch := range list {
		if ch.ID == currentID {
			current = i
			break
		}
	}
	if current < 0 {
		return Channel{}, false
	}

	next := (current + delta) % n
	if next < 0 {
		next += n
	}
	return list[next], true
}
