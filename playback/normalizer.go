// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// Normalizer is the one consumer of adapter events. Every event maps to one
// deterministic store mutation, applied synchronously and in emission order;
// error events detour through the retry policy first.
type Normalizer struct {
	store  *Store
	policy *RetryPolicy
	logger logger.LoggerInterface
}

func NewNormalizer(store *Store, policy *RetryPolicy, lg logger.LoggerInterface) *Normalizer {
	return &Normalizer{
		store:  store,
		policy: policy,
		logger: lg,
	}
}

// SendEvent implements player.EventConsumer. No handler does I/O; these are
// pure state transitions.
func (n *Normalizer) SendEvent(ev player.Event) {
	switch ev.Type {
	case player.EventStateChange:
		data, ok := ev.Data.(player.StateChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		// entering playing also clears any stale buffering indicator, since
		// buffering rides the same discriminator
		n.store.SetPlaybackState(data.New)

	case player.EventTimeUpdate:
		data, ok := ev.Data.(player.TimeUpdateData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SetProgress(data.CurrentTime, data.BufferedTime)

	case player.EventDurationChange:
		data, ok := ev.Data.(player.DurationChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SetDuration(data.Duration, data.Live)

	case player.EventVolumeChange:
		data, ok := ev.Data.(player.VolumeChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SetAudio(data.Volume, data.Muted)

	case player.EventQualityChange:
		data, ok := ev.Data.(player.QualityChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		if data.Track == nil {
			n.store.EnableAutoQuality()
		} else {
			n.store.SelectQuality(data.Track)
		}

	case player.EventAudioTrackChange:
		data, ok := ev.Data.(player.AudioTrackChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SelectAudioTrack(data.Track)

	case player.EventSubtitleTrackChange:
		data, ok := ev.Data.(player.SubtitleTrackChangeData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SelectSubtitleTrack(data.Track)

	case player.EventTracksLoaded:
		data, ok := ev.Data.(player.TracksLoadedData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.store.SetAllTracks(data.Qualities, data.AudioTracks, data.SubtitleTracks)
		// the ready signal: a load made it through, the retry budget resets
		n.policy.NotifyLoaded()

	case player.EventBuffering:
		data, ok := ev.Data.(player.BufferingData)
		if !ok {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		if data.Buffering {
			n.store.SetPlaybackState(player.StateBuffering)
		} else {
			n.store.SetPlaybackState(player.StatePlaying)
		}

	case player.EventError:
		data, ok := ev.Data.(player.ErrorData)
		if !ok || data.Err == nil {
			n.logger.Printf("normalizer: bad %s payload %T", ev.Type, ev.Data)
			return
		}
		n.policy.HandleError(data.Err)

	case player.EventEnded:
		n.store.SetPlaybackState(player.StateEnded)

	default:
		n.logger.Printf("normalizer: unhandled event %s", ev.Type)
	}
}
