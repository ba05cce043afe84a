// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"fmt"
	"strconv"
)

// readTrackList walks mpv's track-list property and buckets the entries into
// the three rendition lists.
func (c *mpvCore) readTrackList() TracksLoadedData {
	var data TracksLoadedData

	count := c.getInt("track-list/count")
	for i := int64(0); i < count; i++ {
		prefix := fmt.Sprintf("track-list/%d/", i)
		id := strconv.FormatInt(c.getInt(prefix+"id"), 10)
		title := c.getString(prefix + "title")
		lang := c.getString(prefix + "lang")
		codec := c.getString(prefix + "codec")

		switch c.getString(prefix + "type") {
		case "video":
			height := int(c.getInt(prefix + "demux-h"))
			label := title
			if label == "" && height > 0 {
				label = fmt.Sprintf("%dp", height)
			}
			if label == "" {
				label = "Video " + id
			}
			data.Qualities = append(data.Qualities, QualityTrack{
				ID:        id,
				Label:     label,
				Height:    height,
				Width:     int(c.getInt(prefix + "demux-w")),
				Bitrate:   int(c.getInt(prefix + "demux-bitrate")),
				Codec:     codec,
				FrameRate: c.getFloat(prefix + "demux-fps"),
			})

		case "audio":
			label := title
			if label == "" {
				label = lang
			}
			if label == "" {
				label = "Audio " + id
			}
			data.AudioTracks = append(data.AudioTracks, AudioTrack{
				ID:       id,
				Label:    label,
				Language: lang,
				Channels: int(c.getInt(prefix + "demux-channel-count")),
				Codec:    codec,
				Bitrate:  int(c.getInt(prefix + "demux-bitrate")),
			})

		case "sub":
			label := title
			if label == "" {
				label = lang
			}
			if label == "" {
				label = "Subtitles " + id
			}
			data.SubtitleTracks = append(data.SubtitleTracks, SubtitleTrack{
				ID:       id,
				Label:    label,
				Language: lang,
				MimeType: codec,
			})
		}
	}

	return data
}

// applyPreferredTracks pins the configured audio/subtitle languages and
// rendition height after track discovery. Selection changes echo back through
// the normal property machinery, so no events are emitted here.
func (c *mpvCore) applyPreferredTracks(tracks TracksLoadedData) {
	if lang := c.cfg.PreferredAudioLanguage; lang != "" {
		for _, t := range tracks.AudioTracks {
			if t.Language == lang {
				if err := c.SelectAudio(t.ID); err != nil {
					c.logger.PrintError("select audio", err)
				}
				break
			}
		}
	}

	if lang := c.cfg.PreferredSubtitleLanguage; lang != "" {
		for _, t := range tracks.SubtitleTracks {
			if t.Language == lang {
				if err := c.SelectSubtitle(t.ID); err != nil {
					c.logger.PrintError("select subtitle", err)
				}
				break
			}
		}
	}

	if h := c.cfg.PreferredQuality; h > 0 {
		for _, t := range tracks.Qualities {
			if t.Height == h {
				if err := c.SelectQuality(t.ID); err != nil {
					c.logger.PrintError("select quality", err)
				}
				break
			}
		}
	}
}
