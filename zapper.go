// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/GhouI/Ted-IPTV-Player-sub000/input"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
	"github.com/GhouI/Ted-IPTV-Player-sub000/remote"
)

// zapper walks the channel list and mounts channels on the controller. It is
// also the remote.ControlledPlayer the MPRIS surface drives, so desktop
// remotes and the TV remote share one action vocabulary.
type zapper struct {
	controller *playback.Controller
	logger     logger.LoggerInterface

	// set after MPRIS registration
	onChannelChange func(remote.ChannelInfo)
	// keeps the key mapper's zapping cursor in step
	onZap func(input.Channel)

	mu       sync.Mutex
	channels []input.Channel
	current  string
}

func newZapper(controller *playback.Controller, channels []input.Channel, lg logger.LoggerInterface) *zapper {
	return &zapper{
		controller: controller,
		logger:     lg,
		channels:   channels,
	}
}

// PlayChannel mounts ch and makes it the zapping cursor.
func (z *zapper) PlayChannel(ch input.Channel) {
	z.mu.Lock()
	z.current = ch.ID
	notify := z.onChannelChange
	onZap := z.onZap
	z.mu.Unlock()

	z.logger.Printf("zap: %s (%s)", ch.Name, ch.URL)
	if err := z.controller.Load(ch.URL); err != nil {
		z.logger.PrintError("zap load", err)
	}
	if notify != nil {
		notify(channelMeta{ch})
	}
	if onZap != nil {
		onZap(ch)
	}
}

func (z *zapper) step(delta int) {
	z.mu.Lock()
	list := z.channels
	current := z.current
	z.mu.Unlock()

	next, ok := input.Step(list, current, delta)
	if !ok {
		return
	}
	z.PlayChannel(next)
}

// remote.ControlledPlayer

func (z *zapper) PlayPause() {
	z.controller.TogglePlayPause()
}

func (z *zapper) Stop() {
	z.controller.Unload()
}

func (z *zapper) NextChannel() {
	z.step(+1)
}

func (z *zapper) PreviousChannel() {
	z.step(-1)
}

func (z *zapper) SeekBy(seconds float64) {
	z.controller.SeekBy(seconds)
}

func (z *zapper) SetVolume(v float64) {
	z.controller.SetVolume(v)
}

func (z *zapper) Volume() float64 {
	return z.controller.Snapshot().Volume
}

func (z *zapper) IsSeekable() bool {
	return z.controller.Snapshot().Seekable
}

// channelMeta adapts an input.Channel to the remote metadata interface.
type channelMeta struct {
	ch input.Channel
}

func (c channelMeta) GetID() string {
	return c.ch.ID
}

func (c channelMeta) GetName() string {
	return c.ch.Name
}

func (c channelMeta) IsValid() bool {
	return c.ch.ID != ""
}
