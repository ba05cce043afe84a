// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package player

import (
	"fmt"
	"strconv"
	"sync"

	mpv "github.com/supersonic-app/go-mpv"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
)

// mpvCore drives one libmpv instance and translates its callbacks into the
// closed Event union. Both concrete engines share it; they differ only in the
// option profile handed to the instance and in live-stream bias.
type mpvCore struct {
	instance  *mpv.Mpv
	mpvEvents chan *mpv.Event
	out       chan Event
	logger    logger.LoggerInterface
	cfg       Config

	streamType capability.StreamType
	assumeLive bool

	mu     sync.Mutex
	closed bool

	// last observed values, so property-change floods collapse into the
	// transitions downstream actually cares about
	state      PlaybackState
	loaded     bool
	stopping   bool
	lastVolume float64
	lastMuted  bool
}

func newMpvCore(cfg Config, lg logger.LoggerInterface, options map[string]string) (*mpvCore, error) {
	instance := mpv.Create()

	base := map[string]string{
		"input-default-bindings": "no",
		"osc":                    "no",
		"keep-open":              "no",
	}
	for k, v := range options {
		base[k] = v
	}
	for k, v := range base {
		if err := instance.SetOptionString(k, v); err != nil {
			instance.TerminateDestroy()
			return nil, fmt.Errorf("mpv option %s: %w", k, err)
		}
	}

	if err := instance.Initialize(); err != nil {
		instance.TerminateDestroy()
		return nil, err
	}

	c := &mpvCore{
		instance:   instance,
		mpvEvents:  make(chan *mpv.Event),
		out:        make(chan Event, 64),
		logger:     lg,
		cfg:        cfg,
		state:      StateIdle,
		lastVolume: cfg.InitialVolume,
		lastMuted:  cfg.StartMuted,
	}

	if err := c.instance.SetProperty("volume", mpv.FORMAT_DOUBLE, cfg.InitialVolume*100); err != nil {
		lg.PrintError("mpv set volume", err)
	}
	if err := c.instance.SetProperty("mute", mpv.FORMAT_FLAG, cfg.StartMuted); err != nil {
		lg.PrintError("mpv set mute", err)
	}

	go c.pumpEngineEvents(instance)
	go c.eventLoop()
	return c, nil
}

// pumpEngineEvents relays libmpv's wait loop into a channel we can select on.
func (c *mpvCore) pumpEngineEvents(instance *mpv.Mpv) {
	for {
		evt := instance.WaitEvent(1)
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}
		c.mpvEvents <- evt
	}
}

func (c *mpvCore) eventLoop() {
	observed := []struct {
		name   string
		format mpv.Format
	}{
		{"playback-time", mpv.FORMAT_DOUBLE},
		{"demuxer-cache-time", mpv.FORMAT_DOUBLE},
		{"volume", mpv.FORMAT_DOUBLE},
		{"mute", mpv.FORMAT_FLAG},
		{"pause", mpv.FORMAT_FLAG},
		{"paused-for-cache", mpv.FORMAT_FLAG},
	}
	for i, o := range observed {
		if err := c.instance.ObserveProperty(uint64(i), o.name, o.format); err != nil {
			c.logger.PrintError("mpv observe "+o.name, err)
		}
	}

	for evt := range c.mpvEvents {
		if evt == nil {
			// quit signal
			break
		}

		switch evt.Event_Id {
		case mpv.EVENT_START_FILE:
			c.setState(StateLoading)

		case mpv.EVENT_FILE_LOADED:
			c.onFileLoaded()

		case mpv.EVENT_PROPERTY_CHANGE:
			c.onPropertyChange()

		case mpv.EVENT_END_FILE:
			c.onEndFile()

		case mpv.EVENT_IDLE, mpv.EVENT_NONE:
			continue

		default:
			continue
		}
	}

	close(c.out)
}

func (c *mpvCore) onFileLoaded() {
	duration := c.getFloat("duration")
	live := duration <= 0 && c.assumeLive
	c.emit(Event{Type: EventDurationChange, Data: DurationChangeData{Duration: duration, Live: live}})

	tracks := c.readTrackList()
	tracks.StreamType = c.streamType
	c.applyPreferredTracks(tracks)
	c.emit(Event{Type: EventTracksLoaded, Data: tracks})

	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()

	if c.getFlag("pause") {
		c.setState(StatePaused)
	} else {
		c.setState(StatePlaying)
	}
}

func (c *mpvCore) onPropertyChange() {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if !loaded {
		return
	}

	position := c.getFloat("playback-time")
	buffered := c.getFloat("demuxer-cache-time")
	c.emit(Event{Type: EventTimeUpdate, Data: TimeUpdateData{CurrentTime: position, BufferedTime: buffered}})

	volume := c.getFloat("volume") / 100
	muted := c.getFlag("mute")
	c.mu.Lock()
	volumeChanged := volume != c.lastVolume || muted != c.lastMuted
	c.lastVolume, c.lastMuted = volume, muted
	c.mu.Unlock()
	if volumeChanged {
		c.emit(Event{Type: EventVolumeChange, Data: VolumeChangeData{Volume: volume, Muted: muted}})
	}

	if c.getFlag("paused-for-cache") {
		if c.currentState() != StateBuffering {
			c.emit(Event{Type: EventBuffering, Data: BufferingData{Buffering: true}})
			c.rememberState(StateBuffering)
		}
		return
	}
	if c.currentState() == StateBuffering {
		c.emit(Event{Type: EventBuffering, Data: BufferingData{Buffering: false}})
		c.rememberState(StatePlaying)
		return
	}

	if c.getFlag("pause") {
		c.setState(StatePaused)
	} else {
		c.setState(StatePlaying)
	}
}

func (c *mpvCore) onEndFile() {
	c.mu.Lock()
	stopping := c.stopping
	c.loaded = false
	c.mu.Unlock()
	if stopping {
		return
	}

	if c.getFlag("eof-reached") {
		c.emit(Event{Type: EventEnded})
		c.setState(StateEnded)
		return
	}

	// The file ended without reaching EOF: the transport dropped underneath
	// us. libmpv does not report a cause through this binding, so classify it
	// as a transient network failure and let the retry policy decide.
	c.emit(Event{Type: EventError, Data: ErrorData{
		Err: NewError(ErrNetwork, "stream ended unexpectedly", true, nil),
	}})
}

func (c *mpvCore) setState(s PlaybackState) {
	c.mu.Lock()
	prev := c.state
	if prev == s {
		c.mu.Unlock()
		return
	}
	c.state = s
	c.mu.Unlock()
	c.emit(Event{Type: EventStateChange, Data: StateChangeData{Previous: prev, New: s}})
}

func (c *mpvCore) rememberState(s PlaybackState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *mpvCore) currentState() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *mpvCore) emit(ev Event) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	select {
	case c.out <- ev:
	default:
		c.logger.Printf("mpv: dropping %s event, consumer too slow", ev.Type)
	}
}

func (c *mpvCore) Load(url string, autoPlay bool) error {
	c.mu.Lock()
	c.stopping = false
	c.loaded = false
	c.mu.Unlock()
	if err := c.instance.SetProperty("pause", mpv.FORMAT_FLAG, !autoPlay); err != nil {
		return err
	}
	return c.instance.Command([]string{"loadfile", url})
}

func (c *mpvCore) Play() error {
	return c.instance.SetProperty("pause", mpv.FORMAT_FLAG, false)
}

func (c *mpvCore) Pause() error {
	return c.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

func (c *mpvCore) Seek(seconds float64) error {
	return c.instance.Command([]string{"seek", strconv.FormatFloat(seconds, 'f', 3, 64), "absolute"})
}

func (c *mpvCore) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return c.instance.SetProperty("volume", mpv.FORMAT_DOUBLE, v*100)
}

func (c *mpvCore) SetMuted(muted bool) error {
	return c.instance.SetProperty("mute", mpv.FORMAT_FLAG, muted)
}

func (c *mpvCore) SelectQuality(id string) error {
	if id == "" {
		id = "auto"
	}
	return c.instance.SetPropertyString("vid", id)
}

func (c *mpvCore) SelectAudio(id string) error {
	if id == "" {
		id = "auto"
	}
	return c.instance.SetPropertyString("aid", id)
}

func (c *mpvCore) SelectSubtitle(id string) error {
	if id == "" {
		id = "no"
	}
	return c.instance.SetPropertyString("sid", id)
}

func (c *mpvCore) Events() <-chan Event {
	return c.out
}

func (c *mpvCore) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopping = true
	c.mu.Unlock()

	c.mpvEvents <- nil
	c.instance.TerminateDestroy()
	return nil
}

// nativeEngine plays progressive sources (mp4 and friends) straight off the
// demuxer with default caching.
type nativeEngine struct {
	*mpvCore
}

// NewNativeEngine builds the progressive-download engine.
func NewNativeEngine(cfg Config, lg logger.LoggerInterface) (Engine, error) {
	core, err := newMpvCore(cfg, lg, map[string]string{
		"cache": "auto",
	})
	if err != nil {
		return nil, err
	}
	core.streamType = capability.StreamMP4
	return &nativeEngine{core}, nil
}

// property read helpers; libmpv hands back nil for properties that do not
// apply yet, which downstream treats as zero values

func (c *mpvCore) getFloat(name string) float64 {
	v, err := c.instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil || v == nil {
		return 0
	}
	return v.(float64)
}

func (c *mpvCore) getInt(name string) int64 {
	v, err := c.instance.GetProperty(name, mpv.FORMAT_INT64)
	if err != nil || v == nil {
		return 0
	}
	return v.(int64)
}

func (c *mpvCore) getFlag(name string) bool {
	v, err := c.instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil || v == nil {
		return false
	}
	return v.(bool)
}

func (c *mpvCore) getString(name string) string {
	v, err := c.instance.GetProperty(name, mpv.FORMAT_STRING)
	if err != nil || v == nil {
		return ""
	}
	return v.(string)
}
