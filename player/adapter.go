// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package player wraps exactly one media engine behind a fixed control and
// event contract. The engine is chosen once, at Initialize, from the
// capability descriptor and the requested stream type; it is never swapped
// for the lifetime of the adapter.
package player

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
)

var (
	ErrNotInitialized = errors.New("player: adapter not initialized")
	ErrDestroyed      = errors.New("player: adapter destroyed")
)

// SelectEngine builds the engine variant for a stream type.
type SelectEngine func(streamType capability.StreamType, cfg Config) (Engine, error)

type listenerEntry struct {
	eventType EventType
	fn        func(Event)
}

// Adapter is the capability-polymorphic wrapper around one concrete engine.
type Adapter struct {
	logger       logger.LoggerInterface
	caps         capability.Descriptor
	selectEngine SelectEngine

	mu           sync.Mutex
	cfg          Config
	engine       Engine
	streamType   capability.StreamType
	currentURL   string
	state        PlaybackState
	initialized  bool
	destroyed    bool
	consumer     EventConsumer
	listeners    map[int]listenerEntry
	nextListener int
	dispatchDone chan struct{}
}

// Option tunes adapter construction.
type Option func(*Adapter)

// WithEngineSelector replaces the default capability-keyed engine factory.
func WithEngineSelector(sel SelectEngine) Option {
	return func(a *Adapter) { a.selectEngine = sel }
}

func NewAdapter(caps capability.Descriptor, lg logger.LoggerInterface, opts ...Option) *Adapter {
	a := &Adapter{
		logger:    lg,
		caps:      caps,
		state:     StateIdle,
		listeners: make(map[int]listenerEntry),
	}
	a.selectEngine = a.defaultSelect
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) defaultSelect(streamType capability.StreamType, cfg Config) (Engine, error) {
	switch streamType {
	case capability.StreamHLS, capability.StreamDASH:
		return NewStreamEngine(streamType, cfg, a.logger)
	default:
		// progressive sources and unclassified URLs go to the native engine,
		// which probes the container itself
		return NewNativeEngine(cfg, a.logger)
	}
}

// Initialize picks and boots the engine. A failure is surfaced both as the
// returned error and as a synthetic error event, so the retry policy has one
// entry point for every failure mode.
func (a *Adapter) Initialize(cfg Config, streamType capability.StreamType) error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return ErrDestroyed
	}
	if a.initialized {
		a.mu.Unlock()
		return errors.New("player: adapter already initialized")
	}
	a.mu.Unlock()

	if streamType != capability.StreamUnknown && !a.caps.SupportsStream(streamType) {
		err := fmt.Errorf("stream type %s not supported by this host", streamType)
		a.syntheticError(ErrSourceNotSupported, err.Error(), false, nil)
		return err
	}

	engine, err := a.selectEngine(streamType, cfg)
	if err != nil {
		a.syntheticError(ErrUnknown, "engine initialization failed", false, err)
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.engine = engine
	a.streamType = streamType
	a.initialized = true
	a.dispatchDone = make(chan struct{})
	a.mu.Unlock()

	go a.dispatchLoop(engine, a.dispatchDone)
	return nil
}

func (a *Adapter) dispatchLoop(engine Engine, done chan struct{}) {
	defer close(done)
	for ev := range engine.Events() {
		a.dispatch(ev)
	}
}

// dispatch fans one event out to the consumer and the per-type listeners.
// After Destroy it silently drops everything, including events the engine
// emits during its own teardown.
func (a *Adapter) dispatch(ev Event) {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	if ev.Type == EventStateChange {
		if data, ok := ev.Data.(StateChangeData); ok {
			a.state = data.New
		}
	}
	consumer := a.consumer
	var fns []func(Event)
	for _, l := range a.listeners {
		if l.eventType == ev.Type {
			fns = append(fns, l.fn)
		}
	}
	a.mu.Unlock()

	if consumer != nil {
		consumer.SendEvent(ev)
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func (a *Adapter) syntheticError(code ErrorCode, message string, recoverable bool, cause error) {
	a.dispatch(Event{Type: EventError, Data: ErrorData{
		Err: NewError(code, message, recoverable, cause),
	}})
}

// RegisterEventConsumer sets the single ordered consumer of all events. The
// store normalizer registers here.
func (a *Adapter) RegisterEventConsumer(consumer EventConsumer) {
	a.mu.Lock()
	a.consumer = consumer
	a.mu.Unlock()
}

// AddEventListener subscribes fn to one event type and returns a handle for
// removal.
func (a *Adapter) AddEventListener(eventType EventType, fn func(Event)) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextListener++
	a.listeners[a.nextListener] = listenerEntry{eventType: eventType, fn: fn}
	return a.nextListener
}

// RemoveEventListener drops a listener by handle. Removing an unknown or
// already-removed handle is a no-op.
func (a *Adapter) RemoveEventListener(handle int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.listeners, handle)
}

func (a *Adapter) guard() (Engine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return nil, ErrDestroyed
	}
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.engine, nil
}

// Load opens url on the fixed engine. Failures surface as error events with
// SOURCE_NOT_SUPPORTED or the engine's mapping, never as a panic.
func (a *Adapter) Load(url string, autoPlay bool) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}

	detected := capability.DetectStreamType(url)
	if detected != capability.StreamUnknown && !a.caps.SupportsStream(detected) {
		err := fmt.Errorf("source %s not supported", detected)
		a.syntheticError(ErrSourceNotSupported, err.Error(), false, nil)
		return err
	}

	a.mu.Lock()
	a.currentURL = url
	a.mu.Unlock()

	if err := engine.Load(url, autoPlay); err != nil {
		a.syntheticError(ErrSourceNotSupported, "engine rejected source", false, err)
		return err
	}
	return nil
}

func (a *Adapter) Play() error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.Play()
}

func (a *Adapter) Pause() error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.Pause()
}

func (a *Adapter) Seek(seconds float64) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.Seek(seconds)
}

func (a *Adapter) SetVolume(v float64) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.SetVolume(v)
}

func (a *Adapter) Mute() error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.SetMuted(true)
}

func (a *Adapter) Unmute() error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	return engine.SetMuted(false)
}

// SetQuality pins one rendition; a nil track re-enables the automatic
// ladder. The selection is echoed as a qualitychange event.
func (a *Adapter) SetQuality(track *QualityTrack) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	id := ""
	if track != nil {
		id = track.ID
	}
	if err := engine.SelectQuality(id); err != nil {
		return err
	}
	a.dispatch(Event{Type: EventQualityChange, Data: QualityChangeData{Track: track}})
	return nil
}

func (a *Adapter) SetAudioTrack(track *AudioTrack) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	id := ""
	if track != nil {
		id = track.ID
	}
	if err := engine.SelectAudio(id); err != nil {
		return err
	}
	a.dispatch(Event{Type: EventAudioTrackChange, Data: AudioTrackChangeData{Track: track}})
	return nil
}

// SetSubtitleTrack with a nil track turns subtitles off.
func (a *Adapter) SetSubtitleTrack(track *SubtitleTrack) error {
	engine, err := a.guard()
	if err != nil {
		return err
	}
	id := ""
	if track != nil {
		id = track.ID
	}
	if err := engine.SelectSubtitle(id); err != nil {
		return err
	}
	a.dispatch(Event{Type: EventSubtitleTrackChange, Data: SubtitleTrackChangeData{Track: track}})
	return nil
}

// State reports the last playback state the engine announced.
func (a *Adapter) State() PlaybackState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Adapter) CurrentURL() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentURL
}

func (a *Adapter) StreamType() capability.StreamType {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.streamType
}

// Destroy tears the adapter down. It unregisters all listeners as its first
// action, so any event the engine emits during teardown is dropped, and it
// is safe to call any number of times.
func (a *Adapter) Destroy() error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return nil
	}
	a.destroyed = true
	a.consumer = nil
	a.listeners = map[int]listenerEntry{}
	engine := a.engine
	a.engine = nil
	a.mu.Unlock()

	if engine != nil {
		return engine.Close()
	}
	return nil
}
