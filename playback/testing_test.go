// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"sync"
	"time"

	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
)

// nopLogger keeps tests quiet without draining channels.
type nopLogger struct{}

func (nopLogger) Print(string)                 {}
func (nopLogger) Printf(string, ...interface{}) {}
func (nopLogger) PrintError(string, error)     {}

// fakeScheduler captures retry timers instead of sleeping.
type fakeScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (f *fakeScheduler) afterFunc(d time.Duration, fn func()) *time.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)
	f.fns = append(f.fns, fn)
	// a real timer far in the future keeps Stop semantics intact
	return time.AfterFunc(time.Hour, func() {})
}

func (f *fakeScheduler) scheduled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fns)
}

func (f *fakeScheduler) fire(i int) {
	f.mu.Lock()
	fn := f.fns[i]
	f.mu.Unlock()
	fn()
}

// stubAdapter records calls; its consumer hookup lets tests push events
// through the normalizer exactly like a real engine would.
type stubAdapter struct {
	mu        sync.Mutex
	consumer  player.EventConsumer
	loads     []loadCall
	plays     int
	pauses    int
	seeks     []float64
	volumes   []float64
	mutes     []bool
	destroyed int
	loadErr   error
}

type loadCall struct {
	url      string
	autoPlay bool
}

func (a *stubAdapter) Load(url string, autoPlay bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loads = append(a.loads, loadCall{url, autoPlay})
	return a.loadErr
}

func (a *stubAdapter) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	return nil
}

func (a *stubAdapter) Pause() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pauses++
	return nil
}

func (a *stubAdapter) Seek(seconds float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seeks = append(a.seeks, seconds)
	return nil
}

func (a *stubAdapter) SetVolume(v float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volumes = append(a.volumes, v)
	return nil
}

func (a *stubAdapter) Mute() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutes = append(a.mutes, true)
	return nil
}

func (a *stubAdapter) Unmute() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mutes = append(a.mutes, false)
	return nil
}

func (a *stubAdapter) SetQuality(track *player.QualityTrack) error {
	a.emit(player.Event{Type: player.EventQualityChange, Data: player.QualityChangeData{Track: track}})
	return nil
}

func (a *stubAdapter) SetAudioTrack(track *player.AudioTrack) error {
	a.emit(player.Event{Type: player.EventAudioTrackChange, Data: player.AudioTrackChangeData{Track: track}})
	return nil
}

func (a *stubAdapter) SetSubtitleTrack(track *player.SubtitleTrack) error {
	a.emit(player.Event{Type: player.EventSubtitleTrackChange, Data: player.SubtitleTrackChangeData{Track: track}})
	return nil
}

func (a *stubAdapter) RegisterEventConsumer(consumer player.EventConsumer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.consumer = consumer
}

func (a *stubAdapter) Destroy() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyed++
	a.consumer = nil
	return nil
}

func (a *stubAdapter) emit(ev player.Event) {
	a.mu.Lock()
	consumer := a.consumer
	a.mu.Unlock()
	if consumer != nil {
		consumer.SendEvent(ev)
	}
}

func (a *stubAdapter) lastLoad() (loadCall, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.loads) == 0 {
		return loadCall{}, false
	}
	return a.loads[len(a.loads)-1], true
}
