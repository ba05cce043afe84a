// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
)

type nopLogger struct{}

func (nopLogger) Print(string)                  {}
func (nopLogger) Printf(string, ...interface{}) {}
func (nopLogger) PrintError(string, error)      {}

// fixedState returns the same snapshot for every key press.
type fixedState struct {
	state playback.State
}

func (s *fixedState) Snapshot() playback.State { return s.state }

// recorder collects every callback invocation.
type recorder struct {
	playPauses  int
	channels    []Channel
	seeks       []float64
	volumes     []float64
	mutes       int
	fullscreens int
	backs       int
	shows       int
	textFocused bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		PlayPause:        func() { r.playPauses++ },
		PlayChannel:      func(ch Channel) { r.channels = append(r.channels, ch) },
		SeekBy:           func(d float64) { r.seeks = append(r.seeks, d) },
		VolumeStep:       func(d float64) { r.volumes = append(r.volumes, d) },
		ToggleMute:       func() { r.mutes++ },
		ToggleFullscreen: func() { r.fullscreens++ },
		Back:             func() { r.backs++ },
		ShowControls:     func() { r.shows++ },
		TextEntryFocused: func() bool { return r.textFocused },
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func testChannels() []Channel {
	return []Channel{
		{ID: "a", Name: "Alpha", URL: "https://cdn.example.com/a.m3u8"},
		{ID: "b", Name: "Beta", URL: "https://cdn.example.com/b.m3u8"},
		{ID: "c", Name: "Gamma", URL: "https://cdn.example.com/c.m3u8"},
	}
}

func TestStepWrapsBothWays(t *testing.T) {
	list := testChannels()

	next, ok := Step(list, "c", +1)
	require.True(t, ok)
	assert.Equal(t, "a", next.ID)

	prev, ok := Step(list, "a", -1)
	require.True(t, ok)
	assert.Equal(t, "c", prev.ID)

	mid, ok := Step(list, "b", +1)
	require.True(t, ok)
	assert.Equal(t, "c", mid.ID)
}

func TestStepUnknownCurrentOrEmptyList(t *testing.T) {
	_, ok := Step(testChannels(), "zz", +1)
	assert.False(t, ok)

	_, ok = Step(nil, "a", +1)
	assert.False(t, ok)
}

func TestPlayPauseKeys(t *testing.T) {
	rec := &recorder{}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})

	assert.True(t, m.HandleKey(key(tcell.KeyEnter)))
	assert.True(t, m.HandleKey(runeKey(' ')))
	assert.True(t, m.HandleKey(runeKey('p')))
	assert.True(t, m.HandleKey(runeKey('P')))
	assert.Equal(t, 4, rec.playPauses)
	assert.Equal(t, 4, rec.shows)
}

func TestChannelZapping(t *testing.T) {
	rec := &recorder{}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})
	m.SetChannels(testChannels())
	m.SetCurrentChannel("c")

	assert.True(t, m.HandleKey(key(tcell.KeyPgUp)))
	require.Len(t, rec.channels, 1)
	assert.Equal(t, "a", rec.channels[0].ID) // wrapped past the end

	m.SetCurrentChannel("a")
	assert.True(t, m.HandleKey(key(tcell.KeyPgDn)))
	require.Len(t, rec.channels, 2)
	assert.Equal(t, "c", rec.channels[1].ID)
}

func TestChannelZappingWithUnknownCurrentConsumesKey(t *testing.T) {
	rec := &recorder{}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})
	m.SetChannels(testChannels())
	m.SetCurrentChannel("gone")

	assert.True(t, m.HandleKey(key(tcell.KeyPgUp)))
	assert.Empty(t, rec.channels)
}

func TestSeekGatedOnSeekable(t *testing.T) {
	rec := &recorder{}
	src := &fixedState{state: playback.State{Seekable: false}}
	m := NewMapper(src, rec.callbacks(), nopLogger{})

	assert.True(t, m.HandleKey(key(tcell.KeyRight)))
	assert.Empty(t, rec.seeks) // live stream: consumed, nothing moved
	assert.Equal(t, 1, rec.shows)

	src.state.Seekable = true
	assert.True(t, m.HandleKey(key(tcell.KeyRight)))
	assert.True(t, m.HandleKey(key(tcell.KeyLeft)))
	assert.Equal(t, []float64{DefaultSeekStep, -DefaultSeekStep}, rec.seeks)
}

func TestVolumeKeysDeferToVisibleControls(t *testing.T) {
	rec := &recorder{}
	src := &fixedState{state: playback.State{ControlsVisible: true}}
	m := NewMapper(src, rec.callbacks(), nopLogger{})

	// overlay has focus: Up/Down belong to the UI
	assert.False(t, m.HandleKey(key(tcell.KeyUp)))
	assert.False(t, m.HandleKey(key(tcell.KeyDown)))
	assert.Empty(t, rec.volumes)

	src.state.ControlsVisible = false
	assert.True(t, m.HandleKey(key(tcell.KeyUp)))
	assert.True(t, m.HandleKey(key(tcell.KeyDown)))
	assert.Equal(t, []float64{DefaultVolumeStep, -DefaultVolumeStep}, rec.volumes)
}

func TestMuteFullscreenBack(t *testing.T) {
	rec := &recorder{}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})

	assert.True(t, m.HandleKey(runeKey('m')))
	assert.True(t, m.HandleKey(runeKey('M')))
	assert.Equal(t, 2, rec.mutes)

	assert.True(t, m.HandleKey(runeKey('f')))
	assert.Equal(t, 1, rec.fullscreens)

	assert.True(t, m.HandleKey(key(tcell.KeyBackspace2)))
	assert.Equal(t, 1, rec.backs)
}

func TestTextEntryFocusSwallowsNothing(t *testing.T) {
	rec := &recorder{textFocused: true}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})

	assert.False(t, m.HandleKey(key(tcell.KeyEnter)))
	assert.False(t, m.HandleKey(runeKey('m')))
	assert.Zero(t, rec.playPauses)
	assert.Zero(t, rec.mutes)
}

func TestUnmappedKeyIsNotConsumed(t *testing.T) {
	rec := &recorder{}
	m := NewMapper(&fixedState{}, rec.callbacks(), nopLogger{})

	assert.False(t, m.HandleKey(runeKey('x')))
	assert.False(t, m.HandleKey(key(tcell.KeyTab)))
	assert.False(t, m.HandleKey(nil))
}

func TestCustomStepOptions(t *testing.T) {
	rec := &recorder{}
	src := &fixedState{state: playback.State{Seekable: true}}
	m := NewMapper(src, rec.callbacks(), nopLogger{},
		WithSeekStep(30), WithVolumeStep(0.05))

	m.HandleKey(key(tcell.KeyRight))
	m.HandleKey(key(tcell.KeyUp))

	assert.Equal(t, []float64{30}, rec.seeks)
	assert.Equal(t, []float64{0.05}, rec.volumes)
}

func TestAttachRefusesSecondListener(t *testing.T) {
	m := NewMapper(&fixedState{}, Callbacks{}, nopLogger{})
	keys := make(chan *tcell.EventKey)

	require.NoError(t, m.Attach(keys))
	assert.ErrorIs(t, m.Attach(keys), ErrAlreadyAttached)

	m.Detach()
	m.Detach() // idempotent
	require.NoError(t, m.Attach(keys))
	m.Detach()
}

func TestAttachedListenerRoutesKeys(t *testing.T) {
	done := make(chan struct{})
	var presses int
	cb := Callbacks{PlayPause: func() {
		presses++
		close(done)
	}}
	m := NewMapper(&fixedState{}, cb, nopLogger{})
	keys := make(chan *tcell.EventKey, 1)
	require.NoError(t, m.Attach(keys))
	defer m.Detach()

	keys <- key(tcell.KeyEnter)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("key press was not routed")
	}
	assert.Equal(t, 1, presses)
}
