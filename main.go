// Copyright 2026 The Ted IPTV Player Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"

	"github.com/GhouI/Ted-IPTV-Player-sub000/capability"
	"github.com/GhouI/Ted-IPTV-Player-sub000/input"
	"github.com/GhouI/Ted-IPTV-Player-sub000/logger"
	"github.com/GhouI/Ted-IPTV-Player-sub000/playback"
	"github.com/GhouI/Ted-IPTV-Player-sub000/player"
	"github.com/GhouI/Ted-IPTV-Player-sub000/remote"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

const DEVELOPMENT = "development"

// Name is the identity we announce over MPRIS
var Name string = "tediptv"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

func readConfig(configFile *string) error {
	if configFile != nil && *configFile != "" {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("tediptv")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/tediptv")
		viper.AddConfigPath(".")
	}

	// read it
	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("Config file error: %s\n", err)
	}

	// validate
	if !viper.IsSet("channels") {
		return fmt.Errorf("Config property channels is required\n")
	}

	return nil
}

// loadChannels reads the [[channels]] table into the zapping list. Stream
// types left unset in the config are classified from the URL.
func loadChannels() ([]input.Channel, error) {
	var raw []struct {
		ID   string
		Name string
		URL  string
		Type string
	}
	if err := viper.UnmarshalKey("channels", &raw); err != nil {
		return nil, err
	}

	channels := make([]input.Channel, 0, len(raw))
	for i, c := range raw {
		if c.URL == "" {
			return nil, fmt.Errorf("channel %d has no url", i)
		}
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("ch-%d", i)
		}
		streamType := capability.StreamType(c.Type)
		switch streamType {
		case capability.StreamHLS, capability.StreamDASH, capability.StreamMP4:
		default:
			streamType = capability.DetectStreamType(c.URL)
		}
		channels = append(channels, input.Channel{
			ID:   id,
			Name: c.Name,
			URL:  c.URL,
			Type: streamType,
		})
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels configured")
	}
	return channels, nil
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - main config errors
func main() {
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	list := flag.Bool("list", false, "list configured channels and exit")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the tediptv version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args>\n", os.Args[0])
		flag.Usage()
		osExit(0)
	}
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			Version = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("tediptv %s", Version)
		osExit(0)
	}

	if err := readConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %v\n", err)
		osExit(2)
	}

	channels, err := loadChannels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load channel list: %v\n", err)
		osExit(2)
	}

	logger := logger.Init()

	if *list {
		for _, ch := range channels {
			fmt.Printf("%-12s %-30s %-7s %s\n", ch.ID, ch.Name, ch.Type, ch.URL)
		}
		osExit(0)
	}

	if testMode {
		fmt.Println("Running in test mode for testing.")
		osExit(0x23420001)
		return
	}

	caps := capability.Probe()
	cfg := player.ConfigFromViper()

	adapter := player.NewAdapter(caps, logger)
	// the engine is fixed for the adapter's lifetime, so key it on the kind
	// of channel this list leads with
	if err := adapter.Initialize(cfg, channels[0].Type); err != nil {
		fmt.Println("Unable to initialize mpv. Is mpv installed?")
		osExit(1)
	}

	controller := playback.NewController(adapter, cfg, logger)
	zapper := newZapper(controller, channels, logger)

	var mprisPlayer *remote.MprisPlayer
	// init mpris2 player control (linux only but fails gracefully on other systems)
	if *enableMpris {
		mprisPlayer, err = remote.RegisterMprisPlayer(zapper, logger)
		if err != nil {
			fmt.Printf("Unable to register MPRIS with DBUS: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
		}
		defer mprisPlayer.Close()
		zapper.onChannelChange = mprisPlayer.OnChannelChange
	}

	quit := make(chan struct{})
	var quitOnce sync.Once
	closeQuit := func() {
		quitOnce.Do(func() { close(quit) })
	}

	mapper := input.NewMapper(controller.Store(), input.Callbacks{
		PlayPause:        controller.TogglePlayPause,
		PlayChannel:      zapper.PlayChannel,
		SeekBy:           controller.SeekBy,
		VolumeStep:       controller.VolumeStep,
		ToggleMute:       controller.ToggleMute,
		ToggleFullscreen: controller.ToggleFullscreen,
		ShowControls:     controller.ShowControls,
		Back:             closeQuit,
	}, logger, mapperOptions()...)
	mapper.SetChannels(channels)
	zapper.onZap = func(ch input.Channel) {
		mapper.SetCurrentChannel(ch.ID)
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open the input screen: %v\n", err)
		osExit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to init the input screen: %v\n", err)
		osExit(1)
	}

	keys := make(chan *tcell.EventKey, 16)
	if err := mapper.Attach(keys); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "input mapper: %v\n", err)
		osExit(1)
	}

	go pumpScreenKeys(screen, keys, quit, closeQuit)

	zapper.PlayChannel(channels[0])

	runEventLoop(controller, logger, quit)

	mapper.Detach()
	controller.Destroy()
	screen.Fini()
}

// pumpScreenKeys forwards terminal key events into the mapper's channel.
// Ctrl-C and Q bail out directly.
func pumpScreenKeys(screen tcell.Screen, keys chan<- *tcell.EventKey, quit <-chan struct{}, closeQuit func()) {
	for {
		select {
		case <-quit:
			return
		default:
		}

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'Q') {
				closeQuit()
				return
			}
			select {
			case keys <- ev:
			case <-quit:
				return
			}
		case nil:
			return
		}
	}
}

func mapperOptions() []input.MapperOption {
	var opts []input.MapperOption
	if viper.IsSet("input.seek-step") {
		opts = append(opts, input.WithSeekStep(viper.GetFloat64("input.seek-step")))
	}
	if viper.IsSet("input.volume-step") {
		opts = append(opts, input.WithVolumeStep(viper.GetFloat64("input.volume-step")))
	}
	return opts
}
