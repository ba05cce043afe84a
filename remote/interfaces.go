package remote

// ControlledPlayer is the slice of the front end a desktop remote may drive.
// It speaks the same action vocabulary as the on-screen controls; channel
// stepping walks the caller's filtered channel list.
type ControlledPlayer interface {
	PlayPause()

	// Stop unmounts the current channel.
	Stop()

	NextChannel()
	PreviousChannel()

	// SeekBy jumps relative to the current position, in seconds. Ignored on
	// live channels.
	SeekBy(seconds float64)

	// SetVolume takes 0..1.
	SetVolume(v float64)
	Volume() float64

	IsSeekable() bool
}

// ChannelInfo describes the active channel for remote metadata.
type ChannelInfo interface {
	GetID() string
	GetName() string

	// something like ID != ""
	IsValid() bool
}
