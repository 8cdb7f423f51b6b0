package metronome

import "errors"

var (
	// ErrTempoOutOfRange is returned when a tempo outside
	// [MinTempo, MaxTempo] is requested.
	ErrTempoOutOfRange = errors.New("metronome: tempo out of range")

	// ErrMissingClip is returned by New when the sound bank lacks a clip
	// one of the beat kinds plays.
	ErrMissingClip = errors.New("metronome: missing clip")

	// ErrUnknownClip is reported by the worker when a beat names a clip
	// the bank does not hold. The beat is dropped; dispatch continues.
	ErrUnknownClip = errors.New("metronome: unknown clip")
)
