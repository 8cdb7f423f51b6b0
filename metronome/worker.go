package metronome

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"metronome-cli/soundbank"
)

// backlog is the beat queue depth. At the fastest cadence (eighths at 200
// BPM, 150ms apart) this is nearly ten seconds of slack; a worker that far
// behind is better served by shedding stale beats than by stalling the
// scheduler.
const backlog = 64

// Device is the audio output the worker drives. The default implementation
// is the beep speaker; tests substitute a recording fake.
type Device interface {
	Init(sr beep.SampleRate, bufSize int) error
	Play(s beep.Streamer)
	Clear()
	Close()
}

// speakerDevice adapts the package-global beep speaker to Device.
type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, bufSize int) error {
	return speaker.Init(sr, bufSize)
}
func (speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerDevice) Clear()               { speaker.Clear() }
func (speakerDevice) Close()               { speaker.Close() }

// worker owns the audio device and plays one clip per beat event. Playback
// is fire and forget: rapid beats overlap in the speaker mix rather than
// cutting each other off.
type worker struct {
	bank   *soundbank.Bank
	dev    Device
	events chan BeatEvent
	done   chan struct{}
}

func newWorker(bank *soundbank.Bank, dev Device) *worker {
	if dev == nil {
		dev = speakerDevice{}
	}
	return &worker{
		bank:   bank,
		dev:    dev,
		events: make(chan BeatEvent, backlog),
		done:   make(chan struct{}),
	}
}

// start opens the device and launches the dispatch goroutine. A device
// that cannot be opened fails construction of the whole engine.
func (w *worker) start(sr beep.SampleRate, buffer time.Duration) error {
	if buffer <= 0 {
		buffer = 10 * time.Millisecond
	}
	if err := w.dev.Init(sr, sr.N(buffer)); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	go w.run()
	return nil
}

// enqueue hands a beat to the worker without ever blocking the caller.
// When the queue is full the oldest pending beat is dropped so the freshest
// beats survive.
func (w *worker) enqueue(ev BeatEvent) {
	select {
	case w.events <- ev:
		return
	default:
	}
	select {
	case old := <-w.events:
		slog.Warn("beat queue full, dropping oldest", "kind", old.Kind)
	default:
	}
	select {
	case w.events <- ev:
	default:
	}
}

// run consumes beats until the queue is closed and drained.
func (w *worker) run() {
	defer close(w.done)
	for ev := range w.events {
		if err := w.play(ev); err != nil {
			slog.Warn("beat dropped", "err", err)
		}
	}
}

// play starts one clip instance. Instances already sounding keep going;
// the speaker mixes the overlap.
func (w *worker) play(ev BeatEvent) error {
	s, ok := w.bank.Clip(ev.Kind.String())
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, ev.Kind.String())
	}
	w.dev.Play(s)
	return nil
}

// close flushes pending beats, waits for the dispatch goroutine, and shuts
// the device down.
func (w *worker) close() {
	close(w.events)
	<-w.done
	w.dev.Clear()
	w.dev.Close()
}
