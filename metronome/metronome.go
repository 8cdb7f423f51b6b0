// Package metronome implements the beat engine: session state, the beat
// scheduler, and the audio dispatch worker.
package metronome

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"metronome-cli/soundbank"
)

// Tempo bounds in beats per minute.
const (
	MinTempo = 40
	MaxTempo = 200
)

// Subdivision selects how many clicks sound per beat.
type Subdivision int

const (
	Quarter Subdivision = iota
	Eighth
)

// Factor returns the number of clicks per beat.
func (s Subdivision) Factor() int {
	if s == Eighth {
		return 2
	}
	return 1
}

func (s Subdivision) String() string {
	if s == Eighth {
		return "Eighth"
	}
	return "Quarter"
}

// State is the playback state of the engine.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "Playing"
	}
	return "Stopped"
}

// BeatKind selects which clip a beat plays.
type BeatKind int

const (
	Click BeatKind = iota
	Quack
)

// String returns the clip name the kind plays from the sound bank.
func (k BeatKind) String() string {
	if k == Quack {
		return "quack"
	}
	return "click"
}

// BeatEvent is one scheduled beat, sent from the scheduler to the worker.
type BeatEvent struct {
	Kind BeatKind
}

// Countdown is a practice timer value counting down minute by second.
type Countdown struct {
	Minutes int
	Seconds int
}

// NewCountdown converts a duration to a Countdown, truncating sub-second
// precision and clamping negatives to zero.
func NewCountdown(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Countdown{Minutes: total / 60, Seconds: total % 60}
}

// tick moves one second toward 0:00, borrowing from the minutes column and
// holding at zero.
func (c Countdown) tick() Countdown {
	switch {
	case c.Seconds > 0:
		c.Seconds--
	case c.Minutes > 0:
		c.Minutes--
		c.Seconds = 59
	}
	return c
}

// IsZero reports whether the countdown has reached 0:00.
func (c Countdown) IsZero() bool { return c.Minutes == 0 && c.Seconds == 0 }

// normalized clamps the fields to a valid m:ss value.
func (c Countdown) normalized() Countdown {
	if c.Minutes < 0 {
		c.Minutes = 0
	}
	c.Seconds = max(0, min(59, c.Seconds))
	return c
}

// String renders the countdown as m:ss with zero-padded seconds.
func (c Countdown) String() string {
	return fmt.Sprintf("%d:%02d", c.Minutes, c.Seconds)
}

// Settings configure a Metronome at construction.
type Settings struct {
	Tempo        int
	Subdivision  Subdivision
	QuackMode    bool
	TimerEnabled bool
	Countdown    Countdown
	DeviceBuffer time.Duration // audio device buffer length; small keeps clicks tight
	Device       Device        // nil selects the system speaker
}

// DefaultSettings returns the engine defaults: 120 BPM quarter notes,
// quack off, practice timer off at 2:30.
func DefaultSettings() Settings {
	return Settings{
		Tempo:        120,
		Subdivision:  Quarter,
		Countdown:    Countdown{Minutes: 2, Seconds: 30},
		DeviceBuffer: 10 * time.Millisecond,
	}
}

// Snapshot is a point-in-time copy of the session state for rendering.
type Snapshot struct {
	Tempo        int
	Subdivision  Subdivision
	State        State
	QuackMode    bool
	TimerEnabled bool
	Countdown    Countdown
	LastBeat     time.Time
	LastKind     BeatKind
}

// Metronome is the beat engine. One scheduler goroutine owns all timing and
// an audio worker owns the output device; control methods may be called
// from any goroutine.
type Metronome struct {
	mu       sync.Mutex
	tempo    int
	sub      Subdivision
	state    State
	quack    bool
	timerOn  bool
	left     Countdown // time remaining on the practice timer
	lastBeat time.Time
	lastKind BeatKind
	closing  bool

	changed chan struct{} // coalesced wake signal for the scheduler
	worker  *worker
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New validates settings, opens the audio device, and starts the scheduler.
// The bank must hold a clip for every beat kind.
func New(bank *soundbank.Bank, cfg Settings) (*Metronome, error) {
	if cfg.Tempo < MinTempo || cfg.Tempo > MaxTempo {
		return nil, fmt.Errorf("%w: %d", ErrTempoOutOfRange, cfg.Tempo)
	}
	for _, kind := range []BeatKind{Click, Quack} {
		if !bank.Has(kind.String()) {
			return nil, fmt.Errorf("%w: %q", ErrMissingClip, kind.String())
		}
	}

	w := newWorker(bank, cfg.Device)
	if err := w.start(bank.SampleRate(), cfg.DeviceBuffer); err != nil {
		return nil, err
	}

	m := &Metronome{
		tempo:   cfg.Tempo,
		sub:     cfg.Subdivision,
		quack:   cfg.QuackMode,
		timerOn: cfg.TimerEnabled,
		left:    cfg.Countdown.normalized(),
		changed: make(chan struct{}, 1),
		worker:  w,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go m.run()
	return m, nil
}

// Toggle flips between Stopped and Playing. Entering Playing sounds an
// immediate beat; the scheduler then supplies the cadence.
func (m *Metronome) Toggle() {
	m.mu.Lock()
	if m.closing {
		m.mu.Unlock()
		return
	}
	if m.state == Playing {
		m.state = Stopped
	} else {
		m.state = Playing
	}
	state, tempo, sub := m.state, m.tempo, m.sub
	m.mu.Unlock()

	slog.Info("playback toggled", "state", state, "tempo", tempo, "subdivision", sub)
	m.signal()
	if state == Playing {
		m.fireBeat()
	}
}

// SetTempo sets the tempo, rejecting values outside [MinTempo, MaxTempo].
func (m *Metronome) SetTempo(bpm int) error {
	if bpm < MinTempo || bpm > MaxTempo {
		return fmt.Errorf("%w: %d", ErrTempoOutOfRange, bpm)
	}
	m.mu.Lock()
	m.tempo = bpm
	m.mu.Unlock()
	m.signal()
	return nil
}

// AdjustTempo shifts the tempo by delta BPM, holding at the bounds.
func (m *Metronome) AdjustTempo(delta int) {
	m.mu.Lock()
	m.tempo = max(MinTempo, min(MaxTempo, m.tempo+delta))
	m.mu.Unlock()
	m.signal()
}

// IncrementTempo raises the tempo one BPM, holding at MaxTempo.
func (m *Metronome) IncrementTempo() { m.AdjustTempo(1) }

// DecrementTempo lowers the tempo one BPM, holding at MinTempo.
func (m *Metronome) DecrementTempo() { m.AdjustTempo(-1) }

// SetSubdivision selects quarter or eighth note clicks.
func (m *Metronome) SetSubdivision(s Subdivision) {
	m.mu.Lock()
	m.sub = s
	m.mu.Unlock()
	m.signal()
}

// SetQuackMode switches the clip used for subsequent beats. The kind is
// read when each beat fires, so no timer depends on it.
func (m *Metronome) SetQuackMode(on bool) {
	m.mu.Lock()
	m.quack = on
	m.mu.Unlock()
}

// SetTimerEnabled turns the practice countdown on or off.
func (m *Metronome) SetTimerEnabled(on bool) {
	m.mu.Lock()
	m.timerOn = on
	m.mu.Unlock()
	m.signal()
}

// SetCountdown resets the practice timer to the given value.
func (m *Metronome) SetCountdown(c Countdown) {
	m.mu.Lock()
	m.left = c.normalized()
	m.mu.Unlock()
}

// Snapshot returns a copy of the session state.
func (m *Metronome) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Tempo:        m.tempo,
		Subdivision:  m.sub,
		State:        m.state,
		QuackMode:    m.quack,
		TimerEnabled: m.timerOn,
		Countdown:    m.left,
		LastBeat:     m.lastBeat,
		LastKind:     m.lastKind,
	}
}

// Close stops the scheduler, drains the worker, and closes the device.
// Safe to call more than once.
func (m *Metronome) Close() {
	m.once.Do(func() {
		m.mu.Lock()
		m.state = Stopped
		m.closing = true
		m.mu.Unlock()
		close(m.done)
		<-m.stopped
		m.worker.close()
	})
}

// fireBeat enqueues one beat carrying the quack mode read right now. The
// state check under the lock makes Stop final: a tick already in flight
// when the user stops is discarded here.
func (m *Metronome) fireBeat() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Playing || m.closing {
		return
	}
	kind := Click
	if m.quack {
		kind = Quack
	}
	m.lastBeat = time.Now()
	m.lastKind = kind
	m.worker.enqueue(BeatEvent{Kind: kind})
}

// tickCountdown advances the practice timer one second toward 0:00. A tick
// landing after a stop is discarded, like a late beat.
func (m *Metronome) tickCountdown() {
	m.mu.Lock()
	if m.state == Playing && m.timerOn {
		m.left = m.left.tick()
	}
	m.mu.Unlock()
}

// signal wakes the scheduler; a full buffer means a wake is already pending.
func (m *Metronome) signal() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}
