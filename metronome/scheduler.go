package metronome

import "time"

// timerSet is the set of timers the scheduler should be running for the
// current session state: a beat ticker period (zero means none) and whether
// the one-second practice countdown ticks.
type timerSet struct {
	beat      time.Duration
	countdown bool
}

// desiredTimers derives the timer set from the session state.
func (m *Metronome) desiredTimers() timerSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Playing {
		return timerSet{}
	}
	return timerSet{
		beat:      beatPeriod(m.tempo, m.sub),
		countdown: m.timerOn,
	}
}

// beatPeriod is the interval between clicks: a minute divided by the BPM,
// divided again for subdivided beats. 120 BPM quarters click every 500ms,
// eighths every 250ms.
func beatPeriod(tempo int, sub Subdivision) time.Duration {
	return time.Minute / time.Duration(tempo) / time.Duration(sub.Factor())
}

// run is the scheduler goroutine. It owns both tickers and re-derives the
// desired timer set whenever the session state changes, rebuilding the beat
// ticker only when its period actually changed so unrelated toggles never
// disturb beat phase.
func (m *Metronome) run() {
	defer close(m.stopped)

	var (
		cur    timerSet
		beat   *time.Ticker
		count  *time.Ticker
		beatC  <-chan time.Time
		countC <-chan time.Time
	)
	stopBeat := func() {
		if beat != nil {
			beat.Stop()
			beat, beatC = nil, nil
		}
	}
	stopCount := func() {
		if count != nil {
			count.Stop()
			count, countC = nil, nil
		}
	}
	defer stopBeat()
	defer stopCount()

	apply := func(next timerSet) {
		if next.beat != cur.beat {
			stopBeat()
			if next.beat > 0 {
				beat = time.NewTicker(next.beat)
				beatC = beat.C
			}
		}
		if next.countdown != cur.countdown {
			stopCount()
			if next.countdown {
				count = time.NewTicker(time.Second)
				countC = count.C
			}
		}
		cur = next
	}

	apply(m.desiredTimers())

	for {
		select {
		case <-m.done:
			return
		case <-m.changed:
			apply(m.desiredTimers())
		case <-beatC:
			m.fireBeat()
		case <-countC:
			m.tickCountdown()
		}
	}
}
