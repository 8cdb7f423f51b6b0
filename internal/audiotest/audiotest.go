// Package audiotest provides shared test doubles for the audio packages:
// a recording fake of the playback device and a WAV fixture builder.
package audiotest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
)

// FakeDevice records playback activity for assertions. Every dispatched
// streamer is delivered on Plays; tests receive them as beats fire.
type FakeDevice struct {
	InitErr error // returned by Init when set

	Inited     bool
	SampleRate beep.SampleRate
	BufSize    int
	Plays      chan beep.Streamer
	Cleared    bool
	Closed     bool
}

// NewFakeDevice returns a FakeDevice able to buffer n plays.
func NewFakeDevice(n int) *FakeDevice {
	return &FakeDevice{Plays: make(chan beep.Streamer, n)}
}

func (d *FakeDevice) Init(sr beep.SampleRate, bufSize int) error {
	if d.InitErr != nil {
		return d.InitErr
	}
	d.Inited = true
	d.SampleRate = sr
	d.BufSize = bufSize
	return nil
}

func (d *FakeDevice) Play(s beep.Streamer) {
	select {
	case d.Plays <- s:
	default:
	}
}

func (d *FakeDevice) Clear() { d.Cleared = true }
func (d *FakeDevice) Close() { d.Closed = true }

// WriteWAV writes a 16-bit PCM WAV file holding the given number of frames
// of a constant tone and returns its path.
func WriteWAV(t *testing.T, dir, name string, sampleRate, channels, frames int) string {
	t.Helper()

	const bits = 16
	blockAlign := channels * bits / 8
	dataSize := frames * blockAlign
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bits)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	for i := range frames * channels {
		binary.LittleEndian.PutUint16(buf[44+2*i:], 8000)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
	return path
}
