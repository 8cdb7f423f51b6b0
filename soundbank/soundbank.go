// Package soundbank loads short audio clips fully into memory so they can
// be replayed with no per-play decode or disk access.
package soundbank

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Bank holds named clips decoded into memory. It is immutable after Load,
// so streamers can be handed out from any goroutine.
type Bank struct {
	sr    beep.SampleRate
	clips map[string]*beep.Buffer
}

// Load decodes every file in paths into an in-memory buffer keyed by name.
// Clips whose native rate differs from sr are resampled once here, so
// playback never resamples. A clip that fails to open or decode fails the
// whole load.
func Load(sr beep.SampleRate, paths map[string]string) (*Bank, error) {
	b := &Bank{sr: sr, clips: make(map[string]*beep.Buffer, len(paths))}
	for name, path := range paths {
		buf, err := loadClip(sr, path)
		if err != nil {
			return nil, fmt.Errorf("load clip %q: %w", name, err)
		}
		b.clips[name] = buf
	}
	return b, nil
}

func loadClip(sr beep.SampleRate, path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sr {
		s = beep.Resample(4, format.SampleRate, sr, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}

// decode picks a decoder by file extension.
func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// Clip returns a fresh streamer over the named clip. Every call returns an
// independent streamer positioned at the start, so any number of instances
// can sound at once.
func (b *Bank) Clip(name string) (beep.StreamSeeker, bool) {
	buf, ok := b.clips[name]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}

// Has reports whether the bank holds a clip with the given name.
func (b *Bank) Has(name string) bool {
	_, ok := b.clips[name]
	return ok
}

// Duration returns the play time of the named clip, or zero if absent.
func (b *Bank) Duration(name string) time.Duration {
	buf, ok := b.clips[name]
	if !ok {
		return 0
	}
	return b.sr.D(buf.Len())
}

// Names returns the clip names in sorted order.
func (b *Bank) Names() []string {
	return slices.Sorted(maps.Keys(b.clips))
}

// SampleRate returns the rate every clip was resampled to.
func (b *Bank) SampleRate() beep.SampleRate { return b.sr }
