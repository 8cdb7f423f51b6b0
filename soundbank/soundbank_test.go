package soundbank

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"metronome-cli/internal/audiotest"
)

// testBank loads a 100ms click and a 200ms quack at 8kHz.
func testBank(t *testing.T) *Bank {
	t.Helper()
	dir := t.TempDir()
	bank, err := Load(8000, map[string]string{
		"click": audiotest.WriteWAV(t, dir, "click.wav", 8000, 1, 800),
		"quack": audiotest.WriteWAV(t, dir, "quack.wav", 8000, 1, 1600),
	})
	if err != nil {
		t.Fatalf("load test bank: %v", err)
	}
	return bank
}

// drain streams s to exhaustion and returns the frame count.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 256)
	total := 0
	for range 10000 {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never drained")
	return 0
}

func TestLoadDecodesAndBuffers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bank, err := Load(8000, map[string]string{
		"click": audiotest.WriteWAV(t, dir, "click.wav", 8000, 1, 800),
		"quack": audiotest.WriteWAV(t, dir, "quack.wav", 8000, 2, 1600),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := bank.Names(), []string{"click", "quack"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if !bank.Has("click") || !bank.Has("quack") {
		t.Error("bank missing loaded clips")
	}
	if got, want := bank.Duration("click"), 100*time.Millisecond; got != want {
		t.Errorf("Duration(click) = %v, want %v", got, want)
	}
	if got, want := bank.Duration("quack"), 200*time.Millisecond; got != want {
		t.Errorf("Duration(quack) = %v, want %v", got, want)
	}
	if got := bank.SampleRate(); got != 8000 {
		t.Errorf("SampleRate() = %v, want 8000", got)
	}
}

func TestClipStreamersAreIndependent(t *testing.T) {
	t.Parallel()
	bank := testBank(t)

	a, ok := bank.Clip("click")
	if !ok {
		t.Fatal("Clip(click) not found")
	}
	b, ok := bank.Clip("click")
	if !ok {
		t.Fatal("Clip(click) not found")
	}

	if got := drain(t, a); got != 800 {
		t.Fatalf("first streamer produced %d frames, want 800", got)
	}
	if got := b.Position(); got != 0 {
		t.Fatalf("second streamer moved to %d while first played, want 0", got)
	}
	if got := drain(t, b); got != 800 {
		t.Fatalf("second streamer produced %d frames, want 800", got)
	}
}

func TestLoadResamplesToBankRate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bank, err := Load(8000, map[string]string{
		"click": audiotest.WriteWAV(t, dir, "click.wav", 4000, 1, 800),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 800 frames at 4kHz is 200ms, so roughly 1600 frames at the bank rate
	s, ok := bank.Clip("click")
	if !ok {
		t.Fatal("Clip(click) not found")
	}
	if got := s.Len(); got < 1500 || got > 1700 {
		t.Fatalf("resampled clip is %d frames, want about 1600", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(8000, map[string]string{
		"click": filepath.Join(t.TempDir(), "absent.wav"),
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load of missing file = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "click.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Load(8000, map[string]string{"click": path})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load of .txt = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "click.wav")
	if err := os.WriteFile(path, []byte("RIFFgarbage"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(8000, map[string]string{"click": path}); err == nil {
		t.Fatal("Load of corrupt wav succeeded, want error")
	}
}

func TestClipUnknownName(t *testing.T) {
	t.Parallel()
	bank := testBank(t)
	if _, ok := bank.Clip("cowbell"); ok {
		t.Fatal("Clip(cowbell) = ok, want not found")
	}
	if got := bank.Duration("cowbell"); got != 0 {
		t.Fatalf("Duration(cowbell) = %v, want 0", got)
	}
}
