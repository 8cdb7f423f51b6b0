// Package main is the entry point for the metronome terminal app.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	flag "github.com/spf13/pflag"

	"metronome-cli/metronome"
	"metronome-cli/soundbank"
	"metronome-cli/ui"
)

// sampleRate is the rate the device runs at and every clip is resampled to.
const sampleRate = beep.SampleRate(44100)

func run() error {
	var (
		bpm       = flag.IntP("bpm", "b", 120, "starting tempo in beats per minute (40-200)")
		eighth    = flag.Bool("eighth", false, "start with eighth note subdivision")
		quack     = flag.Bool("quack", false, "start in quack mode")
		timer     = flag.DurationP("timer", "t", 2*time.Minute+30*time.Second, "practice timer length")
		clickPath = flag.String("click", "media/strong_beat.wav", "click clip path")
		quackPath = flag.String("quack-clip", "media/duck_quack.wav", "quack clip path")
		debug     = flag.BoolP("debug", "d", false, "write debug logs to metronome.log")
	)
	flag.Parse()

	initLogger(*debug)

	bank, err := soundbank.Load(sampleRate, map[string]string{
		"click": *clickPath,
		"quack": *quackPath,
	})
	if err != nil {
		return err
	}
	slog.Debug("sound bank loaded", "clips", bank.Names())

	cfg := metronome.DefaultSettings()
	cfg.Tempo = *bpm
	if *eighth {
		cfg.Subdivision = metronome.Eighth
	}
	cfg.QuackMode = *quack
	cfg.Countdown = metronome.NewCountdown(*timer)

	eng, err := metronome.New(bank, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	m := ui.NewModel(eng, cfg.Countdown)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}

// initLogger routes slog to a file in debug mode and discards records
// otherwise; writing to stderr would tear up the altscreen TUI.
func initLogger(debug bool) {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	f, err := os.OpenFile("metronome.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
