package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "invaders: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	tuning, err := config.TuningFromEnv()
	if err != nil {
		return err
	}

	out, closeLog, err := config.LogOutput()
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := config.NewLogger(out, "game")
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("starting local session", "width", tuning.Screen.Width, "height", tuning.Screen.Height)
	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.RunOptions{
		Tuning:  tuning,
		Palette: draw.NewLocalPalette(),
		Logger:  logger,
	})
}
