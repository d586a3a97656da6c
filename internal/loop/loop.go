// Package loop runs a game session: the Menu/Playing/GameOver state machine,
// its per-tick update and the frame driver that renders it to a terminal.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
)

// RunOptions configures Run.
type RunOptions struct {
	Tuning       config.Tuning     // DefaultTuning if zero
	TermSizeFunc draw.TermSizeFunc // DefaultTermSizeFunc if nil
	Palette      *draw.Palette     // Styles for w; a stdout palette if nil
	Logger       *log.Logger
	Rand         *rand.Rand
}

// Run plays one session with the Input → Update → Draw cycle until the
// player quits or the input stream ends.
func Run(r *bufio.Reader, w io.Writer, opts RunOptions) error {
	tuning := opts.Tuning
	if tuning.Screen.Width == 0 {
		tuning = config.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	palette := opts.Palette
	if palette == nil {
		palette = draw.NewLocalPalette()
	}

	state := NewState(tuning, Options{Rand: opts.Rand, Logger: opts.Logger})
	stream := input.StartStream(r)
	defer input.Close(stream)

	v, err := newView(w, sizeFunc, palette, tuning)
	if err != nil {
		return err
	}

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	frameTime := tuning.Screen.FrameTime()
	lastTime := time.Now()

	for state.Running {
		frameStart := time.Now()
		elapsed := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT + UPDATE =====
		prev := state.GameState
		state.Update(input.ReadInput(stream), frameStart, elapsed)
		if state.GameState != prev {
			input.Reset(stream)
		}

		// ===== DRAW =====
		if err := v.updateScreen(); err != nil {
			return err
		}
		if err := v.drawFrame(state.Snapshot(), frameStart); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		if d := time.Since(frameStart); d < frameTime {
			time.Sleep(frameTime - d)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// view owns the terminal-side rendering state of one session.
type view struct {
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	palette  *draw.Palette
	sizeFunc draw.TermSizeFunc

	logicalW, logicalH float64
	termW, termH       int

	prevState  GameState
	needsClear bool
}

func newView(w io.Writer, sizeFunc draw.TermSizeFunc, palette *draw.Palette, t config.Tuning) (*view, error) {
	termW, termH, err := sizeFunc()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	v := &view{
		palette:    palette,
		sizeFunc:   sizeFunc,
		logicalW:   float64(t.Screen.Width),
		logicalH:   float64(t.Screen.Height),
		termW:      termW,
		termH:      termH,
		prevState:  GameStateMenu,
		needsClear: true,
	}
	renderW, renderH, offCol, offRow := draw.FitTermSize(termW, termH, v.logicalW, v.logicalH)
	v.canvas = draw.NewScaledCanvas(renderW, renderH, v.logicalW, v.logicalH)
	v.cw = draw.NewChunkWriter(w, offCol, offRow)
	return v, nil
}

// updateScreen refits the canvas when the terminal was resized.
func (v *view) updateScreen() error {
	termW, termH, err := v.sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if termW == v.termW && termH == v.termH {
		return nil
	}

	v.termW, v.termH = termW, termH
	renderW, renderH, offCol, offRow := draw.FitTermSize(termW, termH, v.logicalW, v.logicalH)
	v.canvas.Resize(renderW, renderH)
	v.cw.SetOffset(offCol, offRow)
	v.needsClear = true
	return nil
}

// drawFrame renders snap. Only cells that changed are written, except on a
// screen change or resize, which clears the terminal first.
func (v *view) drawFrame(snap *Snapshot, now time.Time) error {
	if v.needsClear || snap.GameState != v.prevState {
		v.cw.WriteString("\033[H\033[2J")
		v.canvas.ForceRedraw()
		v.prevState = snap.GameState
		v.needsClear = false
	}

	v.canvas.Clear()
	drawScene(v.canvas, snap)
	v.canvas.Render(v.cw, v.palette)
	v.canvas.RenderBorder(v.cw)
	v.drawUI(snap, now)

	return v.cw.Flush()
}
