package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/asteroidrain/internal/draw"
	"github.com/tomz197/asteroidrain/internal/input"
	"github.com/tomz197/asteroidrain/internal/loop/config"
)

// ErrIdle is returned by Run when the player stops pressing keys for longer
// than Options.IdleTimeout.
var ErrIdle = errors.New("disconnected for inactivity")

// Options configures the terminal loop.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	IdleWarn     time.Duration // Show a warning after this long without input; 0 disables
	IdleTimeout  time.Duration // End the loop after this long without input; 0 disables
}

// terminal draws session frames onto a terminal.
type terminal struct {
	writer       io.Writer
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	termSizeFunc draw.TermSizeFunc
}

// Run drives sess from a terminal: Input → Step → Draw, once per tick.
// It returns nil when the player quits, ctx.Err() when ctx is done, and
// ErrIdle after an idle timeout. The loop only stops at tick boundaries.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, sess *Session, opts Options) error {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	term := newTerminal(w, sess, termSizeFunc)
	stream := input.StartStream(r)
	lastInput := time.Now()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	for {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			draw.ClearScreen(w)
			return ctx.Err()
		default:
		}

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit {
			draw.ClearScreen(w)
			return nil
		}
		if len(in.Pressed) > 0 {
			lastInput = frameStart
		}
		idle := frameStart.Sub(lastInput)
		if opts.IdleTimeout > 0 && idle > opts.IdleTimeout {
			draw.ClearScreen(w)
			return ErrIdle
		}

		// ===== UPDATE PHASE =====
		prev := sess.Phase()
		frame := sess.Step(in)
		if sess.Phase() != prev {
			input.ResetKeyInput(stream)
		}

		if opts.IdleWarn > 0 && idle > opts.IdleWarn {
			left := int((opts.IdleTimeout - idle).Seconds())
			frame.Add(draw.CenteredText(frame.Width/2, frame.Height/2+60,
				fmt.Sprintf("Inactive - disconnecting in %d seconds. Press any key.", max(left, 0)),
				draw.ColorText))
		}

		// ===== DRAW PHASE =====
		term.resize()
		if err := term.draw(frame); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}

func newTerminal(w io.Writer, sess *Session, termSizeFunc draw.TermSizeFunc) *terminal {
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	screen := sess.tuning.Screen
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(screen.Width), float64(screen.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	return &terminal{
		writer:       w,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSizeFunc: termSizeFunc,
	}
}

// resize follows terminal size changes, clamping to the max render resolution.
func (t *terminal) resize() {
	termWidth, termHeight, err := t.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// draw clears the terminal and writes the frame in one flush.
func (t *terminal) draw(frame draw.Frame) error {
	t.chunkWriter.WriteString("\033[H\033[2J")
	draw.RenderFrame(frame, t.canvas, t.chunkWriter)
	return t.chunkWriter.Flush()
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
