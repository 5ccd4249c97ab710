// Package loop runs a session in a terminal: Input → Update → Draw at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shooter/internal/config"
	"github.com/tomz197/asteroid-shooter/internal/draw"
	"github.com/tomz197/asteroid-shooter/internal/input"
	"github.com/tomz197/asteroid-shooter/internal/session"
)

// maxFrameDelta caps the simulated time of one frame after a stall.
const maxFrameDelta = 100 * time.Millisecond

// Fallback size when the terminal cannot report one.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// ErrIdle is returned when no key arrives within Options.IdleTimeout.
var ErrIdle = errors.New("session idle")

// Options configures a run.
type Options struct {
	Config       config.Game       // Zero value means config.Default()
	TermSizeFunc draw.TermSizeFunc // Defaults to the stdout terminal
	Logger       *log.Logger       // Defaults to a discarding logger
	Seed         int64             // Zero means time-seeded
	IdleTimeout  time.Duration     // Zero disables the idle disconnect
}

// Run plays a session reading keys from r and drawing to w.
// It returns nil when the player quits or r reaches EOF, ErrIdle after opts.IdleTimeout
// without a key press, and ctx.Err() when ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	cfg := opts.Config
	if cfg.FPS == 0 {
		cfg = config.Default()
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess := session.New(cfg, session.Options{
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	stream := input.StartStream(r)

	cols, rows := termSize(sizeFunc)
	v := newView(cfg, cols, rows, draw.NewChunkWriter(w), lipgloss.NewRenderer(w))

	if err := draw.HideCursor(w); err != nil {
		return fmt.Errorf("failed to prepare terminal: %w", err)
	}
	defer func() {
		_ = draw.ClearScreen(w)
		_ = draw.ShowCursor(w)
	}()

	ticker := time.NewTicker(cfg.FrameTime())
	defer ticker.Stop()

	logger.Debug("loop started", "cols", cols, "rows", rows, "seed", seed)
	last := time.Now()
	lastInput := last

	for {
		// ===== INPUT =====
		frame := input.ReadFrame(stream)

		// ===== UPDATE =====
		now := time.Now()
		dt := min(now.Sub(last), maxFrameDelta)
		last = now

		if frame.Any() {
			lastInput = now
		} else if opts.IdleTimeout > 0 && now.Sub(lastInput) > opts.IdleTimeout {
			logger.Info("disconnecting idle player", "idle", now.Sub(lastInput).Round(time.Second))
			sess.Quit()
			return ErrIdle
		}

		sess.Update(dt, frame)
		if !sess.Running() {
			return nil
		}
		v.resize(termSize(sizeFunc))

		// ===== DRAW =====
		if err := v.draw(sess); err != nil {
			sess.Quit()
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		select {
		case <-ctx.Done():
			sess.Quit()
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func termSize(f draw.TermSizeFunc) (int, int) {
	cols, rows, err := f()
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}
