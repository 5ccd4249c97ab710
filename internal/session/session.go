// Package session strings levels together: title screen, alternating
// asteroid and boss levels, and the result overlays between them.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shooter/internal/config"
	"github.com/tomz197/asteroid-shooter/internal/input"
	"github.com/tomz197/asteroid-shooter/internal/level"
)

// Screen is what the session is currently showing.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenPlaying
	ScreenVictory
	ScreenDefeat
)

func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenPlaying:
		return "playing"
	case ScreenVictory:
		return "victory"
	case ScreenDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Options configures a session beyond its tuning.
type Options struct {
	Rand   *rand.Rand  // Defaults to a time-seeded source
	Logger *log.Logger // Defaults to a discarding logger
}

// Session is a single player's run. It is driven by one goroutine.
type Session struct {
	cfg    config.Game
	rng    *rand.Rand
	logger *log.Logger

	screen     Screen
	level      *level.Level
	variant    level.Variant
	stage      int
	best       int
	cause      level.Cause
	overlayAge time.Duration
	running    bool
}

// New creates a session showing the title screen.
func New(cfg config.Game, opts Options) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		cfg:     cfg,
		rng:     rng,
		logger:  logger,
		screen:  ScreenTitle,
		variant: level.VariantAsteroids,
		running: true,
	}
}

// Controls converts a frame of key presses into level controls.
func Controls(f input.Frame) level.Controls {
	return level.Controls{Left: f.Left, Right: f.Right, Fire: f.Fire}
}

// Update advances the session by dt with the key presses of one frame.
func (s *Session) Update(dt time.Duration, f input.Frame) {
	if !s.running {
		return
	}
	if f.Quit {
		s.Quit()
		return
	}

	switch s.screen {
	case ScreenTitle:
		if f.Confirm > 0 {
			s.begin(level.VariantAsteroids, 1)
		}
	case ScreenPlaying:
		switch s.level.Update(dt, Controls(f)) {
		case level.OutcomeVictory:
			s.showResult(ScreenVictory)
		case level.OutcomeDefeat:
			s.showResult(ScreenDefeat)
		}
	case ScreenVictory, ScreenDefeat:
		s.overlayAge += dt
		if f.Confirm == 0 || s.overlayAge < s.cfg.Timing.OverlayDelay {
			return
		}
		if s.screen == ScreenVictory {
			s.begin(s.variant.Next(), s.stage+1)
		} else {
			s.begin(level.VariantAsteroids, 1)
		}
	}
}

// begin starts a fresh level.
func (s *Session) begin(variant level.Variant, stage int) {
	if s.level != nil {
		s.level.Teardown()
	}
	s.variant = variant
	s.stage = stage
	if stage > s.best {
		s.best = stage
	}
	s.cause = level.CauseNone
	s.level = level.New(s.cfg, variant, level.Options{
		Rand:   s.rng,
		Logger: s.logger.With("stage", stage),
	})
	s.level.Start()
	s.screen = ScreenPlaying
}

func (s *Session) showResult(screen Screen) {
	s.screen = screen
	s.cause = s.level.Cause()
	s.overlayAge = 0
	s.logger.Debug("showing result", "screen", screen.String(), "stage", s.stage, "cause", s.cause.String())
}

// Quit tears down the current level and stops the session.
func (s *Session) Quit() {
	if !s.running {
		return
	}
	if s.level != nil {
		s.level.Teardown()
	}
	s.running = false
	s.logger.Info("session ended", "stage", s.stage, "best", s.best)
}

// Running reports whether the session still accepts input.
func (s *Session) Running() bool { return s.running }

// Screen returns the current screen.
func (s *Session) Screen() Screen { return s.screen }

// Level returns the current level, nil on the title screen.
func (s *Session) Level() *level.Level { return s.level }

// Variant returns the variant of the current or last level.
func (s *Session) Variant() level.Variant { return s.variant }

// Stage returns the 1-based number of the current level in this run.
func (s *Session) Stage() int { return s.stage }

// Best returns the highest stage reached during the session.
func (s *Session) Best() int { return s.best }

// Cause returns why the last level ended.
func (s *Session) Cause() level.Cause { return s.cause }

// AcceptsConfirm reports whether an overlay would react to confirm now.
func (s *Session) AcceptsConfirm() bool {
	switch s.screen {
	case ScreenTitle:
		return true
	case ScreenVictory, ScreenDefeat:
		return s.overlayAge >= s.cfg.Timing.OverlayDelay
	default:
		return false
	}
}
