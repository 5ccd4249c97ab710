// Package level implements a single level of play: setup, the per-frame
// update with hit testing, and the victory/defeat state machine.
package level

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shooter/internal/config"
	"github.com/tomz197/asteroid-shooter/internal/object"
	"github.com/tomz197/asteroid-shooter/internal/schedule"
)

// Variant is the kind of level.
type Variant int

const (
	VariantAsteroids Variant = iota // Clear every asteroid
	VariantBoss                     // Bring the boss to zero health
)

func (v Variant) String() string {
	switch v {
	case VariantAsteroids:
		return "asteroids"
	case VariantBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Next returns the variant that follows a victory.
func (v Variant) Next() Variant {
	if v == VariantAsteroids {
		return VariantBoss
	}
	return VariantAsteroids
}

// Phase is the state of the level state machine.
type Phase int

const (
	PhaseSetup   Phase = iota // Created, nothing spawned
	PhaseRunning              // Accepting controls and ticking
	PhaseVictory              // Terminal
	PhaseDefeat               // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level has ended.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Outcome is the result of one Update.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Cause explains why a level ended.
type Cause int

const (
	CauseNone         Cause = iota
	CauseCleared            // Every asteroid destroyed
	CauseBossDefeated       // Boss health reached zero
	CauseOutOfBullets       // No bullets left and none in flight
	CauseTimeUp             // Countdown reached zero
	CausePlayerHit          // Struck by a boss bullet
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseCleared:
		return "all asteroids destroyed"
	case CauseBossDefeated:
		return "boss defeated"
	case CauseOutOfBullets:
		return "out of bullets"
	case CauseTimeUp:
		return "time is up"
	case CausePlayerHit:
		return "ship destroyed"
	default:
		return "unknown"
	}
}

// Controls are the discrete key presses collected since the previous frame.
type Controls struct {
	Left  int
	Right int
	Fire  int
}

// event is the payload of the level's scheduled entries.
type event struct {
	kind eventKind
	ref  uint64 // Entity id for per-entity events
}

type eventKind int

const (
	eventCountdown eventKind = iota
	eventBossFire
	eventBossPause
	eventBossResume
	eventExplosionDone
)

// Options configures a level beyond its tuning.
type Options struct {
	Rand   *rand.Rand  // Defaults to a time-seeded source
	Logger *log.Logger // Defaults to a discarding logger
}

// Level is one round of play. It is driven by a single goroutine.
type Level struct {
	cfg     config.Game
	variant Variant
	phase   Phase
	cause   Cause
	pending Outcome // Terminal outcome not yet returned from Update

	rng    *rand.Rand
	logger *log.Logger
	ids    object.IDs
	events *schedule.Schedule[event]
	timers []schedule.Handle // Periodic entries stopped on teardown

	player        *object.Player
	playerBullets *object.Store[*object.Bullet]
	bossBullets   *object.Store[*object.Bullet]
	onScreen      *object.Store[*object.Bullet] // Every live bullet regardless of owner
	asteroids     *object.Store[*object.Asteroid]
	boss          *object.Boss
	explosions    *object.Store[*object.Explosion]

	timeLeft int // Whole seconds on the countdown
}

// New creates a level in PhaseSetup. Call Start to spawn entities.
func New(cfg config.Game, variant Variant, opts Options) *Level {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Level{
		cfg:           cfg,
		variant:       variant,
		phase:         PhaseSetup,
		rng:           rng,
		logger:        logger.With("level", variant.String()),
		events:        schedule.New[event](),
		playerBullets: object.NewStore[*object.Bullet](),
		bossBullets:   object.NewStore[*object.Bullet](),
		onScreen:      object.NewStore[*object.Bullet](),
		asteroids:     object.NewStore[*object.Asteroid](),
		explosions:    object.NewStore[*object.Explosion](),
		timeLeft:      int(cfg.Timing.LevelDuration / time.Second),
	}
}

// Start spawns the player and enemies, schedules the timers and enters PhaseRunning.
// Calling Start on a level that already left PhaseSetup does nothing.
func (l *Level) Start() {
	if l.phase != PhaseSetup {
		return
	}

	l.player = object.NewPlayer(l.ids.Next(), l.cfg)

	switch l.variant {
	case VariantAsteroids:
		for i := 0; i < l.cfg.Amount.Asteroids; i++ {
			l.asteroids.Add(object.NewAsteroid(l.ids.Next(), l.cfg, l.rng))
		}
	case VariantBoss:
		l.boss = object.NewBoss(l.ids.Next(), l.cfg, l.rng)
		l.timers = append(l.timers,
			l.events.Every(l.cfg.Timing.BossFireInterval, event{kind: eventBossFire}),
			l.events.Every(l.cfg.Timing.BossPauseInterval, event{kind: eventBossPause}),
		)
	}

	l.timers = append(l.timers, l.events.Every(time.Second, event{kind: eventCountdown}))
	l.phase = PhaseRunning

	l.logger.Info("level started",
		"bullets", l.player.BulletsLeft,
		"asteroids", l.asteroids.Len(),
		"time", l.timeLeft,
	)
}

// Update advances the level by dt: controls first, then movement, hit testing
// and scheduled events. The terminal outcome is returned by exactly one call;
// afterwards the level is inert and Update returns OutcomeContinue.
func (l *Level) Update(dt time.Duration, in Controls) Outcome {
	if l.phase != PhaseRunning {
		return l.takePending()
	}

	l.applyControls(in)
	l.move(dt)
	l.evaluateCollisions()

	if l.phase == PhaseRunning {
		l.runEvents(dt)
	}

	return l.takePending()
}

func (l *Level) takePending() Outcome {
	out := l.pending
	l.pending = OutcomeContinue
	return out
}

func (l *Level) applyControls(in Controls) {
	for i := 0; i < in.Left; i++ {
		l.MoveLeft()
	}
	for i := 0; i < in.Right; i++ {
		l.MoveRight()
	}
	for i := 0; i < in.Fire; i++ {
		l.Fire()
	}
}

// MoveLeft steps the player left. Ignored unless running.
func (l *Level) MoveLeft() bool {
	if l.phase != PhaseRunning {
		return false
	}
	return l.player.MoveLeft()
}

// MoveRight steps the player right. Ignored unless running.
func (l *Level) MoveRight() bool {
	if l.phase != PhaseRunning {
		return false
	}
	return l.player.MoveRight(l.cfg.Resolution.Width)
}

// Fire launches a player bullet if any remain. Ignored unless running.
func (l *Level) Fire() bool {
	if l.phase != PhaseRunning {
		return false
	}
	b := l.player.Fire(l.ids.Next(), l.cfg)
	if b == nil {
		return false
	}
	l.playerBullets.Add(b)
	l.onScreen.Add(b)
	return true
}

func (l *Level) move(dt time.Duration) {
	width := l.cfg.Resolution.Width
	for _, b := range l.onScreen.All() {
		b.Update(dt)
	}
	for _, a := range l.asteroids.All() {
		a.Update(dt, width)
	}
	if l.boss != nil {
		l.boss.Update(dt, width)
	}
	for _, e := range l.explosions.All() {
		e.Update(dt)
	}
}

func (l *Level) runEvents(dt time.Duration) {
	for _, ev := range l.events.Advance(dt) {
		if l.phase != PhaseRunning {
			return
		}
		switch ev.kind {
		case eventCountdown:
			if l.timeLeft > 0 {
				l.timeLeft--
			}
			if l.timeLeft == 0 {
				l.finish(PhaseDefeat, CauseTimeUp)
			}
		case eventBossFire:
			if l.boss != nil {
				b := l.boss.Fire(l.ids.Next(), l.cfg)
				l.bossBullets.Add(b)
				l.onScreen.Add(b)
			}
		case eventBossPause:
			if l.boss != nil && !l.boss.Paused {
				l.boss.Pause()
				l.events.After(l.cfg.Timing.BossPauseDuration, event{kind: eventBossResume})
			}
		case eventBossResume:
			if l.boss != nil {
				l.boss.Resume(l.rng)
			}
		case eventExplosionDone:
			l.removeExplosion(ev.ref)
		}
	}
}

// explode spawns an explosion at (x, y) and schedules its removal.
func (l *Level) explode(x, y float64) {
	e := object.NewExplosion(l.ids.Next(), x, y, l.cfg, l.rng)
	l.explosions.Add(e)
	l.events.After(l.cfg.Timing.ExplosionLifetime, event{kind: eventExplosionDone, ref: e.ID()})
}

func (l *Level) removeExplosion(id uint64) {
	for _, e := range l.explosions.All() {
		if e.ID() == id {
			l.explosions.Remove(id)
			e.Release()
			return
		}
	}
}

// checkStatus evaluates the win and lose conditions. Victory is checked first.
// Returns true if the level ended.
func (l *Level) checkStatus() bool {
	if l.phase != PhaseRunning {
		return true
	}
	if l.victoryReached() {
		cause := CauseCleared
		if l.variant == VariantBoss {
			cause = CauseBossDefeated
		}
		l.finish(PhaseVictory, cause)
		return true
	}
	if l.outOfBullets() {
		l.finish(PhaseDefeat, CauseOutOfBullets)
		return true
	}
	return false
}

func (l *Level) victoryReached() bool {
	switch l.variant {
	case VariantAsteroids:
		return l.asteroids.Len() == 0
	case VariantBoss:
		return l.boss != nil && l.boss.Defeated()
	}
	return false
}

// outOfBullets is true once the budget is spent and no bullet of either owner is on screen.
func (l *Level) outOfBullets() bool {
	return l.player.BulletsLeft == 0 && l.onScreen.Len() == 0
}

// finish moves to a terminal phase and tears the level down.
func (l *Level) finish(phase Phase, cause Cause) {
	if l.phase != PhaseRunning {
		return
	}
	l.phase = phase
	l.cause = cause
	if phase == PhaseVictory {
		l.pending = OutcomeVictory
		l.logger.Info("victory", "cause", cause.String(), "bullets", l.player.BulletsLeft, "time", l.timeLeft)
	} else {
		l.pending = OutcomeDefeat
		l.logger.Info("defeat", "cause", cause.String(), "bullets", l.player.BulletsLeft, "time", l.timeLeft)
	}
	l.Teardown()
}

// Teardown stops the timers, clears every bullet and releases enemies and explosions.
// A running level torn down externally ends without an outcome. Safe to call repeatedly.
func (l *Level) Teardown() {
	if l.phase == PhaseRunning || l.phase == PhaseSetup {
		l.phase = PhaseDefeat
	}
	for _, h := range l.timers {
		l.events.Cancel(h)
	}
	l.timers = nil
	// Pending one-shots (boss resume, explosion expiry) have nothing left to act on.
	l.events.Clear()
	l.playerBullets.Reset()
	l.bossBullets.Reset()
	l.onScreen.Reset()
	l.asteroids.Reset()
	l.boss = nil
	for _, e := range l.explosions.Reset() {
		e.Release()
	}
}

// Variant returns the level kind.
func (l *Level) Variant() Variant { return l.variant }

// Phase returns the current state.
func (l *Level) Phase() Phase { return l.phase }

// Cause returns why the level ended, CauseNone while it runs.
func (l *Level) Cause() Cause { return l.cause }

// TimeLeft returns the whole seconds remaining on the countdown.
func (l *Level) TimeLeft() int { return l.timeLeft }

// Player returns the player ship, nil before Start.
func (l *Level) Player() *object.Player { return l.player }

// BulletsLeft returns the player's remaining bullet budget.
func (l *Level) BulletsLeft() int {
	if l.player == nil {
		return l.cfg.Amount.PlayerBullets
	}
	return l.player.BulletsLeft
}

// PlayerBullets returns the player's bullets in flight.
func (l *Level) PlayerBullets() []*object.Bullet { return l.playerBullets.All() }

// BossBullets returns the boss's bullets in flight.
func (l *Level) BossBullets() []*object.Bullet { return l.bossBullets.All() }

// BulletsOnScreen returns the number of live bullets of either owner.
func (l *Level) BulletsOnScreen() int { return l.onScreen.Len() }

// Asteroids returns the live asteroids.
func (l *Level) Asteroids() []*object.Asteroid { return l.asteroids.All() }

// Boss returns the boss, nil outside a running boss level.
func (l *Level) Boss() *object.Boss { return l.boss }

// Explosions returns the explosions currently shown.
func (l *Level) Explosions() []*object.Explosion { return l.explosions.All() }
