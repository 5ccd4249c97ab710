package level

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shooter/internal/config"
)

const frame = time.Second / 60

func startLevel(t *testing.T, cfg config.Game, variant Variant) *Level {
	t.Helper()
	l := New(cfg, variant, Options{Rand: rand.New(rand.NewSource(1))})
	require.Equal(t, PhaseSetup, l.Phase())
	l.Start()
	require.Equal(t, PhaseRunning, l.Phase())
	return l
}

// runUntil ticks the level one frame at a time until an outcome other than
// OutcomeContinue is returned or limit elapses.
func runUntil(l *Level, limit time.Duration, stop func() bool) Outcome {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += frame {
		if out := l.Update(frame, Controls{}); out != OutcomeContinue {
			return out
		}
		if stop != nil && stop() {
			return OutcomeContinue
		}
	}
	return OutcomeContinue
}

// parkAsteroids freezes every asteroid at the given column.
func parkAsteroids(l *Level, x float64) {
	for _, a := range l.Asteroids() {
		a.X = x
		a.Speed = 0
	}
}

// quietBoss freezes the boss above the player and stops it firing.
func quietBoss(cfg *config.Game) {
	cfg.Timing.BossFireInterval = time.Hour
	cfg.Timing.BossPauseInterval = time.Hour
}

func TestVariantAlternates(t *testing.T) {
	assert.Equal(t, VariantBoss, VariantAsteroids.Next())
	assert.Equal(t, VariantAsteroids, VariantBoss.Next())
	assert.Equal(t, "asteroids", VariantAsteroids.String())
	assert.Equal(t, "boss", VariantBoss.String())
	assert.True(t, PhaseVictory.Terminal())
	assert.False(t, PhaseRunning.Terminal())
}

func TestSetup(t *testing.T) {
	cfg := config.Default()

	t.Run("update before start does nothing", func(t *testing.T) {
		l := New(cfg, VariantAsteroids, Options{})
		assert.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 1}))
		assert.Equal(t, PhaseSetup, l.Phase())
		assert.Nil(t, l.Player())
		assert.Equal(t, cfg.Amount.PlayerBullets, l.BulletsLeft())
	})

	t.Run("asteroid level", func(t *testing.T) {
		l := startLevel(t, cfg, VariantAsteroids)
		assert.Len(t, l.Asteroids(), cfg.Amount.Asteroids)
		assert.Nil(t, l.Boss())
		assert.Equal(t, cfg.Amount.PlayerBullets, l.BulletsLeft())
		assert.Equal(t, 60, l.TimeLeft())
		assert.NotNil(t, l.Player())

		l.Start() // second start is ignored
		assert.Len(t, l.Asteroids(), cfg.Amount.Asteroids)
	})

	t.Run("boss level", func(t *testing.T) {
		l := startLevel(t, cfg, VariantBoss)
		assert.Empty(t, l.Asteroids())
		require.NotNil(t, l.Boss())
		assert.Equal(t, cfg.Amount.BossHealth, l.Boss().Health)
	})
}

func TestAsteroidLevelVictoryFiresOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Asteroids = 1
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, l.Player().X)

	assert.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 1}))
	assert.Equal(t, 1, l.BulletsOnScreen())

	out := runUntil(l, 5*time.Second, nil)
	require.Equal(t, OutcomeVictory, out)
	assert.Equal(t, PhaseVictory, l.Phase())
	assert.Equal(t, CauseCleared, l.Cause())

	for i := 0; i < 120; i++ {
		assert.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 1}))
	}
	assert.Equal(t, PhaseVictory, l.Phase())
}

func TestAsteroidLevelDefeatWhenAllBulletsMiss(t *testing.T) {
	cfg := config.Default()
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, 10)

	// Nine misses leave one bullet in the budget: no defeat yet.
	require.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 9}))
	assert.Equal(t, 9, l.BulletsOnScreen())
	out := runUntil(l, 3*time.Second, func() bool { return l.BulletsOnScreen() == 0 })
	require.Equal(t, OutcomeContinue, out)
	assert.Equal(t, PhaseRunning, l.Phase())
	assert.Equal(t, 1, l.BulletsLeft())

	// The last bullet is in flight: budget is zero but the level goes on.
	require.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 1}))
	assert.Equal(t, 0, l.BulletsLeft())
	assert.Equal(t, PhaseRunning, l.Phase())

	out = runUntil(l, 3*time.Second, nil)
	assert.Equal(t, OutcomeDefeat, out)
	assert.Equal(t, CauseOutOfBullets, l.Cause())
	assert.Len(t, l.Asteroids(), 0, "enemies are released on teardown")
}

func TestFireWithoutBudgetIsIgnored(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.PlayerBullets = 1
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, 10)

	assert.True(t, l.Fire())
	assert.False(t, l.Fire())
	assert.Equal(t, 1, l.BulletsOnScreen())
	assert.Equal(t, 0, l.BulletsLeft())
}

func TestOneBulletDestroysOneAsteroid(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Asteroids = 2
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, l.Player().X)
	for _, a := range l.Asteroids() {
		a.Y = 30
	}

	l.Update(frame, Controls{Fire: 1})
	runUntil(l, 3*time.Second, func() bool { return l.BulletsOnScreen() == 0 })

	assert.Len(t, l.Asteroids(), 1)
	assert.Len(t, l.Explosions(), 1)
	assert.Equal(t, PhaseRunning, l.Phase())
}

func TestOffscreenRemovalTakesPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Asteroids = 1
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, l.Player().X)
	l.Asteroids()[0].Y = 2

	require.True(t, l.Fire())
	l.PlayerBullets()[0].Y = 0.5

	// One unit of travel puts the bullet past the top edge while still overlapping the asteroid.
	out := l.Update(25*time.Millisecond, Controls{})
	assert.Equal(t, OutcomeContinue, out)
	assert.Equal(t, 0, l.BulletsOnScreen())
	assert.Len(t, l.Asteroids(), 1)
	assert.Empty(t, l.Explosions())
}

func TestExplosionExpires(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Asteroids = 2
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, 10)
	target := l.Asteroids()[0]
	target.X = l.Player().X

	l.Update(frame, Controls{Fire: 1})
	runUntil(l, 3*time.Second, func() bool { return len(l.Explosions()) == 1 })
	require.Len(t, l.Explosions(), 1)

	runUntil(l, cfg.Timing.ExplosionLifetime+frame, nil)
	assert.Empty(t, l.Explosions())
}

func TestTimerExpiryIsDefeat(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.LevelDuration = 3 * time.Second
	l := startLevel(t, cfg, VariantAsteroids)
	assert.Equal(t, 3, l.TimeLeft())

	l.Update(time.Second, Controls{})
	assert.Equal(t, 2, l.TimeLeft())

	out := runUntil(l, 3*time.Second, nil)
	assert.Equal(t, OutcomeDefeat, out)
	assert.Equal(t, CauseTimeUp, l.Cause())
	assert.Equal(t, 0, l.TimeLeft())
	assert.Equal(t, 10, l.BulletsLeft())
}

func TestBossLevelVictoryAfterConfiguredHits(t *testing.T) {
	cfg := config.Default()
	quietBoss(&cfg)
	l := startLevel(t, cfg, VariantBoss)
	boss := l.Boss()
	boss.Speed = 0
	boss.X = l.Player().X

	for want := cfg.Amount.BossHealth - 1; want > 0; want-- {
		require.True(t, l.Fire())
		out := runUntil(l, 3*time.Second, func() bool { return l.BulletsOnScreen() == 0 })
		require.Equal(t, OutcomeContinue, out)
		assert.Equal(t, want, boss.Health)
		assert.Equal(t, PhaseRunning, l.Phase())
	}

	require.True(t, l.Fire())
	out := runUntil(l, 3*time.Second, nil)
	assert.Equal(t, OutcomeVictory, out)
	assert.Equal(t, CauseBossDefeated, l.Cause())
	assert.Equal(t, 0, boss.Health)
	assert.Nil(t, l.Boss(), "boss is released on teardown")
}

func TestBossBulletIsInstantDefeat(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.BossPauseInterval = time.Hour
	l := startLevel(t, cfg, VariantBoss)
	l.Boss().Speed = 0
	l.Boss().X = l.Player().X

	out := runUntil(l, 5*time.Second, nil)
	assert.Equal(t, OutcomeDefeat, out)
	assert.Equal(t, CausePlayerHit, l.Cause())
	assert.Equal(t, cfg.Amount.PlayerBullets, l.BulletsLeft())
	assert.Equal(t, 0, l.BulletsOnScreen())
}

func TestBossBulletInFlightDelaysDefeat(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.PlayerBullets = 1
	cfg.Timing.BossFireInterval = 1500 * time.Millisecond
	cfg.Timing.BossPauseInterval = time.Hour
	l := startLevel(t, cfg, VariantBoss)
	l.Boss().Speed = 0
	l.Boss().X = 20

	require.True(t, l.Fire())
	out := runUntil(l, 3*time.Second, func() bool { return len(l.PlayerBullets()) == 0 })
	require.Equal(t, OutcomeContinue, out)
	assert.Equal(t, PhaseRunning, l.Phase())
	assert.Equal(t, 0, l.BulletsLeft())
	require.Len(t, l.BossBullets(), 1)
	assert.Equal(t, 1, l.BulletsOnScreen())

	assert.Equal(t, OutcomeDefeat, runUntil(l, 3*time.Second, nil))
	assert.Equal(t, CauseOutOfBullets, l.Cause())
	assert.Empty(t, l.BossBullets())
}

func TestBulletsCancelEachOther(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.BossPauseInterval = time.Hour
	l := startLevel(t, cfg, VariantBoss)
	boss := l.Boss()
	boss.Speed = 0
	boss.X = l.Player().X

	runUntil(l, 3*time.Second, func() bool { return len(l.BossBullets()) == 1 })
	require.Len(t, l.BossBullets(), 1)

	require.True(t, l.Fire())
	assert.Equal(t, 2, l.BulletsOnScreen())
	out := runUntil(l, time.Second, func() bool { return l.BulletsOnScreen() == 0 })

	assert.Equal(t, OutcomeContinue, out)
	assert.Equal(t, PhaseRunning, l.Phase())
	assert.Equal(t, cfg.Amount.BossHealth, boss.Health)
	assert.Empty(t, l.PlayerBullets())
	assert.Empty(t, l.BossBullets())
	assert.Len(t, l.Explosions(), 1)
}

func TestBossPausesPeriodically(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.BossFireInterval = time.Hour
	l := startLevel(t, cfg, VariantBoss)
	boss := l.Boss()

	l.Update(cfg.Timing.BossPauseInterval, Controls{})
	require.True(t, boss.Paused)
	x := boss.X
	l.Update(cfg.Timing.BossPauseDuration/2, Controls{})
	assert.InDelta(t, x, boss.X, 1e-9)

	l.Update(cfg.Timing.BossPauseDuration/2, Controls{})
	assert.False(t, boss.Paused)
}

func TestControlsMovePlayer(t *testing.T) {
	cfg := config.Default()
	l := startLevel(t, cfg, VariantAsteroids)
	x := l.Player().X

	l.Update(frame, Controls{Left: 2})
	assert.InDelta(t, x-2*cfg.Speed.PlayerStep, l.Player().X, 1e-9)
	l.Update(frame, Controls{Right: 3})
	assert.InDelta(t, x+cfg.Speed.PlayerStep, l.Player().X, 1e-9)
}

func TestTeardownClearsEverything(t *testing.T) {
	cfg := config.Default()
	l := startLevel(t, cfg, VariantBoss)
	l.Update(2*time.Second, Controls{Fire: 3})
	require.NotZero(t, l.BulletsOnScreen())

	l.Teardown()
	assert.True(t, l.Phase().Terminal())
	assert.Zero(t, l.events.Len())
	assert.Empty(t, l.timers)
	assert.Equal(t, 0, l.BulletsOnScreen())
	assert.Empty(t, l.PlayerBullets())
	assert.Empty(t, l.BossBullets())
	assert.Nil(t, l.Boss())
	assert.Empty(t, l.Explosions())
	assert.False(t, l.Fire())
	assert.False(t, l.MoveLeft())
	assert.Equal(t, OutcomeContinue, l.Update(time.Hour, Controls{}))

	l.Teardown() // idempotent
	assert.Equal(t, CauseNone, l.Cause())
}

func TestTenMissesEndInDefeat(t *testing.T) {
	cfg := config.Default()
	l := startLevel(t, cfg, VariantAsteroids)
	parkAsteroids(l, 10)

	require.Equal(t, OutcomeContinue, l.Update(frame, Controls{Fire: 10}))
	assert.Equal(t, 10, l.BulletsOnScreen())
	assert.Equal(t, 0, l.BulletsLeft())

	assert.Equal(t, OutcomeDefeat, runUntil(l, 3*time.Second, nil))
	assert.Equal(t, CauseOutOfBullets, l.Cause())
}
