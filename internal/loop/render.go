package loop

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/asteroid-shooter/internal/config"
	"github.com/tomz197/asteroid-shooter/internal/draw"
	"github.com/tomz197/asteroid-shooter/internal/level"
	"github.com/tomz197/asteroid-shooter/internal/object"
	"github.com/tomz197/asteroid-shooter/internal/session"
)

// view owns the canvas and frame buffer of one terminal.
type view struct {
	cfg    config.Game
	canvas *draw.Canvas
	out    *draw.ChunkWriter
	styles styles

	cols, rows int
	entities   []object.Entity // Reused every frame
}

func newView(cfg config.Game, cols, rows int, out *draw.ChunkWriter, r *lipgloss.Renderer) *view {
	return &view{
		cfg:    cfg,
		canvas: draw.NewScaledCanvas(cols, rows, cfg.Resolution.Width, cfg.Resolution.Height),
		out:    out,
		styles: newStyles(r),
		cols:   cols,
		rows:   rows,
	}
}

func (v *view) resize(cols, rows int) {
	if cols == v.cols && rows == v.rows {
		return
	}
	v.cols, v.rows = cols, rows
	v.canvas.Resize(cols, rows)
}

// draw renders one full frame and flushes it.
func (v *view) draw(s *session.Session) error {
	v.out.Clear()
	v.canvas.Clear()

	l := s.Level()
	if s.Screen() == session.ScreenPlaying && l != nil {
		v.drawLevel(l)
	}
	if err := v.canvas.Render(v.out); err != nil {
		return err
	}

	switch s.Screen() {
	case session.ScreenTitle:
		v.drawTitle(s)
	case session.ScreenPlaying:
		v.drawHUD(s, l)
	case session.ScreenVictory:
		v.drawVictory(s)
	case session.ScreenDefeat:
		v.drawDefeat(s)
	}
	return v.out.Flush()
}

func (v *view) drawLevel(l *level.Level) {
	ents := v.entities[:0]
	for _, a := range l.Asteroids() {
		ents = append(ents, a)
	}
	if b := l.Boss(); b != nil {
		ents = append(ents, b)
	}
	for _, b := range l.PlayerBullets() {
		ents = append(ents, b)
	}
	for _, b := range l.BossBullets() {
		ents = append(ents, b)
	}
	for _, e := range l.Explosions() {
		ents = append(ents, e)
	}
	if p := l.Player(); p != nil {
		ents = append(ents, p)
	}
	v.entities = ents

	for _, e := range ents {
		v.drawEntity(e)
	}
}

func (v *view) drawEntity(e object.Entity) {
	c := v.canvas
	switch e := e.(type) {
	case *object.Player:
		pts := c.BorrowPoints(3)
		pts[0] = draw.Point{X: e.X, Y: e.Y - e.Height/2}
		pts[1] = draw.Point{X: e.X + e.Width/2, Y: e.Y + e.Height/2}
		pts[2] = draw.Point{X: e.X - e.Width/2, Y: e.Y + e.Height/2}
		c.DrawPolygon(pts, true)

	case *object.Bullet:
		if e.Kind() == object.KindBossBullet {
			c.DrawCircle(e.X, e.Y, math.Max(e.Width, 1), true)
			return
		}
		c.DrawLine(draw.Point{X: e.X, Y: e.Y - 1}, draw.Point{X: e.X, Y: e.Y + 1})

	case *object.Asteroid:
		pts := c.BorrowPoints(len(e.Vertices))
		for i, r := range e.Vertices {
			a := e.Angle + 2*math.Pi*float64(i)/float64(len(e.Vertices))
			pts[i] = draw.Point{X: e.X + r*math.Cos(a), Y: e.Y + r*math.Sin(a)}
		}
		c.DrawPolygon(pts, false)

	case *object.Boss:
		left, top := e.X-e.Width/2, e.Y-e.Height/2
		c.DrawRect(left, top, e.Width, e.Height, false)
		if e.MaxHealth > 0 {
			core := (e.Width - 4) * float64(e.Health) / float64(e.MaxHealth)
			c.DrawRect(left+2, top+2, core, e.Height-4, true)
		}

	case *object.Explosion:
		radius := e.Width / 2 * e.Progress()
		for _, s := range e.Sparks {
			dx, dy := math.Cos(s.Angle), math.Sin(s.Angle)
			outer := radius * s.Reach
			inner := outer * 0.6
			c.DrawLine(
				draw.Point{X: e.X + dx*inner, Y: e.Y + dy*inner},
				draw.Point{X: e.X + dx*outer, Y: e.Y + dy*outer},
			)
		}
	}
}

func (v *view) drawHUD(s *session.Session, l *level.Level) {
	if l == nil {
		return
	}
	bullets := fmt.Sprintf("Bullets left: %d/%d", l.BulletsLeft(), v.cfg.Amount.PlayerBullets)
	timeLeft := fmt.Sprintf("Time left: %d", l.TimeLeft())
	stage := fmt.Sprintf("Stage %d - %s", s.Stage(), l.Variant())

	v.out.WriteAt(2, 1, bullets)
	v.out.WriteAt(v.cols/2-len(stage)/2, 1, stage)
	v.out.WriteAt(v.cols-len(timeLeft), 1, timeLeft)

	// The health bar rides just above the boss, below the HUD line.
	if b := l.Boss(); b != nil {
		bar := "Boss " + strings.Repeat("■", b.Health) + strings.Repeat("□", b.MaxHealth-b.Health)
		width := lipgloss.Width(bar)
		col, row := v.canvas.LogicalToTerminal(b.X, b.Y-b.Height/2)
		v.out.WriteAt(min(col-width/2, v.cols-width+1), max(row-1, 2), bar)
	}
}
