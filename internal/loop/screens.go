package loop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/asteroid-shooter/internal/level"
	"github.com/tomz197/asteroid-shooter/internal/session"
)

type styles struct {
	box    lipgloss.Style
	title  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	faint  lipgloss.Style
	prompt lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4).Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		good:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bad:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		faint:  r.NewStyle().Faint(true),
		prompt: r.NewStyle().Bold(true),
	}
}

// overlay draws the lines in a bordered box centered on the terminal.
func (v *view) overlay(lines ...string) {
	block := v.styles.box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	width, height := lipgloss.Width(block), lipgloss.Height(block)
	col := (v.cols-width)/2 + 1
	row := (v.rows-height)/2 + 1
	for i, line := range strings.Split(block, "\n") {
		v.out.WriteAt(col, row+i, line)
	}
}

func (v *view) drawTitle(s *session.Session) {
	lines := []string{
		v.styles.title.Render("A S T E R O I D   S H O O T E R"),
		"",
		"Clear the asteroid field, then take down the boss.",
		fmt.Sprintf("%d bullets and %d seconds per level.",
			v.cfg.Amount.PlayerBullets, int(v.cfg.Timing.LevelDuration.Seconds())),
		"",
		v.styles.faint.Render("A D / ← →   Move"),
		v.styles.faint.Render("SPACE        Shoot"),
		v.styles.faint.Render("Q            Quit"),
		"",
		v.styles.prompt.Render(">>  Press SPACE to Start  <<"),
	}
	if s.Best() > 0 {
		lines = append(lines, fmt.Sprintf("Best stage: %d", s.Best()))
	}
	v.overlay(lines...)
}

func (v *view) drawVictory(s *session.Session) {
	next := "asteroid field"
	if s.Variant().Next() == level.VariantBoss {
		next = "boss fight"
	}
	lines := []string{
		v.styles.good.Render("LEVEL CLEARED"),
		"",
		capitalize(s.Cause().String()),
		fmt.Sprintf("Stage %d complete. Next up: %s.", s.Stage(), next),
		"",
	}
	if s.AcceptsConfirm() {
		lines = append(lines, v.styles.prompt.Render(">>  Press SPACE to Continue  <<"))
	}
	v.overlay(lines...)
}

func (v *view) drawDefeat(s *session.Session) {
	lines := []string{
		v.styles.bad.Render("GAME OVER"),
		"",
		capitalize(s.Cause().String()),
		fmt.Sprintf("Reached stage %d, best %d.", s.Stage(), s.Best()),
		"",
	}
	if s.AcceptsConfirm() {
		lines = append(lines, v.styles.prompt.Render(">>  Press SPACE to Restart  <<"))
	}
	v.overlay(lines...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
