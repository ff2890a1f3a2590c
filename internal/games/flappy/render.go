package flappy

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
)

// Visual characters for rendering
const (
	ObstacleChar    = '█'
	ObstacleCapChar = '▓'
	GroundTopChar   = '▀'
	GroundChar      = '░'
	GroundAltChar   = '▒'
)

// groundStripe is the width of one ground pattern band in cells.
const groundStripe = 2

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	sn := g.session.Snapshot()
	v := newCellMapper(g.cfg.Presentation.CellWidth, g.cfg.Presentation.CellHeight)

	for _, o := range sn.Obstacles {
		g.drawObstacle(dst, v, sn, o)
	}
	g.drawGround(dst, v, sn)
	g.drawCharacter(dst, v, sn.Character)
	g.drawHUD(dst, sn)

	if g.paused {
		drawCenteredMessage(dst, core.ColorCyan, "PAUSED", "Press P to resume")
	}

	if sn.GameOver {
		drawCenteredMessage(dst, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  |  hit the %s", sn.Score, sn.Cause),
			fmt.Sprintf("Seed %d  |  R restart  |  Q quit", g.runtime.Seed),
		)
	}
}

// cellMapper converts world units to terminal cells.
type cellMapper struct {
	cw, ch float64
}

func newCellMapper(cw, ch float64) cellMapper {
	return cellMapper{cw: cw, ch: ch}
}

func (m cellMapper) col(x float64) int { return int(math.Floor(x / m.cw)) }
func (m cellMapper) row(y float64) int { return int(math.Floor(y / m.ch)) }

// colEnd and rowEnd return exclusive bounds, so partially covered cells
// are drawn.
func (m cellMapper) colEnd(x float64) int { return int(math.Ceil(x / m.cw)) }
func (m cellMapper) rowEnd(y float64) int { return int(math.Ceil(y / m.ch)) }

func (g *Game) drawObstacle(dst *core.Screen, m cellMapper, sn sim.Snapshot, o sim.ObstacleView) {
	top := max(o.Y, 0)
	bottom := min(o.Y+o.H, sn.Ground.Y)
	if bottom <= top {
		return
	}

	x0, x1 := m.col(o.X), m.colEnd(o.X+o.W)
	y0, y1 := m.row(top), m.rowEnd(bottom)

	color := core.ColorGreen
	if o.Passed {
		color = core.ColorGray
	}
	dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), ObstacleChar, color)

	// Cap on the end facing the gap
	capY := y1 - 1
	if o.Direction == sim.DirectionBottom {
		capY = y0
	}
	dst.DrawHLine(x0-1, capY, x1-x0+2, ObstacleCapChar, core.ColorBrightGreen)
}

func (g *Game) drawGround(dst *core.Screen, m cellMapper, sn sim.Snapshot) {
	y0 := m.row(sn.Ground.Y)
	dst.DrawHLine(0, y0, dst.Width(), GroundTopChar, core.ColorYellow)

	stripe := groundStripe * m.cw
	for x := range dst.Width() {
		// Sample the pattern relative to the first segment so it scrolls.
		wx := (float64(x)+0.5)*m.cw - sn.Ground.Offsets[0]
		phase := math.Mod(wx, 2*stripe)
		if phase < 0 {
			phase += 2 * stripe
		}
		r := GroundChar
		if phase >= stripe {
			r = GroundAltChar
		}
		for y := y0 + 1; y < dst.Height(); y++ {
			dst.SetColor(x, y, r, core.ColorOrange)
		}
	}
}

// characterSprite picks the glyphs for the current rotation.
func characterSprite(c sim.CharacterView) []rune {
	body := 'o'
	if !c.Alive {
		body = 'x'
	}
	nose := '>'
	switch {
	case c.Rotation < -0.2:
		nose = '/'
	case c.Rotation > 0.2:
		nose = '\\'
	}
	return []rune{'(', body, nose}
}

func (g *Game) drawCharacter(dst *core.Screen, m cellMapper, c sim.CharacterView) {
	color := core.ColorBrightYellow
	if !c.Alive {
		color = core.ColorRed
	}
	x := m.col(c.X)
	y := m.row(c.Y + c.H/2)
	for i, r := range characterSprite(c) {
		dst.SetColor(x+i, y, r, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen, sn sim.Snapshot) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", sn.Score), core.ColorWhite)

	status := fmt.Sprintf(" x%.2f ", sn.Difficulty)
	if g.autopilot {
		status = " AUTO" + status
	}
	dst.DrawText(dst.Width()-runewidth.StringWidth(status)-2, 0, status, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, color core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := runewidth.StringWidth(title)
	for _, l := range lines {
		boxW = core.Max(boxW, runewidth.StringWidth(l))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), color)

	dst.DrawText(boxX+(boxW-runewidth.StringWidth(title))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-runewidth.StringWidth(l))/2, boxY+3+i, l, core.ColorWhite)
	}
}
